package types

import (
	"math"
	"strconv"
	"time"
)

// Reservation statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// validStatuses is the set of recognized reservation status values.
var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusCancelled: true,
}

// IsValidStatus reports whether s is a recognized reservation status.
func IsValidStatus(s string) bool {
	return validStatuses[s]
}

// Reservation links a client to a unit over a half-open date interval
// [StartDate, EndDate). Only client and unit ids are held; the booking layer
// resolves them on demand so an edit elsewhere is never masked by a stale
// embedded copy. Code is an opaque confirmation code assigned on creation.
type Reservation struct {
	ID         int       `json:"id"`
	ClientID   int       `json:"clientId"`
	UnitID     int       `json:"unitId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	AmountPaid float64   `json:"amountPaid"`
	Status     string    `json:"status"`
	Code       string    `json:"code"`
}

// Active reports whether the reservation blocks its dates. Cancelled
// reservations free their interval for reuse.
func (r *Reservation) Active() bool {
	return r.Status != StatusCancelled
}

// Nights returns the reservation duration in days, the ceiling of the
// calendar-date difference.
func (r *Reservation) Nights() int {
	return int(math.Ceil(r.EndDate.Sub(r.StartDate).Hours() / 24))
}

// SetStatus sets the reservation status. Any status is reachable from any
// other; only membership in the status set is enforced.
func (r *Reservation) SetStatus(status string) error {
	if !validStatuses[status] {
		return ErrInvalidStatus
	}
	r.Status = status
	return nil
}

// ReservationInput carries reservation fields as submitted by a caller.
// Ids, dates, and amount are strings matching a form-submission shape; an
// empty string means "not supplied". An explicit "0" for AmountPaid is
// present and overwrites.
type ReservationInput struct {
	ClientID   string
	UnitID     string
	StartDate  string
	EndDate    string
	AmountPaid string
	Status     string
}

// Validate checks all supplied fields and returns the full set of failures,
// or nil. When requireAll is true the ids and both dates are mandatory; an
// update validates only what was supplied.
func (in ReservationInput) Validate(requireAll bool) FieldErrors {
	errs := FieldErrors{}

	if in.ClientID == "" {
		if requireAll {
			errs["clientId"] = "client is required"
		}
	} else if _, err := strconv.Atoi(in.ClientID); err != nil {
		errs["clientId"] = "client id must be an integer"
	}

	if in.UnitID == "" {
		if requireAll {
			errs["unitId"] = "unit is required"
		}
	} else if _, err := strconv.Atoi(in.UnitID); err != nil {
		errs["unitId"] = "unit id must be an integer"
	}

	if in.StartDate == "" {
		if requireAll {
			errs["startDate"] = "start date is required"
		}
	} else if !IsValidDate(in.StartDate) {
		errs["startDate"] = "start date must be a valid YYYY-MM-DD date"
	}

	if in.EndDate == "" {
		if requireAll {
			errs["endDate"] = "end date is required"
		}
	} else if !IsValidDate(in.EndDate) {
		errs["endDate"] = "end date must be a valid YYYY-MM-DD date"
	}

	if in.StartDate != "" && in.EndDate != "" &&
		IsValidDate(in.StartDate) && IsValidDate(in.EndDate) {
		start, _ := ParseDate(in.StartDate)
		end, _ := ParseDate(in.EndDate)
		if !end.After(start) {
			errs["endDate"] = "end date must be after start date"
		}
	}

	if in.Status != "" && !validStatuses[in.Status] {
		errs["status"] = "status must be pending, confirmed, or cancelled"
	}

	if in.AmountPaid != "" {
		amount, err := strconv.ParseFloat(in.AmountPaid, 64)
		if err != nil || amount < 0 {
			errs["amountPaid"] = "amount paid must be a non-negative number"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Record returns the durable representation of the reservation. Entities are
// stored by id only.
func (r *Reservation) Record() Record {
	return Record{
		"id":         r.ID,
		"clientId":   r.ClientID,
		"unitId":     r.UnitID,
		"startDate":  r.StartDate.Format(DateLayout),
		"endDate":    r.EndDate.Format(DateLayout),
		"amountPaid": r.AmountPaid,
		"status":     r.Status,
		"code":       r.Code,
	}
}

// ReservationFromRecord rebuilds a reservation from its durable record.
// Returns false if the record lacks a usable id or either date fails to
// parse.
func ReservationFromRecord(r Record) (*Reservation, bool) {
	id, ok := recordInt(r, "id")
	if !ok {
		return nil, false
	}
	clientID, _ := recordInt(r, "clientId")
	unitID, _ := recordInt(r, "unitId")
	start, err := ParseDate(recordString(r, "startDate"))
	if err != nil {
		return nil, false
	}
	end, err := ParseDate(recordString(r, "endDate"))
	if err != nil {
		return nil, false
	}
	amount, _ := recordFloat(r, "amountPaid")
	return &Reservation{
		ID:         id,
		ClientID:   clientID,
		UnitID:     unitID,
		StartDate:  start,
		EndDate:    end,
		AmountPaid: amount,
		Status:     recordString(r, "status"),
		Code:       recordString(r, "code"),
	}, true
}
