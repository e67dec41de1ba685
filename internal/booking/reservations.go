package booking

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/camposanto/glampd/pkg/types"
)

// Engine enforces the reservation rules: date validity, overlap-free
// scheduling per unit, and referential integrity against clients and units.
// Mutations run under one lock, so an availability check and the write it
// guards are atomic and concurrent callers cannot double-book a unit. The
// store holds whole collections, which makes finer-grained locking unsound:
// two writers would clobber each other's SaveAll.
type Engine struct {
	store   types.Store
	clients *ClientRepository
	units   *UnitRepository

	mu sync.Mutex
}

func newEngine(store types.Store) *Engine {
	return &Engine{store: store}
}

// ListAll returns every reservation whose client and unit still resolve.
// Orphaned reservations are filtered out at load time; see loadReconciled.
func (e *Engine) ListAll() ([]*types.Reservation, error) {
	return e.loadReconciled()
}

// FindByID returns the reservation with the given id, or ErrNotFound.
func (e *Engine) FindByID(id int) (*types.Reservation, error) {
	reservations, err := e.ListAll()
	if err != nil {
		return nil, err
	}
	for _, r := range reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, types.ErrNotFound
}

// ListByClient returns the reservations referencing the given client.
func (e *Engine) ListByClient(clientID int) ([]*types.Reservation, error) {
	return e.filter(func(r *types.Reservation) bool { return r.ClientID == clientID })
}

// ListByUnit returns the reservations referencing the given unit.
func (e *Engine) ListByUnit(unitID int) ([]*types.Reservation, error) {
	return e.filter(func(r *types.Reservation) bool { return r.UnitID == unitID })
}

// ListByStatus returns the reservations currently in the given status.
func (e *Engine) ListByStatus(status string) ([]*types.Reservation, error) {
	return e.filter(func(r *types.Reservation) bool { return r.Status == status })
}

// CheckAvailability reports whether the unit can be booked for the half-open
// interval [startDate, endDate). It fails closed: an unknown unit, a unit
// closed to new bookings, an unparseable date, or a non-increasing range all
// return false. Pass excludeReservationID > 0 to ignore one reservation, so
// an edit does not conflict with itself. Cancelled reservations never block.
func (e *Engine) CheckAvailability(unitID int, startDate, endDate string, excludeReservationID int) (bool, error) {
	unit, err := e.units.FindByID(unitID)
	if errors.Is(err, types.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !unit.Available {
		return false, nil
	}

	start, err := types.ParseDate(startDate)
	if err != nil {
		return false, nil
	}
	end, err := types.ParseDate(endDate)
	if err != nil {
		return false, nil
	}
	if !end.After(start) {
		return false, nil
	}

	reservations, err := e.ListByUnit(unitID)
	if err != nil {
		return false, err
	}
	for _, r := range reservations {
		if excludeReservationID > 0 && r.ID == excludeReservationID {
			continue
		}
		if !r.Active() {
			continue
		}
		if overlaps(start, end, r.StartDate, r.EndDate) {
			return false, nil
		}
	}
	return true, nil
}

// overlaps reports whether [start, end) conflicts with [rStart, rEnd):
// start falls inside [rStart, rEnd), or end falls inside (rStart, rEnd], or
// the candidate fully contains the existing interval. Adjacent intervals do
// not conflict.
func overlaps(start, end, rStart, rEnd time.Time) bool {
	if !start.Before(rStart) && start.Before(rEnd) {
		return true
	}
	if end.After(rStart) && !end.After(rEnd) {
		return true
	}
	if !start.After(rStart) && !end.Before(rEnd) {
		return true
	}
	return false
}

// Create books a unit for a client. Gates run in order, each one hard:
// structural validation, availability, client resolution, unit resolution.
// Status defaults to pending and amount paid to 0 when not supplied. The
// new reservation gets the next id and an opaque confirmation code.
func (e *Engine) Create(in types.ReservationInput) (*types.Reservation, error) {
	if errs := in.Validate(true); errs != nil {
		return nil, errs
	}

	clientID, _ := strconv.Atoi(in.ClientID)
	unitID, _ := strconv.Atoi(in.UnitID)

	e.mu.Lock()
	defer e.mu.Unlock()

	available, err := e.CheckAvailability(unitID, in.StartDate, in.EndDate, 0)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, types.ErrUnitUnavailable
	}

	if _, err := e.clients.FindByID(clientID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrClientNotFound
		}
		return nil, err
	}
	if _, err := e.units.FindByID(unitID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrUnitNotFound
		}
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = types.StatusPending
	}
	amount := 0.0
	if in.AmountPaid != "" {
		amount, _ = strconv.ParseFloat(in.AmountPaid, 64)
	}
	start, _ := types.ParseDate(in.StartDate)
	end, _ := types.ParseDate(in.EndDate)

	reservations, err := e.loadReconciled()
	if err != nil {
		return nil, err
	}
	reservation := &types.Reservation{
		ID:         nextReservationID(reservations),
		ClientID:   clientID,
		UnitID:     unitID,
		StartDate:  start,
		EndDate:    end,
		AmountPaid: amount,
		Status:     status,
		Code:       newConfirmationCode(),
	}
	reservations = append(reservations, reservation)
	if err := e.saveAll(reservations); err != nil {
		return nil, err
	}
	return reservation, nil
}

// Update edits an existing reservation. Supplied fields are re-validated as
// on create. When the unit or either date effectively changes, availability
// is re-checked over the merged unit and dates with the reservation itself
// excluded. Dates, client, and unit follow the empty-means-keep rule;
// amount paid and status overwrite whenever supplied, including "0".
func (e *Engine) Update(id int, in types.ReservationInput) (*types.Reservation, error) {
	if errs := in.Validate(false); errs != nil {
		return nil, errs
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	reservations, err := e.loadReconciled()
	if err != nil {
		return nil, err
	}
	var reservation *types.Reservation
	for _, r := range reservations {
		if r.ID == id {
			reservation = r
			break
		}
	}
	if reservation == nil {
		return nil, types.ErrNotFound
	}

	// Effective unit and dates: new value if supplied, else stored.
	effUnitID := reservation.UnitID
	if in.UnitID != "" {
		effUnitID, _ = strconv.Atoi(in.UnitID)
	}
	effStart := reservation.StartDate.Format(types.DateLayout)
	if in.StartDate != "" {
		effStart = in.StartDate
	}
	effEnd := reservation.EndDate.Format(types.DateLayout)
	if in.EndDate != "" {
		effEnd = in.EndDate
	}

	scheduleChanged := effUnitID != reservation.UnitID ||
		effStart != reservation.StartDate.Format(types.DateLayout) ||
		effEnd != reservation.EndDate.Format(types.DateLayout)
	if scheduleChanged {
		available, err := e.CheckAvailability(effUnitID, effStart, effEnd, id)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, types.ErrUnitUnavailable
		}
	}

	if in.ClientID != "" {
		clientID, _ := strconv.Atoi(in.ClientID)
		if clientID != reservation.ClientID {
			if _, err := e.clients.FindByID(clientID); err != nil {
				if errors.Is(err, types.ErrNotFound) {
					return nil, types.ErrClientNotFound
				}
				return nil, err
			}
			reservation.ClientID = clientID
		}
	}
	if effUnitID != reservation.UnitID {
		if _, err := e.units.FindByID(effUnitID); err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return nil, types.ErrUnitNotFound
			}
			return nil, err
		}
		reservation.UnitID = effUnitID
	}
	if in.StartDate != "" {
		reservation.StartDate, _ = types.ParseDate(in.StartDate)
	}
	if in.EndDate != "" {
		reservation.EndDate, _ = types.ParseDate(in.EndDate)
	}
	if in.AmountPaid != "" {
		reservation.AmountPaid, _ = strconv.ParseFloat(in.AmountPaid, 64)
	}
	if in.Status != "" {
		reservation.Status = in.Status
	}

	if err := e.saveAll(reservations); err != nil {
		return nil, err
	}
	return reservation, nil
}

// UpdateStatus sets the reservation status. Any status is reachable from
// any other, including a no-op; only membership is enforced.
func (e *Engine) UpdateStatus(id int, status string) (*types.Reservation, error) {
	if !types.IsValidStatus(status) {
		return nil, types.ErrInvalidStatus
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	reservations, err := e.loadReconciled()
	if err != nil {
		return nil, err
	}
	for _, r := range reservations {
		if r.ID == id {
			r.Status = status
			if err := e.saveAll(reservations); err != nil {
				return nil, err
			}
			return r, nil
		}
	}
	return nil, types.ErrNotFound
}

// Delete removes the reservation unconditionally; nothing references a
// reservation's id.
func (e *Engine) Delete(id int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	reservations, err := e.loadReconciled()
	if err != nil {
		return err
	}
	idx := -1
	for i, r := range reservations {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return types.ErrNotFound
	}
	reservations = append(reservations[:idx], reservations[idx+1:]...)
	return e.saveAll(reservations)
}

// Duration returns the reservation length in days.
func (e *Engine) Duration(r *types.Reservation) int {
	return r.Nights()
}

// TotalPrice returns duration times the unit's nightly price. The unit is
// resolved at call time, never read from a stale copy.
func (e *Engine) TotalPrice(r *types.Reservation) (int, error) {
	unit, err := e.units.FindByID(r.UnitID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return 0, types.ErrUnitNotFound
		}
		return 0, err
	}
	return r.Nights() * unit.PricePerNight, nil
}

func (e *Engine) filter(keep func(*types.Reservation) bool) ([]*types.Reservation, error) {
	reservations, err := e.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]*types.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (e *Engine) saveAll(reservations []*types.Reservation) error {
	records := make([]types.Record, len(reservations))
	for i, r := range reservations {
		records[i] = r.Record()
	}
	if err := e.store.SaveAll(types.KindReservations, records); err != nil {
		return fmt.Errorf("saving reservations: %w", err)
	}
	return nil
}

// nextReservationID returns max existing id + 1.
func nextReservationID(reservations []*types.Reservation) int {
	max := 0
	for _, r := range reservations {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

// newConfirmationCode returns an opaque code handed to the client on
// booking.
func newConfirmationCode() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
