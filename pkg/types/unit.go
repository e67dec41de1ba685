package types

import "strconv"

// Unit is a rentable glamping accommodation. Available gates new bookings
// only: flipping it off excludes the unit from availability checks but does
// not touch existing reservations.
type Unit struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Capacity      int      `json:"capacity"`
	PricePerNight int      `json:"pricePerNight"`
	Features      []string `json:"features"`
	Available     bool     `json:"available"`
}

// UnitInput carries unit fields as submitted by a caller. Numeric fields are
// strings; non-numeric input is a validation failure, not a crash. Available
// is a pointer so "not supplied" keeps the stored value (true on create).
type UnitInput struct {
	Name          string
	Capacity      string
	PricePerNight string
	Features      []string
	Available     *bool
}

// Validate checks all fields and returns the full set of failures, or nil.
// Capacity and price are required on update as well as create, matching the
// full-form submission shape the repository expects.
func (in UnitInput) Validate() FieldErrors {
	errs := FieldErrors{}
	if isBlank(in.Name) {
		errs["name"] = "name is required"
	}
	if isBlank(in.Capacity) {
		errs["capacity"] = "capacity is required"
	} else if n, err := strconv.Atoi(in.Capacity); err != nil || n <= 0 {
		errs["capacity"] = "capacity must be a positive integer"
	}
	if isBlank(in.PricePerNight) {
		errs["pricePerNight"] = "price per night is required"
	} else if n, err := strconv.Atoi(in.PricePerNight); err != nil || n <= 0 {
		errs["pricePerNight"] = "price per night must be a positive integer"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Record returns the durable representation of the unit.
func (u *Unit) Record() Record {
	features := u.Features
	if features == nil {
		features = []string{}
	}
	return Record{
		"id":            u.ID,
		"name":          u.Name,
		"capacity":      u.Capacity,
		"pricePerNight": u.PricePerNight,
		"features":      features,
		"available":     u.Available,
	}
}

// UnitFromRecord rebuilds a unit from its durable record. Returns false if
// the record lacks a usable id. A missing available flag defaults to true.
func UnitFromRecord(r Record) (*Unit, bool) {
	id, ok := recordInt(r, "id")
	if !ok {
		return nil, false
	}
	capacity, _ := recordInt(r, "capacity")
	price, _ := recordInt(r, "pricePerNight")
	available, ok := recordBool(r, "available")
	if !ok {
		available = true
	}
	return &Unit{
		ID:            id,
		Name:          recordString(r, "name"),
		Capacity:      capacity,
		PricePerNight: price,
		Features:      recordStrings(r, "features"),
		Available:     available,
	}, true
}
