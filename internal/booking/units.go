package booking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/camposanto/glampd/pkg/types"
)

// UnitRepository provides validated CRUD and search over rentable units.
type UnitRepository struct {
	store        types.Store
	reservations *Engine
}

// FindAll returns every stored unit.
func (r *UnitRepository) FindAll() ([]*types.Unit, error) {
	records, err := r.store.LoadAll(types.KindUnits)
	if err != nil {
		return nil, fmt.Errorf("loading units: %w", err)
	}
	units := make([]*types.Unit, 0, len(records))
	for _, rec := range records {
		if u, ok := types.UnitFromRecord(rec); ok {
			units = append(units, u)
		}
	}
	return units, nil
}

// FindByID returns the unit with the given id, or ErrNotFound.
func (r *UnitRepository) FindByID(id int) (*types.Unit, error) {
	units, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	for _, u := range units {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, types.ErrNotFound
}

// FindAvailable returns the units currently open to new bookings.
func (r *UnitRepository) FindAvailable() ([]*types.Unit, error) {
	return r.filter(func(u *types.Unit) bool { return u.Available })
}

// SearchByName returns units whose name contains the given substring,
// case-insensitively.
func (r *UnitRepository) SearchByName(name string) ([]*types.Unit, error) {
	needle := strings.ToLower(name)
	return r.filter(func(u *types.Unit) bool {
		return strings.Contains(strings.ToLower(u.Name), needle)
	})
}

// SearchByCapacity returns units with capacity at or above the minimum.
func (r *UnitRepository) SearchByCapacity(min int) ([]*types.Unit, error) {
	return r.filter(func(u *types.Unit) bool { return u.Capacity >= min })
}

// SearchByPriceRange returns units whose nightly price falls within
// [min, max].
func (r *UnitRepository) SearchByPriceRange(min, max int) ([]*types.Unit, error) {
	return r.filter(func(u *types.Unit) bool {
		return u.PricePerNight >= min && u.PricePerNight <= max
	})
}

// SearchByFeature returns units where any feature contains the given
// substring, case-insensitively.
func (r *UnitRepository) SearchByFeature(feature string) ([]*types.Unit, error) {
	needle := strings.ToLower(feature)
	return r.filter(func(u *types.Unit) bool {
		for _, f := range u.Features {
			if strings.Contains(strings.ToLower(f), needle) {
				return true
			}
		}
		return false
	})
}

// Create validates the input, assigns the next id, and persists the new
// unit. Available defaults to true when not supplied.
func (r *UnitRepository) Create(in types.UnitInput) (*types.Unit, error) {
	if errs := in.Validate(); errs != nil {
		return nil, errs
	}

	units, err := r.FindAll()
	if err != nil {
		return nil, err
	}

	capacity, _ := strconv.Atoi(in.Capacity)
	price, _ := strconv.Atoi(in.PricePerNight)
	available := true
	if in.Available != nil {
		available = *in.Available
	}

	unit := &types.Unit{
		ID:            nextUnitID(units),
		Name:          in.Name,
		Capacity:      capacity,
		PricePerNight: price,
		Features:      in.Features,
		Available:     available,
	}
	units = append(units, unit)
	if err := r.saveAll(units); err != nil {
		return nil, err
	}
	return unit, nil
}

// Update validates the input and overwrites the supplied fields of an
// existing unit. Name falls back to the stored value when empty; capacity
// and price are required by validation, so they always overwrite.
func (r *UnitRepository) Update(id int, in types.UnitInput) (*types.Unit, error) {
	units, err := r.FindAll()
	if err != nil {
		return nil, err
	}

	var unit *types.Unit
	for _, u := range units {
		if u.ID == id {
			unit = u
			break
		}
	}
	if unit == nil {
		return nil, types.ErrNotFound
	}

	if errs := in.Validate(); errs != nil {
		return nil, errs
	}

	if in.Name != "" {
		unit.Name = in.Name
	}
	capacity, _ := strconv.Atoi(in.Capacity)
	unit.Capacity = capacity
	price, _ := strconv.Atoi(in.PricePerNight)
	unit.PricePerNight = price
	if in.Features != nil {
		unit.Features = in.Features
	}
	if in.Available != nil {
		unit.Available = *in.Available
	}

	if err := r.saveAll(units); err != nil {
		return nil, err
	}
	return unit, nil
}

// SetAvailability toggles whether the unit accepts new bookings. Existing
// reservations are unaffected.
func (r *UnitRepository) SetAvailability(id int, available bool) (*types.Unit, error) {
	units, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	for _, u := range units {
		if u.ID == id {
			u.Available = available
			if err := r.saveAll(units); err != nil {
				return nil, err
			}
			return u, nil
		}
	}
	return nil, types.ErrNotFound
}

// Delete removes the unit. Fails with DependentReservationsError while any
// reservation still references it.
func (r *UnitRepository) Delete(id int) error {
	units, err := r.FindAll()
	if err != nil {
		return err
	}

	idx := -1
	for i, u := range units {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return types.ErrNotFound
	}

	dependent, err := r.reservations.ListByUnit(id)
	if err != nil {
		return err
	}
	if len(dependent) > 0 {
		return &types.DependentReservationsError{Count: len(dependent)}
	}

	units = append(units[:idx], units[idx+1:]...)
	return r.saveAll(units)
}

func (r *UnitRepository) filter(keep func(*types.Unit) bool) ([]*types.Unit, error) {
	units, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]*types.Unit, 0, len(units))
	for _, u := range units {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UnitRepository) saveAll(units []*types.Unit) error {
	records := make([]types.Record, len(units))
	for i, u := range units {
		records[i] = u.Record()
	}
	if err := r.store.SaveAll(types.KindUnits, records); err != nil {
		return fmt.Errorf("saving units: %w", err)
	}
	return nil
}

// nextUnitID returns max existing id + 1.
func nextUnitID(units []*types.Unit) int {
	max := 0
	for _, u := range units {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}
