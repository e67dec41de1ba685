package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camposanto/glampd/pkg/types"
)

func TestUnitCreateDefaults(t *testing.T) {
	b, _ := newTestBook(t)

	u := seedUnit(t, b)
	assert.Equal(t, 1, u.ID)
	assert.True(t, u.Available)

	closed := false
	u2, err := b.Units.Create(types.UnitInput{
		Name:          "Cabana Rio",
		Capacity:      "2",
		PricePerNight: "60000",
		Available:     &closed,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, u2.ID)
	assert.False(t, u2.Available)
}

func TestUnitCreateValidation(t *testing.T) {
	b, _ := newTestBook(t)

	_, err := b.Units.Create(types.UnitInput{Capacity: "zero"})
	var fieldErrs types.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "name")
	assert.Contains(t, fieldErrs, "capacity")
	assert.Contains(t, fieldErrs, "pricePerNight")
}

func seedSearchUnits(t *testing.T, b *Book) {
	t.Helper()
	units := []types.UnitInput{
		{Name: "Domo Luna", Capacity: "4", PricePerNight: "100000", Features: []string{"jacuzzi", "wifi"}},
		{Name: "Domo Sol", Capacity: "2", PricePerNight: "80000", Features: []string{"wifi"}},
		{Name: "Tienda Safari", Capacity: "6", PricePerNight: "50000", Features: []string{"fogata"}},
	}
	for _, in := range units {
		_, err := b.Units.Create(in)
		require.NoError(t, err)
	}
}

func TestUnitSearchByName(t *testing.T) {
	b, _ := newTestBook(t)
	seedSearchUnits(t, b)

	found, err := b.Units.SearchByName("domo")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = b.Units.SearchByName("SAFARI")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Tienda Safari", found[0].Name)

	found, err = b.Units.SearchByName("iglú")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestUnitSearchByCapacity(t *testing.T) {
	b, _ := newTestBook(t)
	seedSearchUnits(t, b)

	found, err := b.Units.SearchByCapacity(4)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = b.Units.SearchByCapacity(7)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestUnitSearchByPriceRange(t *testing.T) {
	b, _ := newTestBook(t)
	seedSearchUnits(t, b)

	// Bounds are inclusive.
	found, err := b.Units.SearchByPriceRange(50000, 80000)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = b.Units.SearchByPriceRange(90000, 100000)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Domo Luna", found[0].Name)
}

func TestUnitSearchByFeature(t *testing.T) {
	b, _ := newTestBook(t)
	seedSearchUnits(t, b)

	found, err := b.Units.SearchByFeature("wifi")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = b.Units.SearchByFeature("FOGATA")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestUnitFindAvailable(t *testing.T) {
	b, _ := newTestBook(t)
	seedSearchUnits(t, b)

	_, err := b.Units.SetAvailability(2, false)
	require.NoError(t, err)

	found, err := b.Units.FindAvailable()
	require.NoError(t, err)
	assert.Len(t, found, 2)
	for _, u := range found {
		assert.NotEqual(t, 2, u.ID)
	}
}

func TestUnitUpdate(t *testing.T) {
	b, _ := newTestBook(t)
	u := seedUnit(t, b)

	// Empty name keeps the stored one; capacity and price always overwrite.
	updated, err := b.Units.Update(u.ID, types.UnitInput{
		Capacity:      "6",
		PricePerNight: "120000",
	})
	require.NoError(t, err)
	assert.Equal(t, "Domo Luna", updated.Name)
	assert.Equal(t, 6, updated.Capacity)
	assert.Equal(t, 120000, updated.PricePerNight)
	assert.Equal(t, []string{"jacuzzi", "wifi"}, updated.Features)

	// Capacity and price are mandatory on update too.
	_, err = b.Units.Update(u.ID, types.UnitInput{Name: "Domo Sol"})
	var fieldErrs types.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "capacity")
	assert.Contains(t, fieldErrs, "pricePerNight")
}

func TestUnitUpdateNotFound(t *testing.T) {
	b, _ := newTestBook(t)
	_, err := b.Units.Update(9, types.UnitInput{
		Name: "x", Capacity: "1", PricePerNight: "1",
	})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestUnitSetAvailability(t *testing.T) {
	b, _ := newTestBook(t)
	u := seedUnit(t, b)

	updated, err := b.Units.SetAvailability(u.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Available)

	again, err := b.Units.FindByID(u.ID)
	require.NoError(t, err)
	assert.False(t, again.Available)

	_, err = b.Units.SetAvailability(9, true)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestUnitDeleteBlockedByReservations(t *testing.T) {
	b, _ := newTestBook(t)
	seedClient(t, b)
	u := seedUnit(t, b)

	r, err := b.Reservations.Create(types.ReservationInput{
		ClientID:  "1",
		UnitID:    "1",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-04",
	})
	require.NoError(t, err)

	err = b.Units.Delete(u.ID)
	var depErr *types.DependentReservationsError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, 1, depErr.Count)

	require.NoError(t, b.Reservations.Delete(r.ID))
	assert.NoError(t, b.Units.Delete(u.ID))
}
