package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camposanto/glampd/pkg/types"
)

func TestClientCreate(t *testing.T) {
	b, _ := newTestBook(t)

	c1 := seedClient(t, b)
	assert.Equal(t, 1, c1.ID)

	c2, err := b.Clients.Create(types.ClientInput{
		Name:     "Luis Rojas",
		Email:    "luis@example.com",
		Phone:    "3017654321",
		Document: "CC1234567890",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, c2.ID)
}

func TestClientCreateValidation(t *testing.T) {
	b, _ := newTestBook(t)

	_, err := b.Clients.Create(types.ClientInput{Email: "bad"})
	var fieldErrs types.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "name")
	assert.Contains(t, fieldErrs, "email")
	assert.Contains(t, fieldErrs, "phone")
	assert.Contains(t, fieldErrs, "document")
}

func TestClientCreateDuplicateDocument(t *testing.T) {
	b, _ := newTestBook(t)
	seedClient(t, b)

	_, err := b.Clients.Create(types.ClientInput{
		Name:     "Impostor",
		Email:    "other@example.com",
		Phone:    "3000000000",
		Document: "CC1019283746",
	})
	assert.ErrorIs(t, err, types.ErrDuplicateDocument)
}

func TestClientFindByDocument(t *testing.T) {
	b, _ := newTestBook(t)
	c := seedClient(t, b)

	found, err := b.Clients.FindByDocument(c.Document)
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)

	_, err = b.Clients.FindByDocument("nope")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestClientUpdateKeepsUnsuppliedFields(t *testing.T) {
	b, _ := newTestBook(t)
	c := seedClient(t, b)

	updated, err := b.Clients.Update(c.ID, types.ClientInput{Phone: "3109999999"})
	require.NoError(t, err)
	assert.Equal(t, "3109999999", updated.Phone)
	assert.Equal(t, c.Name, updated.Name)
	assert.Equal(t, c.Email, updated.Email)
	assert.Equal(t, c.Document, updated.Document)

	// The merge is persisted, not just returned.
	again, err := b.Clients.FindByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "3109999999", again.Phone)
}

func TestClientUpdateDuplicateDocument(t *testing.T) {
	b, _ := newTestBook(t)
	seedClient(t, b)
	c2, err := b.Clients.Create(types.ClientInput{
		Name:     "Luis Rojas",
		Email:    "luis@example.com",
		Phone:    "3017654321",
		Document: "CC1234567890",
	})
	require.NoError(t, err)

	_, err = b.Clients.Update(c2.ID, types.ClientInput{Document: "CC1019283746"})
	assert.ErrorIs(t, err, types.ErrDuplicateDocument)

	// Re-submitting the client's own document is not a conflict.
	_, err = b.Clients.Update(c2.ID, types.ClientInput{Document: "CC1234567890"})
	assert.NoError(t, err)
}

func TestClientUpdateNotFound(t *testing.T) {
	b, _ := newTestBook(t)
	_, err := b.Clients.Update(42, types.ClientInput{Name: "x"})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestClientDelete(t *testing.T) {
	b, _ := newTestBook(t)
	c := seedClient(t, b)

	require.NoError(t, b.Clients.Delete(c.ID))
	_, err := b.Clients.FindByID(c.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.ErrorIs(t, b.Clients.Delete(c.ID), types.ErrNotFound)
}

func TestClientDeleteBlockedByReservations(t *testing.T) {
	b, _ := newTestBook(t)
	c := seedClient(t, b)
	seedUnit(t, b)

	r, err := b.Reservations.Create(types.ReservationInput{
		ClientID:  "1",
		UnitID:    "1",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-04",
	})
	require.NoError(t, err)

	err = b.Clients.Delete(c.ID)
	var depErr *types.DependentReservationsError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, 1, depErr.Count)

	// Removing the reservation unblocks the delete.
	require.NoError(t, b.Reservations.Delete(r.ID))
	assert.NoError(t, b.Clients.Delete(c.ID))
}

func TestClientIDReusesMaxPlusOne(t *testing.T) {
	b, _ := newTestBook(t)
	seedClient(t, b)
	c2, err := b.Clients.Create(types.ClientInput{
		Name:     "Luis Rojas",
		Email:    "luis@example.com",
		Phone:    "3017654321",
		Document: "CC1234567890",
	})
	require.NoError(t, err)

	// Deleting the highest id makes it available again.
	require.NoError(t, b.Clients.Delete(c2.ID))
	c3, err := b.Clients.Create(types.ClientInput{
		Name:     "Mara Diaz",
		Email:    "mara@example.com",
		Phone:    "3020000000",
		Document: "CC1111111111",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, c3.ID)
}
