package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camposanto/glampd/pkg/types"
)

func attachedStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	require.NoError(t, s.Attach(types.Config{Backend: types.BackendMemory}))
	return s
}

func TestAttachLifecycle(t *testing.T) {
	s := New()

	// Detached store refuses operations.
	_, err := s.LoadAll(types.KindClients)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, s.SaveAll(types.KindClients, nil), types.ErrStoreDetached)

	require.NoError(t, s.Attach(types.Config{Backend: types.BackendMemory}))
	assert.ErrorIs(t, s.Attach(types.Config{Backend: types.BackendMemory}), types.ErrAlreadyAttached)

	// Detach is idempotent.
	require.NoError(t, s.Detach())
	require.NoError(t, s.Detach())
	_, err = s.LoadAll(types.KindClients)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestAttachRejectsBadConfig(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Attach(types.Config{}), types.ErrBackendEmpty)
	assert.ErrorIs(t, s.Attach(types.Config{Backend: "postgres"}), types.ErrBackendUnknown)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := attachedStore(t)

	for _, kind := range types.Kinds() {
		records, err := s.LoadAll(kind)
		require.NoError(t, err)
		assert.Empty(t, records)
	}

	in := []types.Record{
		{"id": 1, "name": "Ana"},
		{"id": 2, "name": "Luis"},
	}
	require.NoError(t, s.SaveAll(types.KindClients, in))

	out, err := s.LoadAll(types.KindClients)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaveAllReplacesCollection(t *testing.T) {
	s := attachedStore(t)

	require.NoError(t, s.SaveAll(types.KindUnits, []types.Record{{"id": 1}, {"id": 2}}))
	require.NoError(t, s.SaveAll(types.KindUnits, []types.Record{{"id": 3}}))

	out, err := s.LoadAll(types.KindUnits)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0]["id"])
}

func TestUnknownKind(t *testing.T) {
	s := attachedStore(t)

	_, err := s.LoadAll("campfires")
	assert.ErrorIs(t, err, types.ErrKindUnknown)
	assert.ErrorIs(t, s.SaveAll("campfires", nil), types.ErrKindUnknown)
}

func TestLoadAllReturnsCopies(t *testing.T) {
	s := attachedStore(t)
	require.NoError(t, s.SaveAll(types.KindClients, []types.Record{{"id": 1, "name": "Ana"}}))

	out, err := s.LoadAll(types.KindClients)
	require.NoError(t, err)
	out[0]["name"] = "mutated"

	again, err := s.LoadAll(types.KindClients)
	require.NoError(t, err)
	assert.Equal(t, "Ana", again[0]["name"])
}
