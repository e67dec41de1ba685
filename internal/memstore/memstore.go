// Package memstore implements an in-memory store backend. It backs the
// "memory" backend name for ephemeral runs and is the store of choice in
// unit tests.
package memstore

import (
	"sync"

	"github.com/camposanto/glampd/pkg/types"
)

// Store implements types.Store with per-kind record slices held in memory.
type Store struct {
	mu       sync.RWMutex
	attached bool
	data     map[string][]types.Record
}

// New creates a detached in-memory store.
func New() *Store {
	return &Store{}
}

// Attach initializes the per-kind collections.
// Returns ErrAlreadyAttached if called while attached.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	s.data = make(map[string][]types.Record)
	for _, kind := range types.Kinds() {
		s.data[kind] = []types.Record{}
	}
	s.attached = true
	return nil
}

// Detach drops all collections. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
	s.attached = false
	return nil
}

// LoadAll returns a copy of the stored records for the kind. Mutating the
// returned records does not affect the store.
func (s *Store) LoadAll(kind string) ([]types.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	records, ok := s.data[kind]
	if !ok {
		return nil, types.ErrKindUnknown
	}
	return copyRecords(records), nil
}

// SaveAll replaces the stored collection for the kind with a copy of records.
func (s *Store) SaveAll(kind string, records []types.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}
	if _, ok := s.data[kind]; !ok {
		return types.ErrKindUnknown
	}
	s.data[kind] = copyRecords(records)
	return nil
}

func copyRecords(records []types.Record) []types.Record {
	out := make([]types.Record, len(records))
	for i, r := range records {
		cp := make(types.Record, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}
