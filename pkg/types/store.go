package types

import "errors"

// Entity kinds recognized by a Store.
const (
	KindClients      = "clients"
	KindUnits        = "units"
	KindReservations = "reservations"
)

// Record is the durable, flat representation of a single entity. Reservations
// store client and unit ids only; resolving them back to entities is the
// repository layer's job.
type Record map[string]any

// Store defines the interface for backend-agnostic persistence of entity
// collections. A Store has no query capability: callers load a whole kind,
// filter in memory, and save the whole kind back. Each SaveAll call replaces
// the stored collection atomically.
type Store interface {
	// LoadAll returns every record of the given kind.
	// Returns ErrKindUnknown if the kind is not recognized.
	LoadAll(kind string) ([]Record, error)

	// SaveAll replaces the stored collection for the given kind. Either all
	// records are persisted or the stored state is left unchanged.
	SaveAll(kind string, records []Record) error

	// Attach connects the Store to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, LoadAll and SaveAll return ErrStoreDetached.
	Detach() error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrKindUnknown     = errors.New("unknown entity kind")
)

// Kinds returns the entity kinds every backend must support, in load order.
func Kinds() []string {
	return []string{KindClients, KindUnits, KindReservations}
}
