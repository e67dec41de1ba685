// Package booking implements the glampd domain core: validated CRUD over
// clients and units, and the reservation engine that keeps every unit's
// schedule free of overlapping bookings. All state lives behind an injected
// types.Store; the package filters in memory and writes whole collections
// back.
package booking

import "github.com/camposanto/glampd/pkg/types"

// Book bundles the three components over a shared store. The reservation
// engine is the only component with cross-entity rules; the repositories
// consult it before deleting anything a reservation still references.
type Book struct {
	Clients      *ClientRepository
	Units        *UnitRepository
	Reservations *Engine
}

// Open wires the repositories and the engine over the given store. The
// store must already be attached.
func Open(store types.Store) *Book {
	b := &Book{
		Clients:      &ClientRepository{store: store},
		Units:        &UnitRepository{store: store},
		Reservations: newEngine(store),
	}
	b.Clients.reservations = b.Reservations
	b.Units.reservations = b.Reservations
	b.Reservations.clients = b.Clients
	b.Reservations.units = b.Units
	return b
}
