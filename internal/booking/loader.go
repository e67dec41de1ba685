package booking

import (
	"fmt"
	"log"

	"github.com/camposanto/glampd/pkg/types"
)

// loadReconciled loads the reservation collection and filters out any
// reservation whose client or unit id no longer resolves. Orphans usually
// mean the store was edited out-of-band; they are dropped from the working
// set, but the count is reported rather than hidden because silent loss
// masks data corruption.
func (e *Engine) loadReconciled() ([]*types.Reservation, error) {
	records, err := e.store.LoadAll(types.KindReservations)
	if err != nil {
		return nil, fmt.Errorf("loading reservations: %w", err)
	}

	clientIDs, err := e.knownClientIDs()
	if err != nil {
		return nil, err
	}
	unitIDs, err := e.knownUnitIDs()
	if err != nil {
		return nil, err
	}

	reservations := make([]*types.Reservation, 0, len(records))
	dropped := 0
	for _, rec := range records {
		r, ok := types.ReservationFromRecord(rec)
		if !ok {
			dropped++
			continue
		}
		if !clientIDs[r.ClientID] || !unitIDs[r.UnitID] {
			dropped++
			continue
		}
		reservations = append(reservations, r)
	}
	if dropped > 0 {
		log.Printf("booking: dropped %d orphaned reservation(s) at load", dropped)
	}
	return reservations, nil
}

func (e *Engine) knownClientIDs() (map[int]bool, error) {
	clients, err := e.clients.FindAll()
	if err != nil {
		return nil, err
	}
	ids := make(map[int]bool, len(clients))
	for _, c := range clients {
		ids[c.ID] = true
	}
	return ids, nil
}

func (e *Engine) knownUnitIDs() (map[int]bool, error) {
	units, err := e.units.FindAll()
	if err != nil {
		return nil, err
	}
	ids := make(map[int]bool, len(units))
	for _, u := range units {
		ids[u.ID] = true
	}
	return ids, nil
}
