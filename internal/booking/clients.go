package booking

import (
	"fmt"

	"github.com/camposanto/glampd/pkg/types"
)

// ClientRepository provides validated CRUD over clients. Document numbers
// are unique across all clients (case-sensitive, exact match).
type ClientRepository struct {
	store        types.Store
	reservations *Engine
}

// FindAll returns every stored client.
func (r *ClientRepository) FindAll() ([]*types.Client, error) {
	records, err := r.store.LoadAll(types.KindClients)
	if err != nil {
		return nil, fmt.Errorf("loading clients: %w", err)
	}
	clients := make([]*types.Client, 0, len(records))
	for _, rec := range records {
		if c, ok := types.ClientFromRecord(rec); ok {
			clients = append(clients, c)
		}
	}
	return clients, nil
}

// FindByID returns the client with the given id, or ErrNotFound.
func (r *ClientRepository) FindByID(id int) (*types.Client, error) {
	clients, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, types.ErrNotFound
}

// FindByDocument returns the client holding the given document number, or
// ErrNotFound. Linear scan; the collection is small.
func (r *ClientRepository) FindByDocument(document string) (*types.Client, error) {
	clients, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		if c.Document == document {
			return c, nil
		}
	}
	return nil, types.ErrNotFound
}

// Create validates the input, rejects duplicate documents, assigns the next
// id, and persists the new client.
func (r *ClientRepository) Create(in types.ClientInput) (*types.Client, error) {
	if errs := in.Validate(); errs != nil {
		return nil, errs
	}

	clients, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		if c.Document == in.Document {
			return nil, types.ErrDuplicateDocument
		}
	}

	client := &types.Client{
		ID:       nextClientID(clients),
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Document: in.Document,
	}
	clients = append(clients, client)
	if err := r.saveAll(clients); err != nil {
		return nil, err
	}
	return client, nil
}

// Update overwrites the supplied fields of an existing client. An empty
// string leaves the stored value untouched. Changing the document to one
// held by a different client fails with ErrDuplicateDocument.
func (r *ClientRepository) Update(id int, in types.ClientInput) (*types.Client, error) {
	clients, err := r.FindAll()
	if err != nil {
		return nil, err
	}

	var client *types.Client
	for _, c := range clients {
		if c.ID == id {
			client = c
			break
		}
	}
	if client == nil {
		return nil, types.ErrNotFound
	}

	if in.Document != "" && in.Document != client.Document {
		for _, c := range clients {
			if c.Document == in.Document && c.ID != id {
				return nil, types.ErrDuplicateDocument
			}
		}
	}

	if in.Name != "" {
		client.Name = in.Name
	}
	if in.Email != "" {
		client.Email = in.Email
	}
	if in.Phone != "" {
		client.Phone = in.Phone
	}
	if in.Document != "" {
		client.Document = in.Document
	}

	if err := r.saveAll(clients); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes the client. Fails with DependentReservationsError while
// any reservation still references it.
func (r *ClientRepository) Delete(id int) error {
	clients, err := r.FindAll()
	if err != nil {
		return err
	}

	idx := -1
	for i, c := range clients {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return types.ErrNotFound
	}

	dependent, err := r.reservations.ListByClient(id)
	if err != nil {
		return err
	}
	if len(dependent) > 0 {
		return &types.DependentReservationsError{Count: len(dependent)}
	}

	clients = append(clients[:idx], clients[idx+1:]...)
	return r.saveAll(clients)
}

func (r *ClientRepository) saveAll(clients []*types.Client) error {
	records := make([]types.Record, len(clients))
	for i, c := range clients {
		records[i] = c.Record()
	}
	if err := r.store.SaveAll(types.KindClients, records); err != nil {
		return fmt.Errorf("saving clients: %w", err)
	}
	return nil
}

// nextClientID returns max existing id + 1, so the first client gets id 1.
func nextClientID(clients []*types.Client) int {
	max := 0
	for _, c := range clients {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}
