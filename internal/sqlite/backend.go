// Package sqlite implements the SQLite store backend for glampd. Each entity
// kind maps to one table; SaveAll replaces a kind's rows transactionally, so
// a failed save leaves the stored collection untouched.
package sqlite

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/camposanto/glampd/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// dbFileName is the SQLite database file created inside DataDir.
const dbFileName = "glampd.db"

// Backend implements types.Store using SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance. The backend is not
// attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens (or creates) the database under config.DataDir and ensures
// the schema exists. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("initializing schema: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent; after Detach all operations
// return ErrStoreDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// LoadAll returns every record of the given kind.
func (b *Backend) LoadAll(kind string) ([]types.Record, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	switch kind {
	case types.KindClients:
		return b.loadClients()
	case types.KindUnits:
		return b.loadUnits()
	case types.KindReservations:
		return b.loadReservations()
	default:
		return nil, types.ErrKindUnknown
	}
}

// SaveAll replaces the stored collection for the given kind in a single
// transaction.
func (b *Backend) SaveAll(kind string, records []types.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}

	switch kind {
	case types.KindClients:
		err = saveClients(tx, records)
	case types.KindUnits:
		err = saveUnits(tx, records)
	case types.KindReservations:
		err = saveReservations(tx, records)
	default:
		err = types.ErrKindUnknown
	}
	if err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	return nil
}

func (b *Backend) loadClients() ([]types.Record, error) {
	rows, err := b.db.Query(
		"SELECT id, name, email, phone, document FROM clients ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading clients: %w", err)
	}
	defer rows.Close()

	records := []types.Record{}
	for rows.Next() {
		var id int
		var name, email, phone, document string
		if err := rows.Scan(&id, &name, &email, &phone, &document); err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}
		records = append(records, types.Record{
			"id":       id,
			"name":     name,
			"email":    email,
			"phone":    phone,
			"document": document,
		})
	}
	return records, rows.Err()
}

func (b *Backend) loadUnits() ([]types.Record, error) {
	rows, err := b.db.Query(
		"SELECT id, name, capacity, price_per_night, features, available FROM units ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading units: %w", err)
	}
	defer rows.Close()

	records := []types.Record{}
	for rows.Next() {
		var id, capacity, price, available int
		var name, featuresJSON string
		if err := rows.Scan(&id, &name, &capacity, &price, &featuresJSON, &available); err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}
		var features []string
		if err := json.Unmarshal([]byte(featuresJSON), &features); err != nil {
			features = nil
		}
		records = append(records, types.Record{
			"id":            id,
			"name":          name,
			"capacity":      capacity,
			"pricePerNight": price,
			"features":      features,
			"available":     available != 0,
		})
	}
	return records, rows.Err()
}

func (b *Backend) loadReservations() ([]types.Record, error) {
	rows, err := b.db.Query(
		"SELECT id, client_id, unit_id, start_date, end_date, amount_paid, status, code FROM reservations ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading reservations: %w", err)
	}
	defer rows.Close()

	records := []types.Record{}
	for rows.Next() {
		var id, clientID, unitID int
		var startDate, endDate, status, code string
		var amountPaid float64
		if err := rows.Scan(&id, &clientID, &unitID, &startDate, &endDate, &amountPaid, &status, &code); err != nil {
			return nil, fmt.Errorf("scanning reservation: %w", err)
		}
		records = append(records, types.Record{
			"id":         id,
			"clientId":   clientID,
			"unitId":     unitID,
			"startDate":  startDate,
			"endDate":    endDate,
			"amountPaid": amountPaid,
			"status":     status,
			"code":       code,
		})
	}
	return records, rows.Err()
}

func saveClients(tx *sql.Tx, records []types.Record) error {
	if _, err := tx.Exec("DELETE FROM clients"); err != nil {
		return fmt.Errorf("clearing clients: %w", err)
	}
	for _, r := range records {
		if _, err := tx.Exec(
			"INSERT INTO clients (id, name, email, phone, document) VALUES (?, ?, ?, ?, ?)",
			r["id"], r["name"], r["email"], r["phone"], r["document"]); err != nil {
			return fmt.Errorf("inserting client: %w", err)
		}
	}
	return nil
}

func saveUnits(tx *sql.Tx, records []types.Record) error {
	if _, err := tx.Exec("DELETE FROM units"); err != nil {
		return fmt.Errorf("clearing units: %w", err)
	}
	for _, r := range records {
		featuresJSON, err := json.Marshal(featureList(r))
		if err != nil {
			return fmt.Errorf("marshaling features: %w", err)
		}
		available := 0
		if v, ok := r["available"].(bool); ok && v {
			available = 1
		}
		if _, err := tx.Exec(
			"INSERT INTO units (id, name, capacity, price_per_night, features, available) VALUES (?, ?, ?, ?, ?, ?)",
			r["id"], r["name"], r["capacity"], r["pricePerNight"], string(featuresJSON), available); err != nil {
			return fmt.Errorf("inserting unit: %w", err)
		}
	}
	return nil
}

func saveReservations(tx *sql.Tx, records []types.Record) error {
	if _, err := tx.Exec("DELETE FROM reservations"); err != nil {
		return fmt.Errorf("clearing reservations: %w", err)
	}
	for _, r := range records {
		if _, err := tx.Exec(
			"INSERT INTO reservations (id, client_id, unit_id, start_date, end_date, amount_paid, status, code) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			r["id"], r["clientId"], r["unitId"], r["startDate"], r["endDate"], r["amountPaid"], r["status"], r["code"]); err != nil {
			return fmt.Errorf("inserting reservation: %w", err)
		}
	}
	return nil
}

// featureList normalizes the features value to a string slice for storage.
func featureList(r types.Record) []string {
	switch v := r["features"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
