package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Lookup and operation errors. Referential and availability failures stop an
// operation immediately; callers check them with errors.Is.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicateDocument = errors.New("a client with that document already exists")
	ErrUnitUnavailable   = errors.New("unit is not available for the selected dates")
	ErrClientNotFound    = errors.New("client not found")
	ErrUnitNotFound      = errors.New("unit not found")
	ErrInvalidStatus     = errors.New("invalid reservation status")
)

// FieldErrors maps field names to validation messages. Validation is
// exhaustive: every field is checked and all failures are reported in one
// map, so callers can render them together.
type FieldErrors map[string]string

// Error joins all field messages in field-name order.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e[f]
	}
	return strings.Join(parts, "; ")
}

// isBlank reports whether s is empty or whitespace-only.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// DependentReservationsError reports a delete blocked by reservations that
// still reference the entity.
type DependentReservationsError struct {
	Count int
}

func (e *DependentReservationsError) Error() string {
	return fmt.Sprintf("cannot delete: %d dependent reservations", e.Count)
}
