package types

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used on every external surface:
// inputs, stored records, and CLI flags.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a calendar date with no
// time-of-day component. Out-of-range dates (2024-02-30) fail.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// IsValidDate reports whether s is a well-formed, calendar-valid YYYY-MM-DD
// date.
func IsValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}
