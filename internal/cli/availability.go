// Availability subcommand for the glampd CLI.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	availUnitID  int
	availFrom    string
	availTo      string
	availExclude int
)

func newAvailabilityCmd() *cobra.Command {
	availability := &cobra.Command{
		Use:   "availability",
		Short: "Check whether a unit is free over a date range",
		Long: `Availability reports whether the unit can be booked for the half-open
interval [from, to). The answer is "no" for an unknown unit, a unit closed to
new bookings, malformed dates, or a range that does not increase. Pass
--exclude to ignore one reservation, as an edit of that reservation would.

Example:
  glampd availability --unit 2 --from 2026-09-01 --to 2026-09-04`,
		RunE: runAvailability,
	}
	availability.Flags().IntVar(&availUnitID, "unit", 0, "unit id (required)")
	availability.Flags().StringVar(&availFrom, "from", "", "start date, YYYY-MM-DD (required)")
	availability.Flags().StringVar(&availTo, "to", "", "end date, YYYY-MM-DD (required)")
	availability.Flags().IntVar(&availExclude, "exclude", 0, "reservation id to ignore")
	return availability
}

func runAvailability(cmd *cobra.Command, args []string) error {
	if availUnitID <= 0 {
		return fmt.Errorf("--unit is required")
	}
	if availFrom == "" || availTo == "" {
		return fmt.Errorf("--from and --to are required")
	}

	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	available, err := book.Reservations.CheckAvailability(availUnitID, availFrom, availTo, availExclude)
	if err != nil {
		return err
	}
	result := struct {
		UnitID    int    `json:"unitId"`
		From      string `json:"from"`
		To        string `json:"to"`
		Available bool   `json:"available"`
	}{availUnitID, availFrom, availTo, available}
	return printEntity(result, func() {
		if available {
			fmt.Printf("Unit %d is available from %s to %s\n", availUnitID, availFrom, availTo)
		} else {
			fmt.Printf("Unit %d is NOT available from %s to %s\n", availUnitID, availFrom, availTo)
		}
	})
}
