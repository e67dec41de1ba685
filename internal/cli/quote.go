// Quote subcommand for the glampd CLI.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newQuoteCmd() *cobra.Command {
	quote := &cobra.Command{
		Use:   "quote <reservation-id>",
		Short: "Show a reservation's duration and total price",
		Long: `Quote prints the reservation's length in nights and the total price,
computed as nights times the unit's current nightly price.`,
		Args: cobra.ExactArgs(1),
		RunE: runQuote,
	}
	return quote
}

func runQuote(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	reservation, err := book.Reservations.FindByID(id)
	if err != nil {
		return err
	}
	nights := book.Reservations.Duration(reservation)
	total, err := book.Reservations.TotalPrice(reservation)
	if err != nil {
		return err
	}

	result := struct {
		ReservationID int `json:"reservationId"`
		Nights        int `json:"nights"`
		TotalPrice    int `json:"totalPrice"`
	}{reservation.ID, nights, total}
	return printEntity(result, func() {
		fmt.Printf("Reservation %d: %d night(s), total $%d\n", reservation.ID, nights, total)
	})
}
