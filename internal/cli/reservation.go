// Reservation subcommands for the glampd CLI.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/camposanto/glampd/pkg/types"
)

var (
	reservationInput types.ReservationInput

	listClientID int
	listUnitID   int
	listStatus   string
)

func newReservationCmd() *cobra.Command {
	reservation := &cobra.Command{
		Use:   "reservation",
		Short: "Manage reservations",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Book a unit for a client",
		Long: `Add books a unit for a client over [start, end). The booking is refused
when the interval overlaps an active reservation on the same unit, when the
unit is closed to new bookings, or when the client or unit does not exist.
Status defaults to pending and amount paid to 0.

Example:
  glampd reservation add --client 1 --unit 2 --start 2026-09-01 --end 2026-09-04 --amount 150000`,
		RunE: runReservationAdd,
	}
	addReservationFlags(add)

	list := &cobra.Command{
		Use:   "list",
		Short: "List reservations",
		Long: `List shows all reservations, optionally filtered by exactly one of
--client, --unit, or --status.`,
		RunE: runReservationList,
	}
	list.Flags().IntVar(&listClientID, "client", 0, "filter by client id")
	list.Flags().IntVar(&listUnitID, "unit", 0, "filter by unit id")
	list.Flags().StringVar(&listStatus, "status", "", "filter by status (pending, confirmed, cancelled)")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a reservation by id",
		Args:  cobra.ExactArgs(1),
		RunE:  runReservationGet,
	}

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a reservation",
		Long: `Update overwrites the supplied fields of an existing reservation. When
the unit or either date changes, the new schedule is re-checked for conflicts
with the reservation itself excluded.`,
		Args: cobra.ExactArgs(1),
		RunE: runReservationUpdate,
	}
	addReservationFlags(update)

	status := &cobra.Command{
		Use:   "status <id> <pending|confirmed|cancelled>",
		Short: "Set a reservation's status",
		Long: `Status moves the reservation to the given status. Cancelling frees the
unit's interval for new bookings.`,
		Args: cobra.ExactArgs(2),
		RunE: runReservationStatus,
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reservation",
		Args:  cobra.ExactArgs(1),
		RunE:  runReservationDelete,
	}

	reservation.AddCommand(add, list, get, update, status, del)
	return reservation
}

func addReservationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&reservationInput.ClientID, "client", "", "client id")
	cmd.Flags().StringVar(&reservationInput.UnitID, "unit", "", "unit id")
	cmd.Flags().StringVar(&reservationInput.StartDate, "start", "", "check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&reservationInput.EndDate, "end", "", "check-out date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&reservationInput.AmountPaid, "amount", "", "amount paid")
	cmd.Flags().StringVar(&reservationInput.Status, "status", "", "status (pending, confirmed, cancelled)")
}

func runReservationAdd(cmd *cobra.Command, args []string) error {
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	reservation, err := book.Reservations.Create(reservationInput)
	if err != nil {
		return renderError(err)
	}
	return printEntity(reservation, func() {
		fmt.Printf("Created reservation %d (code %s)\n", reservation.ID, reservation.Code)
	})
}

func runReservationList(cmd *cobra.Command, args []string) error {
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	var reservations []*types.Reservation
	switch {
	case listClientID > 0:
		reservations, err = book.Reservations.ListByClient(listClientID)
	case listUnitID > 0:
		reservations, err = book.Reservations.ListByUnit(listUnitID)
	case listStatus != "":
		if !types.IsValidStatus(listStatus) {
			return types.ErrInvalidStatus
		}
		reservations, err = book.Reservations.ListByStatus(listStatus)
	default:
		reservations, err = book.Reservations.ListAll()
	}
	if err != nil {
		return err
	}
	return printEntity(reservations, func() {
		printReservations(reservations)
	})
}

func runReservationGet(cmd *cobra.Command, args []string) error {
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
	return printEntity(reservation, func() {
		printReservations([]*types.Reservation{reservation})
	})
}

func runReservationUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	reservation, err := book.Reservations.Update(id, reservationInput)
	if err != nil {
		return renderError(err)
	}
	return printEntity(reservation, func() {
		fmt.Printf("Updated reservation %d\n", reservation.ID)
	})
}

func runReservationStatus(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	reservation, err := book.Reservations.UpdateStatus(id, args[1])
	if err != nil {
		return err
	}
	return printEntity(reservation, func() {
		fmt.Printf("Reservation %d is now %s\n", reservation.ID, reservation.Status)
	})
}

func runReservationDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	if err := book.Reservations.Delete(id); err != nil {
		return err
	}
	fmt.Printf("Deleted reservation %d\n", id)
	return nil
}

func printReservations(reservations []*types.Reservation) {
	for _, r := range reservations {
		fmt.Printf("%d\tclient %d\tunit %d\t%s -> %s\t%s\t$%.0f\t%s\n",
			r.ID, r.ClientID, r.UnitID,
			r.StartDate.Format(types.DateLayout), r.EndDate.Format(types.DateLayout),
			r.Status, r.AmountPaid, r.Code)
	}
}
