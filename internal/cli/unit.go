// Unit subcommands for the glampd CLI.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/camposanto/glampd/pkg/types"
)

var (
	unitInput     types.UnitInput
	unitAvailable bool

	searchName     string
	searchCapacity int
	searchPriceMin int
	searchPriceMax int
	searchFeature  string
	listAvailable  bool
)

func newUnitCmd() *cobra.Command {
	unit := &cobra.Command{
		Use:   "unit",
		Short: "Manage glamping units",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a new glamping unit",
		Long: `Add creates a new rentable unit. Capacity and nightly price must be
positive integers. New units accept bookings unless --available=false.

Example:
  glampd unit add --name "Domo Luna" --capacity 4 --price 100000 --feature jacuzzi --feature wifi`,
		RunE: runUnitAdd,
	}
	addUnitFlags(add)

	list := &cobra.Command{
		Use:   "list",
		Short: "List units",
		RunE:  runUnitList,
	}
	list.Flags().BoolVar(&listAvailable, "available", false, "only units open to new bookings")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a unit by id",
		Args:  cobra.ExactArgs(1),
		RunE:  runUnitGet,
	}

	search := &cobra.Command{
		Use:   "search",
		Short: "Search units by name, capacity, price range, or feature",
		Long: `Search filters units by exactly one criterion: --name and --feature match
substrings case-insensitively, --capacity is a minimum, and --price-min with
--price-max bound the nightly price inclusively.`,
		RunE: runUnitSearch,
	}
	search.Flags().StringVar(&searchName, "name", "", "substring of the unit name")
	search.Flags().IntVar(&searchCapacity, "capacity", 0, "minimum capacity")
	search.Flags().IntVar(&searchPriceMin, "price-min", 0, "minimum nightly price")
	search.Flags().IntVar(&searchPriceMax, "price-max", 0, "maximum nightly price")
	search.Flags().StringVar(&searchFeature, "feature", "", "substring of a feature")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a unit",
		Long: `Update overwrites the supplied fields of an existing unit. Capacity and
price are required and always overwrite; an empty name keeps the stored one.`,
		Args: cobra.ExactArgs(1),
		RunE: runUnitUpdate,
	}
	addUnitFlags(update)

	availability := &cobra.Command{
		Use:   "set-availability <id> <true|false>",
		Short: "Open or close a unit to new bookings",
		Long: `Set-availability toggles whether the unit accepts new reservations.
Existing reservations are unaffected.`,
		Args: cobra.ExactArgs(2),
		RunE: runUnitSetAvailability,
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a unit",
		Long: `Delete removes a unit. A unit referenced by any reservation cannot be
deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: runUnitDelete,
	}

	unit.AddCommand(add, list, get, search, update, availability, del)
	return unit
}

func addUnitFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&unitInput.Name, "name", "", "unit name")
	cmd.Flags().StringVar(&unitInput.Capacity, "capacity", "", "guest capacity (required)")
	cmd.Flags().StringVar(&unitInput.PricePerNight, "price", "", "price per night (required)")
	cmd.Flags().StringSliceVar(&unitInput.Features, "feature", nil, "feature, repeatable")
	cmd.Flags().BoolVar(&unitAvailable, "available", true, "accepts new bookings")
}

// unitInputFromFlags resolves the Available pointer: only a flag the user
// actually set overrides the stored or default value.
func unitInputFromFlags(cmd *cobra.Command) types.UnitInput {
	in := unitInput
	if cmd.Flags().Changed("available") {
		in.Available = &unitAvailable
	}
	return in
}

func runUnitAdd(cmd *cobra.Command, args []string) error {
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	unit, err := book.Units.Create(unitInputFromFlags(cmd))
	if err != nil {
		return renderError(err)
	}
	return printEntity(unit, func() {
		fmt.Printf("Created unit %d: %s\n", unit.ID, unit.Name)
	})
}

func runUnitList(cmd *cobra.Command, args []string) error {
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	var units []*types.Unit
	if listAvailable {
		units, err = book.Units.FindAvailable()
	} else {
		units, err = book.Units.FindAll()
	}
	if err != nil {
		return err
	}
	return printEntity(units, func() {
		printUnits(units)
	})
}

func runUnitGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	unit, err := book.Units.FindByID(id)
	if err != nil {
		return err
	}
	return printEntity(unit, func() {
		printUnits([]*types.Unit{unit})
	})
}

func runUnitSearch(cmd *cobra.Command, args []string) error {
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	var units []*types.Unit
	switch {
	case searchName != "":
		units, err = book.Units.SearchByName(searchName)
	case searchCapacity > 0:
		units, err = book.Units.SearchByCapacity(searchCapacity)
	case searchPriceMax > 0:
		units, err = book.Units.SearchByPriceRange(searchPriceMin, searchPriceMax)
	case searchFeature != "":
		units, err = book.Units.SearchByFeature(searchFeature)
	default:
		return fmt.Errorf("one of --name, --capacity, --price-min/--price-max, or --feature is required")
	}
	if err != nil {
		return err
	}
	return printEntity(units, func() {
		printUnits(units)
	})
}

func runUnitUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	unit, err := book.Units.Update(id, unitInputFromFlags(cmd))
	if err != nil {
		return renderError(err)
	}
	return printEntity(unit, func() {
		fmt.Printf("Updated unit %d\n", unit.ID)
	})
}

func runUnitSetAvailability(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	var available bool
	switch args[1] {
	case "true":
		available = true
	case "false":
		available = false
	default:
		return fmt.Errorf("availability must be true or false, got %q", args[1])
	}

	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	unit, err := book.Units.SetAvailability(id, available)
	if err != nil {
		return err
	}
	return printEntity(unit, func() {
		fmt.Printf("Unit %d available: %t\n", unit.ID, unit.Available)
	})
}

func runUnitDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	if err := book.Units.Delete(id); err != nil {
		return err
	}
	fmt.Printf("Deleted unit %d\n", id)
	return nil
}

func printUnits(units []*types.Unit) {
	for _, u := range units {
		fmt.Printf("%d\t%s\tcap %d\t$%d/night\t[%s]\tavailable=%t\n",
			u.ID, u.Name, u.Capacity, u.PricePerNight,
			strings.Join(u.Features, ", "), u.Available)
	}
}
