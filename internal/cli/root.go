// Package cli implements the glampd command-line interface: client, unit,
// and reservation management plus availability checks and price quotes.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/camposanto/glampd/pkg/types"
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

var flags rootFlags

// NewRootCmd creates the top-level "glampd" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "glampd",
		Short: "Manage glamping-site bookings",
		Long: `Glampd manages clients, rentable glamping units, and the reservations
linking them, keeping every unit's schedule free of double bookings.`,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .glampd)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (overrides config)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newClientCmd())
	root.AddCommand(newUnitCmd())
	root.AddCommand(newReservationCmd())
	root.AddCommand(newAvailabilityCmd())
	root.AddCommand(newQuoteCmd())

	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("glampd v0.1.0")
		},
	}
}

// printEntity renders v as indented JSON in --json mode, or calls text.
func printEntity(v any, text func()) error {
	if flags.jsonMode {
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}
	text()
	return nil
}

// parseID parses a positional id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// renderError expands validation failures to one line per field so callers
// see everything wrong with a submission at once; other errors pass through.
func renderError(err error) error {
	var fieldErrs types.FieldErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for f := range fieldErrs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(os.Stderr, "%s: %s\n", f, fieldErrs[f])
		}
		return errors.New("validation failed")
	}
	return err
}
