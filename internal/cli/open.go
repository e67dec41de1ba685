// Store and booking setup shared by glampd CLI commands.
package cli

import (
	"fmt"

	"github.com/camposanto/glampd/internal/booking"
	"github.com/camposanto/glampd/internal/memstore"
	"github.com/camposanto/glampd/internal/sqlite"
	"github.com/camposanto/glampd/pkg/types"
)

// openBook loads configuration, attaches the configured store backend, and
// wires the booking components over it. The caller must call the returned
// detach function when done.
func openBook() (*booking.Book, func() error, error) {
	v, err := loadConfig(resolveConfigDir())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	cfg := types.Config{
		Backend: v.GetString(cfgKeyBackend),
		DataDir: v.GetString(cfgKeyDataDir),
	}
	if flags.dataDir != "" {
		cfg.DataDir = flags.dataDir
	}
	if cfg.DataDir == "" {
		cfg.DataDir = ".glampd-db"
	}

	var store types.Store
	switch cfg.Backend {
	case types.BackendMemory:
		store = memstore.New()
	default:
		store = sqlite.NewBackend()
	}

	if err := store.Attach(cfg); err != nil {
		return nil, nil, fmt.Errorf("attach store: %w", err)
	}
	return booking.Open(store), store.Detach, nil
}
