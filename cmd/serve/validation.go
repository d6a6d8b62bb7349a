package serve

import (
	"fmt"

	"github.com/riskreg/riskreg/internal/store"
)

// validateServeArgs validates the arguments provided to the serve command.
func validateServeArgs(options *RunOptionsServe, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("the serve command does not accept positional arguments")
	}

	if options.Port < 1 || options.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", options.Port)
	}

	switch options.Driver {
	case store.DriverMemory, store.DriverSQLite:
	case store.DriverPostgres:
		if options.DSN == "" {
			return fmt.Errorf("the 'dsn' flag must be specified for the postgres store")
		}
	default:
		return fmt.Errorf("unsupported store driver %q", options.Driver)
	}
	return nil
}
