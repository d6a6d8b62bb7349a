package list

import (
	"fmt"

	"github.com/riskreg/riskreg/internal/register"
)

// validateListArgs validates the arguments and builds the view they describe.
// Sort and dir override the default view independently, then every toggle is applied in order.
func validateListArgs(options *RunOptionsList, args []string) (register.View, error) {
	view := register.DefaultView()

	if len(args) > 0 {
		return view, fmt.Errorf("the list command does not accept positional arguments")
	}

	if options.Sort != "" {
		key, err := register.ParseField(options.Sort)
		if err != nil {
			return view, err
		}
		view.Key = key
	}
	if options.Dir != "" {
		dir, err := register.ParseDirection(options.Dir)
		if err != nil {
			return view, err
		}
		view.Dir = dir
	}

	for _, raw := range options.Toggle {
		key, err := register.ParseField(raw)
		if err != nil {
			return view, fmt.Errorf("invalid toggle: %w", err)
		}
		view = view.Toggle(key)
	}

	filter, err := register.ParseFilter(options.Level)
	if err != nil {
		return view, err
	}
	return view.WithFilter(filter), nil
}
