package deleterisk

import (
	"fmt"
	"strconv"
)

// validateDeleteArgs parses the single positional record id.
func validateDeleteArgs(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("exactly one record id is required, got %d arguments", len(args))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("record id must be a positive integer, got %q", args[0])
	}
	return id, nil
}
