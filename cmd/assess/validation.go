package assess

import (
	"fmt"

	"github.com/riskreg/riskreg/internal/risk"
)

// validateAssessArgs trims and validates the submission before it is sent.
func validateAssessArgs(in risk.Input, args []string) (risk.Input, error) {
	if len(args) > 0 {
		return in, fmt.Errorf("the assess command does not accept positional arguments")
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return in, err
	}
	return in, nil
}
