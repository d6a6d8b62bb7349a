package shared

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// HasFlags reports whether any flag was explicitly set on the command line.
func HasFlags(flags *pflag.FlagSet) bool {
	hasFlags := false
	flags.Visit(func(f *pflag.Flag) {
		if f.Name != "help" {
			hasFlags = true
		}
	})
	return hasFlags
}

// PrintResultAsJSON writes result to w as indented JSON.
func PrintResultAsJSON(w io.Writer, result interface{}) error {
	resultJSON, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return fmt.Errorf("error serializing JSON result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(resultJSON))
	return err
}
