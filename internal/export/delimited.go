// Package export serializes risk records for download or hand-off to other tools.
package export

import (
	"strconv"
	"strings"

	"github.com/riskreg/riskreg/internal/risk"
)

// Header is the column row of the delimited export. It is quoted like the data rows,
// although the original dashboard wrote it unquoted.
var Header = []string{"ID", "Asset", "Threat", "Likelihood", "Impact", "Score", "Level"}

// Delimited renders records as comma-separated rows with every field wrapped in double quotes.
// The header is always the first row; rows are joined by "\n" without a trailing newline.
//
// Field values are written verbatim: a double quote inside a value is not escaped, so such
// values produce malformed CSV. JSON and SARIF exports do not share this limitation.
func Delimited(records []risk.Record) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, quoteRow(Header))
	for _, r := range records {
		lines = append(lines, quoteRow(row(r)))
	}
	return strings.Join(lines, "\n")
}

func row(r risk.Record) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Asset,
		r.Threat,
		strconv.Itoa(r.Likelihood),
		strconv.Itoa(r.Impact),
		strconv.Itoa(r.Score),
		r.Level.String(),
	}
}

func quoteRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + f + `"`
	}
	return strings.Join(quoted, ",")
}
