// Package render prints registers, matrices and summaries for a terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/riskreg/riskreg/internal/matrix"
	"github.com/riskreg/riskreg/internal/risk"
	"github.com/riskreg/riskreg/internal/summary"
)

// DefaultPreview is the number of members listed per matrix cell.
const DefaultPreview = 5

var levelColors = map[risk.Level]*color.Color{
	risk.LevelLow:      color.New(color.FgGreen),
	risk.LevelMedium:   color.New(color.FgYellow),
	risk.LevelHigh:     color.New(color.FgRed),
	risk.LevelCritical: color.New(color.FgHiRed, color.Bold),
}

// Level returns the level name, colored when the terminal supports it.
func Level(l risk.Level) string {
	if c, ok := levelColors[l]; ok {
		return c.Sprint(l.String())
	}
	return l.String()
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Table prints records in the given order with their mitigation advice.
func Table(w io.Writer, records []risk.Record) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tASSET\tTHREAT\tL\tI\tSCORE\tLEVEL\tMITIGATION")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			r.ID, r.Asset, r.Threat, r.Likelihood, r.Impact, r.Score, Level(r.Level), r.Advice())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No risks recorded.")
		return err
	}
	return nil
}

// Grid prints the 5x5 counts with likelihood 5 on top and impact growing to the right.
func Grid(w io.Writer, m matrix.Matrix) error {
	tw := newTabWriter(w)
	header := []string{"L \\ I"}
	for i := risk.MinRating; i <= risk.MaxRating; i++ {
		header = append(header, fmt.Sprint(i))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range m.Rows() {
		cols := []string{fmt.Sprint(row[0].Likelihood)}
		for _, cell := range row {
			cols = append(cols, fmt.Sprintf("%d %s", cell.Count(), levelInitial(cell.Level)))
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}
	return tw.Flush()
}

func levelInitial(l risk.Level) string {
	name := l.String()
	if name == "" {
		return ""
	}
	if c, ok := levelColors[l]; ok {
		return c.Sprint(name[:1])
	}
	return name[:1]
}

// Preview returns at most n members and the number left out.
func Preview(members []string, n int) ([]string, int) {
	if n < 0 {
		n = 0
	}
	if len(members) <= n {
		return members, 0
	}
	return members[:n], len(members) - n
}

// PreviewText joins a cell preview, e.g. "DB, Web ...and 2 more".
func PreviewText(members []string, n int) string {
	shown, more := Preview(members, n)
	text := strings.Join(shown, ", ")
	if more > 0 {
		text = strings.TrimSpace(fmt.Sprintf("%s ...and %d more", text, more))
	}
	return text
}

// Cells prints every occupied cell in grid order with a preview of its members.
func Cells(w io.Writer, m matrix.Matrix, n int) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "CELL\tSCORE\tLEVEL\tCOUNT\tASSETS")
	for _, row := range m.Rows() {
		for _, cell := range row {
			if cell.Count() == 0 {
				continue
			}
			fmt.Fprintf(tw, "L%d x I%d\t%d\t%s\t%d\t%s\n",
				cell.Likelihood, cell.Impact, cell.Score, Level(cell.Level), cell.Count(), PreviewText(cell.Members, n))
		}
	}
	return tw.Flush()
}

// Summary prints the register statistics.
func Summary(w io.Writer, s summary.Summary) error {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "Total risks:\t%d\n", s.Total)
	fmt.Fprintf(tw, "High/Critical:\t%d\n", s.HighCritical)
	fmt.Fprintf(tw, "Average score:\t%s\n", s.FormatAverage())
	for _, l := range risk.Levels() {
		fmt.Fprintf(tw, "  %s:\t%d\n", Level(l), s.ByLevel[l])
	}
	return tw.Flush()
}
