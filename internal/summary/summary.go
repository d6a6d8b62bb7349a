// Package summary computes register-wide statistics.
package summary

import (
	"math"
	"strconv"

	"github.com/riskreg/riskreg/internal/risk"
)

// Summary holds the dashboard statistics of a register.
type Summary struct {
	Total        int                `json:"total"`
	HighCritical int                `json:"high_critical_count"`
	AverageScore float64            `json:"average_score"`
	ByLevel      map[risk.Level]int `json:"by_level"`
}

// Summarize counts records, counts the high and critical ones, and averages the scores
// to one decimal. An empty register yields zeroes.
func Summarize(records []risk.Record) Summary {
	s := Summary{ByLevel: make(map[risk.Level]int, len(risk.Levels()))}
	for _, l := range risk.Levels() {
		s.ByLevel[l] = 0
	}

	sum := 0
	for _, r := range records {
		s.Total++
		sum += r.Score
		if r.Level.Severe() {
			s.HighCritical++
		}
		s.ByLevel[r.Level]++
	}

	if s.Total > 0 {
		s.AverageScore = roundTenth(float64(sum) / float64(s.Total))
	}
	return s
}

// FormatAverage renders the average score with exactly one decimal.
func (s Summary) FormatAverage() string {
	return strconv.FormatFloat(s.AverageScore, 'f', 1, 64)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
