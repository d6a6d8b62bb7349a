// Package risk holds the risk record model together with the scoring and mitigation rules.
package risk

import (
	"fmt"
	"strings"
)

// Level is the severity classification derived from a risk score.
type Level string

const (
	LevelLow      Level = "Low"
	LevelMedium   Level = "Medium"
	LevelHigh     Level = "High"
	LevelCritical Level = "Critical"
)

// Inclusive upper bounds of the score bands, checked in ascending order.
const (
	lowMaxScore    = 5
	mediumMaxScore = 12
	highMaxScore   = 18
)

// Levels returns all levels in ascending severity.
func Levels() []Level {
	return []Level{LevelLow, LevelMedium, LevelHigh, LevelCritical}
}

// String returns the level name.
func (l Level) String() string {
	return string(l)
}

// Valid reports whether l is one of the four known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh, LevelCritical:
		return true
	default:
		return false
	}
}

// Severe reports whether the level counts towards the high/critical total.
func (l Level) Severe() bool {
	return l == LevelHigh || l == LevelCritical
}

// ParseLevel converts a level name into a Level. Matching ignores case and surrounding spaces.
func ParseLevel(raw string) (Level, error) {
	trimmed := strings.TrimSpace(raw)
	for _, l := range Levels() {
		if strings.EqualFold(trimmed, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown risk level %q", raw)
}

// LevelForScore maps a score onto its level. First matching band wins.
func LevelForScore(score int) Level {
	switch {
	case score <= lowMaxScore:
		return LevelLow
	case score <= mediumMaxScore:
		return LevelMedium
	case score <= highMaxScore:
		return LevelHigh
	default:
		return LevelCritical
	}
}

var mitigationHints = map[Level]string{
	LevelLow:      "Accept / monitor",
	LevelMedium:   "Plan mitigation within 6 months",
	LevelHigh:     "Prioritize action + compensating controls (NIST PR.AC)",
	LevelCritical: "Immediate mitigation required + executive reporting",
}

// Advise returns the mitigation guidance for a level.
// Unknown levels yield an empty string rather than an error.
func Advise(level Level) string {
	return mitigationHints[level]
}
