package risk

import (
	"fmt"
	"strings"
)

// Bounds of the likelihood and impact ratings.
const (
	MinRating = 1
	MaxRating = 5
)

// Record is a single asset/threat assessment with its derived score and level.
type Record struct {
	ID         int64  `json:"id" db:"id"`
	Asset      string `json:"asset" db:"asset"`
	Threat     string `json:"threat" db:"threat"`
	Likelihood int    `json:"likelihood" db:"likelihood"`
	Impact     int    `json:"impact" db:"impact"`
	Score      int    `json:"score" db:"score"`
	Level      Level  `json:"level" db:"level"`
}

// Input carries the fields a submitter provides for a new record.
type Input struct {
	Asset      string `json:"asset"`
	Threat     string `json:"threat"`
	Likelihood int    `json:"likelihood"`
	Impact     int    `json:"impact"`
}

// CheckRating returns an error when v lies outside [MinRating, MaxRating].
func CheckRating(name string, v int) error {
	if v < MinRating || v > MaxRating {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, MinRating, MaxRating, v)
	}
	return nil
}

// Classify computes the score and level for a likelihood/impact pair.
// Ratings outside [1,5] are a caller bug and cause a panic.
func Classify(likelihood, impact int) (int, Level) {
	if err := CheckRating("likelihood", likelihood); err != nil {
		panic(fmt.Sprintf("risk.Classify: %v", err))
	}
	if err := CheckRating("impact", impact); err != nil {
		panic(fmt.Sprintf("risk.Classify: %v", err))
	}
	score := likelihood * impact
	return score, LevelForScore(score)
}

// NewRecord builds a record from an input and stamps its score and level.
func NewRecord(id int64, in Input) Record {
	r := Record{
		ID:         id,
		Asset:      in.Asset,
		Threat:     in.Threat,
		Likelihood: in.Likelihood,
		Impact:     in.Impact,
	}
	return r.Stamp()
}

// Stamp returns a copy of r with Score and Level recomputed from Likelihood and Impact.
func (r Record) Stamp() Record {
	r.Score, r.Level = Classify(r.Likelihood, r.Impact)
	return r
}

// Advice returns the mitigation guidance for the record's level.
func (r Record) Advice() string {
	return Advise(r.Level)
}

// Normalize trims surrounding whitespace from the text fields.
func (in Input) Normalize() Input {
	in.Asset = strings.TrimSpace(in.Asset)
	in.Threat = strings.TrimSpace(in.Threat)
	return in
}

// Validate checks the input the way the submission boundary requires:
// non-blank asset and threat, ratings within range.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Asset) == "" {
		return fmt.Errorf("asset must not be empty")
	}
	if strings.TrimSpace(in.Threat) == "" {
		return fmt.Errorf("threat must not be empty")
	}
	if err := CheckRating("likelihood", in.Likelihood); err != nil {
		return err
	}
	return CheckRating("impact", in.Impact)
}

// StampAll re-stamps every record and returns the result as a new slice.
func StampAll(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Stamp()
	}
	return out
}
