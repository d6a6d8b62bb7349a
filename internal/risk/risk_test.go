package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyScoreIsProduct(t *testing.T) {
	for l := MinRating; l <= MaxRating; l++ {
		for i := MinRating; i <= MaxRating; i++ {
			score, level := Classify(l, i)
			if score != l*i {
				t.Fatalf("Classify(%d, %d) score = %d, want %d", l, i, score, l*i)
			}
			again, levelAgain := Classify(l, i)
			if again != score || levelAgain != level {
				t.Fatalf("Classify(%d, %d) is not deterministic", l, i)
			}
			if level != LevelForScore(score) {
				t.Fatalf("Classify(%d, %d) level = %s, want %s", l, i, level, LevelForScore(score))
			}
		}
	}
}

func TestLevelForScoreBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Level
	}{
		{1, LevelLow},
		{5, LevelLow},
		{6, LevelMedium},
		{12, LevelMedium},
		{13, LevelHigh},
		{18, LevelHigh},
		{19, LevelCritical},
		{25, LevelCritical},
	}
	for _, tt := range tests {
		if got := LevelForScore(tt.score); got != tt.want {
			t.Errorf("LevelForScore(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestClassifyPanicsOutOfRange(t *testing.T) {
	tests := []struct {
		name       string
		likelihood int
		impact     int
	}{
		{"likelihood zero", 0, 3},
		{"likelihood six", 6, 3},
		{"impact zero", 3, 0},
		{"impact negative", 3, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { Classify(tt.likelihood, tt.impact) })
		})
	}
}

func TestAdvise(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelLow, "Accept / monitor"},
		{LevelMedium, "Plan mitigation within 6 months"},
		{LevelHigh, "Prioritize action + compensating controls (NIST PR.AC)"},
		{LevelCritical, "Immediate mitigation required + executive reporting"},
		{Level("Severe"), ""},
		{Level(""), ""},
		{Level("low"), ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.want, Advise(tt.level))
		})
	}
}

func TestParseLevel(t *testing.T) {
	got, err := ParseLevel(" critical ")
	assert.NoError(t, err)
	assert.Equal(t, LevelCritical, got)

	_, err = ParseLevel("All")
	assert.Error(t, err)
}

func TestNewRecordStampsDerivedFields(t *testing.T) {
	r := NewRecord(7, Input{Asset: "DB", Threat: "Access", Likelihood: 3, Impact: 4})
	assert.Equal(t, int64(7), r.ID)
	assert.Equal(t, 12, r.Score)
	assert.Equal(t, LevelMedium, r.Level)
	assert.Equal(t, "Plan mitigation within 6 months", r.Advice())
}

func TestStampOverridesStaleFields(t *testing.T) {
	stale := Record{ID: 1, Asset: "a", Threat: "t", Likelihood: 5, Impact: 5, Score: 3, Level: LevelLow}
	fixed := stale.Stamp()
	assert.Equal(t, 25, fixed.Score)
	assert.Equal(t, LevelCritical, fixed.Level)
	assert.Equal(t, 3, stale.Score, "Stamp must not modify the receiver")
}

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		wantErr string
	}{
		{"valid", Input{Asset: "DB", Threat: "Access", Likelihood: 1, Impact: 5}, ""},
		{"blank asset", Input{Asset: "  ", Threat: "Access", Likelihood: 1, Impact: 1}, "asset must not be empty"},
		{"empty threat", Input{Asset: "DB", Likelihood: 1, Impact: 1}, "threat must not be empty"},
		{"likelihood high", Input{Asset: "DB", Threat: "x", Likelihood: 6, Impact: 1}, "likelihood must be between 1 and 5, got 6"},
		{"impact low", Input{Asset: "DB", Threat: "x", Likelihood: 1, Impact: 0}, "impact must be between 1 and 5, got 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestInputNormalize(t *testing.T) {
	in := Input{Asset: "  Customer DB ", Threat: "\tPhishing\n", Likelihood: 2, Impact: 2}.Normalize()
	assert.Equal(t, "Customer DB", in.Asset)
	assert.Equal(t, "Phishing", in.Threat)
}
