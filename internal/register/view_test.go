package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskreg/riskreg/internal/risk"
)

func rec(id int64, asset, threat string, likelihood, impact int) risk.Record {
	return risk.NewRecord(id, risk.Input{Asset: asset, Threat: threat, Likelihood: likelihood, Impact: impact})
}

func ids(records []risk.Record) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestProjectWorkedExample(t *testing.T) {
	records := []risk.Record{
		rec(1, "A", "t", 5, 5),
		rec(2, "B", "t", 1, 1),
		rec(3, "C", "t", 3, 4),
	}

	got := Project(records, View{Key: FieldScore, Dir: Desc, Filter: FilterAll})

	require.Len(t, got, 3)
	assert.Equal(t, []int{25, 12, 1}, []int{got[0].Score, got[1].Score, got[2].Score})
	assert.Equal(t, []risk.Level{risk.LevelCritical, risk.LevelMedium, risk.LevelLow},
		[]risk.Level{got[0].Level, got[1].Level, got[2].Level})
}

func TestSortIsStable(t *testing.T) {
	records := []risk.Record{
		rec(1, "web", "ddos", 2, 3),
		rec(2, "db", "leak", 3, 2),
		rec(3, "api", "xss", 1, 1),
		rec(4, "mail", "spam", 2, 3),
		rec(5, "vpn", "brute", 3, 2),
	}

	tests := []struct {
		name string
		key  Field
		dir  Direction
		want []int64
	}{
		{"score asc keeps ties in input order", FieldScore, Asc, []int64{3, 1, 2, 4, 5}},
		{"score desc keeps ties in input order", FieldScore, Desc, []int64{1, 2, 4, 5, 3}},
		{"likelihood asc", FieldLikelihood, Asc, []int64{3, 1, 4, 2, 5}},
		{"likelihood desc", FieldLikelihood, Desc, []int64{2, 5, 1, 4, 3}},
		{"impact desc", FieldImpact, Desc, []int64{1, 4, 2, 5, 3}},
		{"asset asc", FieldAsset, Asc, []int64{3, 2, 4, 5, 1}},
		{"threat desc", FieldThreat, Desc, []int64{3, 4, 2, 1, 5}},
		{"id desc", FieldID, Desc, []int64{5, 4, 3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Sort(records, tt.key, tt.dir)))
		})
	}
}

func TestSortTextIsLexicographic(t *testing.T) {
	records := []risk.Record{
		rec(1, "b", "t", 1, 1),
		rec(2, "B", "t", 1, 1),
		rec(3, "a", "t", 1, 1),
	}
	assert.Equal(t, []int64{2, 3, 1}, ids(Sort(records, FieldAsset, Asc)))
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	records := []risk.Record{rec(1, "a", "t", 1, 1), rec(2, "b", "t", 5, 5)}
	_ = Project(records, DefaultView())
	assert.Equal(t, []int64{1, 2}, ids(records))
}

func TestProjectFilter(t *testing.T) {
	records := []risk.Record{
		rec(1, "a", "t", 1, 1), // Low
		rec(2, "b", "t", 4, 4), // High
		rec(3, "c", "t", 3, 5), // High
		rec(4, "d", "t", 2, 4), // Medium
	}

	all := Project(records, View{Key: FieldID, Dir: Asc, Filter: FilterAll})
	assert.Equal(t, ids(Sort(records, FieldID, Asc)), ids(all), "All must be the identity filter")

	high := Project(records, View{Key: FieldScore, Dir: Desc, Filter: LevelFilter(risk.LevelHigh)})
	assert.Equal(t, []int64{2, 3}, ids(high))

	critical := Project(records, View{Key: FieldScore, Dir: Desc, Filter: LevelFilter(risk.LevelCritical)})
	assert.Empty(t, critical)
	assert.NotNil(t, critical)
}

func TestProjectEmpty(t *testing.T) {
	got := Project(nil, DefaultView())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSortUnknownFieldPanics(t *testing.T) {
	assert.Panics(t, func() { Sort([]risk.Record{rec(1, "a", "t", 1, 1)}, Field("level"), Asc) })
}

func TestViewToggle(t *testing.T) {
	v := DefaultView()
	assert.Equal(t, View{Key: FieldScore, Dir: Desc, Filter: FilterAll}, v)

	v = v.Toggle(FieldScore)
	assert.Equal(t, Asc, v.Dir)
	v = v.Toggle(FieldScore)
	assert.Equal(t, Desc, v.Dir, "toggling the same key twice restores the direction")

	v = v.Toggle(FieldScore)
	require.Equal(t, Asc, v.Dir)
	v = v.Toggle(FieldAsset)
	assert.Equal(t, View{Key: FieldAsset, Dir: Desc, Filter: FilterAll}, v, "a new key resets to desc")

	filtered := DefaultView().WithFilter(LevelFilter(risk.LevelLow)).Toggle(FieldID)
	assert.Equal(t, LevelFilter(risk.LevelLow), filtered.Filter)
}

func TestParseHelpers(t *testing.T) {
	f, err := ParseField(" Score ")
	assert.NoError(t, err)
	assert.Equal(t, FieldScore, f)

	_, err = ParseField("level")
	assert.Error(t, err)

	d, err := ParseDirection("ASC")
	assert.NoError(t, err)
	assert.Equal(t, Asc, d)

	_, err = ParseDirection("up")
	assert.Error(t, err)

	all, err := ParseFilter("")
	assert.NoError(t, err)
	assert.Equal(t, FilterAll, all)

	high, err := ParseFilter("high")
	assert.NoError(t, err)
	assert.Equal(t, LevelFilter(risk.LevelHigh), high)

	_, err = ParseFilter("severe")
	assert.Error(t, err)
}
