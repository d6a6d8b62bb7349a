// Package register provides sorted and filtered projections over a risk register.
package register

import (
	"fmt"
	"strings"

	"github.com/riskreg/riskreg/internal/risk"
)

// Field names a sortable record attribute.
type Field string

const (
	FieldID         Field = "id"
	FieldAsset      Field = "asset"
	FieldThreat     Field = "threat"
	FieldLikelihood Field = "likelihood"
	FieldImpact     Field = "impact"
	FieldScore      Field = "score"
)

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Filter selects records by level. FilterAll keeps everything.
type Filter string

// FilterAll is the identity filter.
const FilterAll Filter = "All"

// Fields returns the sortable fields in table column order.
func Fields() []Field {
	return []Field{FieldID, FieldAsset, FieldThreat, FieldLikelihood, FieldImpact, FieldScore}
}

// Valid reports whether f is a sortable field.
func (f Field) Valid() bool {
	for _, known := range Fields() {
		if f == known {
			return true
		}
	}
	return false
}

// ParseField converts a field name into a Field.
func ParseField(raw string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(raw)))
	if !f.Valid() {
		return "", fmt.Errorf("unsupported sort field %q", raw)
	}
	return f, nil
}

// ParseDirection converts "asc" or "desc" into a Direction.
func ParseDirection(raw string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return "", fmt.Errorf("unsupported sort direction %q", raw)
	}
}

// ParseFilter converts "All" or a level name into a Filter.
func ParseFilter(raw string) (Filter, error) {
	if raw == "" || strings.EqualFold(strings.TrimSpace(raw), string(FilterAll)) {
		return FilterAll, nil
	}
	level, err := risk.ParseLevel(raw)
	if err != nil {
		return "", fmt.Errorf("unsupported level filter: %w", err)
	}
	return LevelFilter(level), nil
}

// LevelFilter returns the filter keeping only records of the given level.
func LevelFilter(level risk.Level) Filter {
	return Filter(level)
}

// Match reports whether a record passes the filter.
func (f Filter) Match(r risk.Record) bool {
	return f == FilterAll || risk.Level(f) == r.Level
}

// View is the transient configuration of a projection.
type View struct {
	Key    Field     `json:"key"`
	Dir    Direction `json:"dir"`
	Filter Filter    `json:"filter"`
}

// DefaultView sorts by score, highest first, with no filter.
func DefaultView() View {
	return View{Key: FieldScore, Dir: Desc, Filter: FilterAll}
}

// Toggle returns the view after a sort request on key.
// Repeating the active key while descending flips to ascending; anything else sorts descending.
func (v View) Toggle(key Field) View {
	dir := Desc
	if v.Key == key && v.Dir == Desc {
		dir = Asc
	}
	return View{Key: key, Dir: dir, Filter: v.Filter}
}

// WithFilter returns a copy of the view with a different filter.
func (v View) WithFilter(f Filter) View {
	v.Filter = f
	return v
}

// Project sorts records by the view's key and direction, then applies its filter.
// The input slice is never modified.
func Project(records []risk.Record, view View) []risk.Record {
	return Select(Sort(records, view.Key, view.Dir), view.Filter)
}
