package register

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riskreg/riskreg/internal/risk"
)

// compareField orders two records on a single field. Text fields compare lexicographically.
func compareField(a, b risk.Record, key Field) int {
	switch key {
	case FieldID:
		return compareInt64(a.ID, b.ID)
	case FieldAsset:
		return strings.Compare(a.Asset, b.Asset)
	case FieldThreat:
		return strings.Compare(a.Threat, b.Threat)
	case FieldLikelihood:
		return compareInt64(int64(a.Likelihood), int64(b.Likelihood))
	case FieldImpact:
		return compareInt64(int64(a.Impact), int64(b.Impact))
	case FieldScore:
		return compareInt64(int64(a.Score), int64(b.Score))
	default:
		panic(fmt.Sprintf("register: unsupported sort field %q", key))
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Sort returns a stably sorted copy of records. Equal keys keep their original order
// in both directions.
func Sort(records []risk.Record, key Field, dir Direction) []risk.Record {
	if !key.Valid() {
		panic(fmt.Sprintf("register: unsupported sort field %q", key))
	}
	sorted := make([]risk.Record, len(records))
	copy(sorted, records)

	sign := 1
	if dir == Desc {
		sign = -1
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sign*compareField(sorted[i], sorted[j], key) < 0
	})
	return sorted
}

// Select returns the records that pass the filter, keeping their order.
func Select(records []risk.Record, filter Filter) []risk.Record {
	selected := make([]risk.Record, 0, len(records))
	for _, r := range records {
		if filter.Match(r) {
			selected = append(selected, r)
		}
	}
	return selected
}
