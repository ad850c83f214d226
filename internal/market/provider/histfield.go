package provider

import (
	"sort"
	"strings"
	"time"
)

// datedField is one date-suffixed column found on a raw quote.
type datedField struct {
	date  time.Time
	value any
}

// LatestDatedField scans a raw quote for columns named "<date><suffix>",
// e.g. "2025-06-02-unit-nav", and returns the value with the newest
// embedded date whose value is non-nil. Historical fund snapshots pivot
// NAV history into such columns and the set of dates present varies per
// snapshot, so callers cannot address a fixed key.
//
// The second return value is false when no parseable, non-nil column
// matches the suffix.
func LatestDatedField(raw RawQuote, suffix string) (any, bool) {
	var candidates []datedField

	for key, value := range raw {
		if !strings.HasSuffix(key, suffix) {
			continue
		}
		if value == nil {
			continue
		}
		datePart := strings.TrimSuffix(key, suffix)
		date, err := time.Parse("2006-01-02", datePart)
		if err != nil {
			continue
		}
		candidates = append(candidates, datedField{date: date, value: value})
	}

	if len(candidates) == 0 {
		return nil, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].date.After(candidates[j].date)
	})
	return candidates[0].value, true
}

// LatestUnitNAV returns the newest unit net-asset-value column from a fund
// snapshot, falling back to the plain price field when no dated column
// exists.
func LatestUnitNAV(raw RawQuote) (any, bool) {
	if value, ok := LatestDatedField(raw, SuffixUnitNAV); ok {
		return value, true
	}
	if value, ok := raw[FieldPrice]; ok && value != nil {
		return value, true
	}
	return nil, false
}
