// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"strings"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

// FilterByYearRange returns, in input order, the records whose year is known
// and lies within [minYear, maxYear]. Records with UnknownYear are never
// included. An inverted range matches nothing. The input is not modified.
func FilterByYearRange(records []types.Record, minYear, maxYear int) []types.Record {
	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		if !r.Year.Known() {
			continue
		}
		y := int(r.Year)
		if y >= minYear && y <= maxYear {
			out = append(out, r)
		}
	}
	return out
}

// SearchText returns the records whose title or authors contain query,
// ignoring case. An empty query returns records unchanged. Absent title or
// authors never match.
func SearchText(records []types.Record, query string) []types.Record {
	if query == "" {
		return records
	}

	needle := strings.ToLower(query)
	out := make([]types.Record, 0)
	for _, r := range records {
		if containsFold(r.Title, needle) || containsFold(r.Authors, needle) {
			out = append(out, r)
		}
	}
	return out
}

// containsFold reports whether the optional text s contains the lowercased
// needle.
func containsFold(s *string, needle string) bool {
	text, ok := types.Text(s)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(text), needle)
}

// YearBounds returns the smallest and largest known year in records.
// ok is false when no record has a known year.
func YearBounds(records []types.Record) (minYear, maxYear types.Year, ok bool) {
	for _, r := range records {
		if !r.Year.Known() {
			continue
		}
		if !ok || r.Year < minYear {
			minYear = r.Year
		}
		if !ok || r.Year > maxYear {
			maxYear = r.Year
		}
		ok = true
	}
	return minYear, maxYear, ok
}
