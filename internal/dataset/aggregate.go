// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

// ErrUnknownField is returned by CountByField for a field it cannot group on.
var ErrUnknownField = errors.New("unknown aggregate field")

// CountByField groups records by field and counts each group. Records where
// the field is absent (or the year is unknown) are dropped.
//
// Year buckets are returned in ascending year order and topN is ignored.
// Other fields are returned by descending count; equal counts keep the order
// in which their keys first appear. topN > 0 truncates the result.
func CountByField(records []types.Record, field types.Field, topN int) ([]types.FieldCount, error) {
	if field.Ordered() {
		return countYears(records), nil
	}

	value, err := fieldValue(field)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		v, ok := value(r)
		if !ok {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	out := make([]types.FieldCount, 0, len(order))
	for _, k := range order {
		out = append(out, types.FieldCount{Key: k, Count: counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

func fieldValue(field types.Field) (func(types.Record) (string, bool), error) {
	switch field {
	case types.FieldJournal:
		return func(r types.Record) (string, bool) { return types.Text(r.Journal) }, nil
	case types.FieldAuthors:
		return func(r types.Record) (string, bool) { return types.Text(r.Authors) }, nil
	case types.FieldTitle:
		return func(r types.Record) (string, bool) { return types.Text(r.Title) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func countYears(records []types.Record) []types.FieldCount {
	counts := make(map[types.Year]int)
	for _, r := range records {
		if r.Year.Known() {
			counts[r.Year]++
		}
	}

	years := make([]types.Year, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })

	out := make([]types.FieldCount, len(years))
	for i, y := range years {
		out[i] = types.FieldCount{Key: y.String(), Count: counts[y]}
	}
	return out
}

// Summary describes a record set for the stats view.
type Summary struct {
	Records           int        `json:"records" yaml:"records"`
	KnownYears        int        `json:"known_years" yaml:"known_years"`
	UnknownYears      int        `json:"unknown_years" yaml:"unknown_years"`
	MinYear           types.Year `json:"min_year,omitempty" yaml:"min_year,omitempty"`
	MaxYear           types.Year `json:"max_year,omitempty" yaml:"max_year,omitempty"`
	Journals          int        `json:"journals" yaml:"journals"`
	WithAbstract      int        `json:"with_abstract" yaml:"with_abstract"`
	MeanAbstractWords float64    `json:"mean_abstract_words" yaml:"mean_abstract_words"`
}

// Summarize counts records, known and unknown years, distinct journals, and
// the mean abstract length over records that have an abstract.
func Summarize(records []types.Record) Summary {
	s := Summary{Records: len(records)}
	journals := make(map[string]struct{})
	words := 0

	for _, r := range records {
		if r.Year.Known() {
			s.KnownYears++
		} else {
			s.UnknownYears++
		}
		if j, ok := types.Text(r.Journal); ok {
			journals[j] = struct{}{}
		}
		if r.Abstract != nil {
			s.WithAbstract++
			words += r.AbstractWordCount
		}
	}

	s.Journals = len(journals)
	s.MinYear, s.MaxYear, _ = YearBounds(records)
	if s.WithAbstract > 0 {
		s.MeanAbstractWords = float64(words) / float64(s.WithAbstract)
	}
	return s
}
