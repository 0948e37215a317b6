// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dashboard renders the explorer views: publications by year, the
// top journals, and the searchable record table. It only consumes the
// dataset package's query results.
package dashboard

import (
	"fmt"

	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

// Query holds the user inputs for one dashboard view.
type Query struct {
	// Range bounds the year filter. Open bounds take the dataset's extremes.
	Range types.YearRange

	// Text is the title/author search string; empty disables search.
	Text string

	// TopJournals limits the journal chart (default 10).
	TopJournals int

	// Rows limits the paper table (default 20).
	Rows int
}

// View is everything the dashboard shows for one Query.
type View struct {
	Source       string             `json:"source"`
	Total        int                `json:"total_records"`
	UnknownYears int                `json:"unknown_years"`
	From         int                `json:"from_year"`
	To           int                `json:"to_year"`
	HasYears     bool               `json:"has_years"`
	Query        string             `json:"query,omitempty"`
	InRange      int                `json:"records_in_range"`
	ByYear       []types.FieldCount `json:"publications_by_year"`
	TopN         int                `json:"top_n"`
	TopJournals  []types.FieldCount `json:"top_journals"`
	MatchCount   int                `json:"match_count"`
	Papers       []Paper            `json:"papers"`

	// Matches holds every search hit; Papers is its first Rows entries.
	Matches []types.Record `json:"-"`
}

// Paper is one row of the paper table. Absent text columns are empty.
type Paper struct {
	Title             string `json:"title"`
	PublishTime       string `json:"publish_time"`
	Year              string `json:"year"`
	Journal           string `json:"journal"`
	AbstractWordCount int    `json:"abstract_word_count"`
}

func toPaper(r types.Record) Paper {
	p := Paper{
		Year:              r.Year.String(),
		AbstractWordCount: r.AbstractWordCount,
	}
	p.Title, _ = types.Text(r.Title)
	p.PublishTime, _ = types.Text(r.PublishTime)
	p.Journal, _ = types.Text(r.Journal)
	return p
}

// BuildView runs the year filter, aggregates the charts over the filtered
// records, and applies the text search for the table.
func BuildView(ds *dataset.Dataset, q Query) (View, error) {
	records := ds.Records()

	v := View{
		Source:       ds.Source(),
		Total:        len(records),
		UnknownYears: ds.Stats().UnknownYears,
		Query:        q.Text,
	}

	lo, hi, ok := dataset.YearBounds(records)
	v.HasYears = ok
	v.From, v.To = int(lo), int(hi)
	if q.Range.From != nil {
		v.From = *q.Range.From
	}
	if q.Range.To != nil {
		v.To = *q.Range.To
	}

	var inRange []types.Record
	if ok || q.Range.From != nil || q.Range.To != nil {
		inRange = dataset.FilterByYearRange(records, v.From, v.To)
	}
	v.InRange = len(inRange)

	byYear, err := dataset.CountByField(inRange, types.FieldYear, 0)
	if err != nil {
		return View{}, fmt.Errorf("counting by year: %w", err)
	}
	v.ByYear = byYear

	defaults := types.DefaultExplorerConfig()
	top := q.TopJournals
	if top <= 0 {
		top = defaults.TopJournals
	}
	v.TopN = top
	journals, err := dataset.CountByField(inRange, types.FieldJournal, top)
	if err != nil {
		return View{}, fmt.Errorf("counting journals: %w", err)
	}
	v.TopJournals = journals

	v.Matches = dataset.SearchText(inRange, q.Text)
	v.MatchCount = len(v.Matches)

	rows := q.Rows
	if rows <= 0 {
		rows = defaults.TableRows
	}
	v.Papers = make([]Paper, 0, min(rows, len(v.Matches)))
	for _, r := range v.Matches[:min(rows, len(v.Matches))] {
		v.Papers = append(v.Papers, toPaper(r))
	}
	return v, nil
}
