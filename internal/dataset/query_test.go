// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

func rec(title, authors string, year types.Year) types.Record {
	return types.Record{
		Title:   types.StringPtr(title),
		Authors: types.StringPtr(authors),
		Year:    year,
	}
}

func titles(records []types.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		s, _ := types.Text(r.Title)
		out = append(out, s)
	}
	return out
}

func sampleRecords() []types.Record {
	return []types.Record{
		rec("Coronavirus spike protein", "Smith, J.; Doe, A.", 2020),
		rec("Influenza surveillance", "Brown, K.", 2019),
		rec("Undated preprint", "SMITHSON, P.", types.UnknownYear),
		rec("Vaccine trial", "Lee, M.", 2021),
		rec("SARS retrospective", "Nguyen, T.", 2003),
		rec("Spike glycoprotein structure", "", 2020),
	}
}

// --- FilterByYearRange ---

func TestFilterByYearRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		want     []string
	}{
		{
			name: "inclusive bounds",
			min:  2019, max: 2020,
			want: []string{"Coronavirus spike protein", "Influenza surveillance", "Spike glycoprotein structure"},
		},
		{
			name: "single year",
			min:  2021, max: 2021,
			want: []string{"Vaccine trial"},
		},
		{
			name: "inverted range matches nothing",
			min:  2021, max: 2019,
			want: []string{},
		},
		{
			name: "widest bounds still exclude unknown year",
			min:  math.MinInt, max: math.MaxInt,
			want: []string{"Coronavirus spike protein", "Influenza surveillance", "Vaccine trial", "SARS retrospective", "Spike glycoprotein structure"},
		},
		{
			name: "range covering the sentinel value excludes it",
			min:  -10, max: 10,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByYearRange(sampleRecords(), tt.min, tt.max)
			if diff := cmp.Diff(tt.want, titles(got)); diff != "" {
				t.Errorf("FilterByYearRange mismatch (-want +got):\n%s", diff)
			}
			for _, r := range got {
				require.True(t, r.Year.Known())
				assert.GreaterOrEqual(t, int(r.Year), tt.min)
				assert.LessOrEqual(t, int(r.Year), tt.max)
			}
		})
	}
}

func TestFilterByYearRangeIdempotent(t *testing.T) {
	once := FilterByYearRange(sampleRecords(), 2019, 2021)
	twice := FilterByYearRange(once, 2019, 2021)
	assert.Equal(t, once, twice)
}

func TestFilterByYearRangeLeavesInputUntouched(t *testing.T) {
	in := sampleRecords()
	before := titles(in)

	_ = FilterByYearRange(in, 2020, 2020)

	assert.Equal(t, before, titles(in))
	assert.Len(t, in, 6)
}

func TestDatasetFilterByYearRange(t *testing.T) {
	ds := NewDataset("mem", sampleRecords())
	got := ds.FilterByYearRange(2003, 2003)
	assert.Equal(t, []string{"SARS retrospective"}, titles(got))
}

// --- SearchText ---

func TestSearchTextEmptyQueryIsIdentity(t *testing.T) {
	in := sampleRecords()
	got := SearchText(in, "")
	require.Len(t, got, len(in))
	assert.Same(t, &in[0], &got[0])
}

func TestSearchText(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "matches title",
			query: "spike",
			want:  []string{"Coronavirus spike protein", "Spike glycoprotein structure"},
		},
		{
			name:  "matches authors",
			query: "smith",
			want:  []string{"Coronavirus spike protein", "Undated preprint"},
		},
		{
			name:  "no match",
			query: "ebola",
			want:  []string{},
		},
		{
			name:  "substring across words",
			query: "trial",
			want:  []string{"Vaccine trial"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchText(sampleRecords(), tt.query)
			if diff := cmp.Diff(tt.want, titles(got)); diff != "" {
				t.Errorf("SearchText(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestSearchTextCaseInsensitive(t *testing.T) {
	in := sampleRecords()
	assert.Equal(t, SearchText(in, "smith"), SearchText(in, "Smith"))
	assert.Equal(t, SearchText(in, "smith"), SearchText(in, "SMITH"))
}

func TestSearchTextAbsentFieldsNeverMatch(t *testing.T) {
	in := []types.Record{
		{Year: 2020},
		{Title: types.StringPtr("Present"), Year: 2020},
	}
	assert.NotPanics(t, func() {
		got := SearchText(in, "present")
		assert.Equal(t, []string{"Present"}, titles(got))
	})
}

// --- YearBounds ---

func TestYearBounds(t *testing.T) {
	lo, hi, ok := YearBounds(sampleRecords())
	assert.True(t, ok)
	assert.Equal(t, types.Year(2003), lo)
	assert.Equal(t, types.Year(2021), hi)

	_, _, ok = YearBounds([]types.Record{{Year: types.UnknownYear}})
	assert.False(t, ok)

	_, _, ok = YearBounds(nil)
	assert.False(t, ok)
}
