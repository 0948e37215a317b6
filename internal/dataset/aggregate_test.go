// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

func journalRecords(journals ...string) []types.Record {
	out := make([]types.Record, len(journals))
	for i, j := range journals {
		out[i] = types.Record{Journal: types.StringPtr(j), Year: 2020}
	}
	return out
}

func TestCountByFieldJournalTopN(t *testing.T) {
	records := journalRecords("A", "B", "A", "C", "B", "A")

	got, err := CountByField(records, types.FieldJournal, 2)
	require.NoError(t, err)

	want := []types.FieldCount{{Key: "A", Count: 3}, {Key: "B", Count: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CountByField mismatch (-want +got):\n%s", diff)
	}
}

func TestCountByFieldNoLimit(t *testing.T) {
	records := journalRecords("A", "B", "A", "C", "B", "A")

	got, err := CountByField(records, types.FieldJournal, 0)
	require.NoError(t, err)
	assert.Equal(t, []types.FieldCount{
		{Key: "A", Count: 3},
		{Key: "B", Count: 2},
		{Key: "C", Count: 1},
	}, got)
}

func TestCountByFieldTiesKeepFirstSeenOrder(t *testing.T) {
	records := journalRecords("Z", "Y", "X", "Y", "Z", "X", "W")

	for i := 0; i < 5; i++ {
		got, err := CountByField(records, types.FieldJournal, 0)
		require.NoError(t, err)
		assert.Equal(t, []types.FieldCount{
			{Key: "Z", Count: 2},
			{Key: "Y", Count: 2},
			{Key: "X", Count: 2},
			{Key: "W", Count: 1},
		}, got)
	}
}

func TestCountByFieldDropsAbsent(t *testing.T) {
	records := append(journalRecords("A"), types.Record{Year: 2020}, types.Record{Year: 2021})

	got, err := CountByField(records, types.FieldJournal, 0)
	require.NoError(t, err)
	assert.Equal(t, []types.FieldCount{{Key: "A", Count: 1}}, got)
}

func TestCountByFieldYear(t *testing.T) {
	records := []types.Record{
		{Year: 2021}, {Year: 2019}, {Year: types.UnknownYear},
		{Year: 2021}, {Year: 2003}, {Year: 2021}, {Year: 2019},
	}

	// topN does not apply to year buckets.
	got, err := CountByField(records, types.FieldYear, 1)
	require.NoError(t, err)
	assert.Equal(t, []types.FieldCount{
		{Key: "2003", Count: 1},
		{Key: "2019", Count: 2},
		{Key: "2021", Count: 3},
	}, got)
}

func TestCountByFieldAuthorsAndTitle(t *testing.T) {
	records := sampleRecords()

	got, err := CountByField(records, types.FieldTitle, 1)
	require.NoError(t, err)
	assert.Equal(t, []types.FieldCount{{Key: "Coronavirus spike protein", Count: 1}}, got)

	got, err = CountByField(records, types.FieldAuthors, 0)
	require.NoError(t, err)
	// The last sample record has no authors.
	assert.Len(t, got, 5)
}

func TestCountByFieldUnknownField(t *testing.T) {
	_, err := CountByField(sampleRecords(), types.Field("abstract"), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestCountByFieldEmpty(t *testing.T) {
	got, err := CountByField(nil, types.FieldJournal, 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = CountByField(nil, types.FieldYear, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSummarize(t *testing.T) {
	records := []types.Record{
		{Journal: types.StringPtr("A"), Abstract: types.StringPtr("x y"), AbstractWordCount: 2, Year: 2020},
		{Journal: types.StringPtr("A"), Abstract: types.StringPtr("x y z w"), AbstractWordCount: 4, Year: 2018},
		{Journal: types.StringPtr("B"), Year: types.UnknownYear},
	}

	s := Summarize(records)
	assert.Equal(t, Summary{
		Records:           3,
		KnownYears:        2,
		UnknownYears:      1,
		MinYear:           2018,
		MaxYear:           2020,
		Journals:          2,
		WithAbstract:      2,
		MeanAbstractWords: 3,
	}, s)
}
