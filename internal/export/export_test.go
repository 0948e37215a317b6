// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

func sampleRecords() []types.Record {
	return []types.Record{
		{
			Title:             types.StringPtr("Spike protein binding"),
			Authors:           types.StringPtr("Smith, John; Doe, Jane A."),
			PublishTime:       types.StringPtr("2020-05-01"),
			Journal:           types.StringPtr("Virology"),
			Published:         time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
			Year:              2020,
			AbstractWordCount: 120,
		},
		{
			Title:       types.StringPtr("Preprint without venue"),
			Authors:     types.StringPtr("Smith, Anna"),
			PublishTime: types.StringPtr("2020"),
			Published:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Year:        2020,
		},
		{
			Title: types.StringPtr("Undated"),
			Year:  types.UnknownYear,
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{" JSON ", FormatJSON, false},
		{"csl", FormatCSLYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestViewFileRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			byYear := []types.FieldCount{{Key: "2020", Count: 2}}
			vf := NewViewFile(ViewQuery{Source: "data/metadata.csv", FromYear: 2019, ToYear: 2021, Text: "smith"}, sampleRecords(), byYear)

			path := filepath.Join(t.TempDir(), "out", "view."+string(format))
			require.NoError(t, WriteViewFile(path, vf, format))

			got, err := ReadViewFile(path)
			require.NoError(t, err)

			assert.Equal(t, vf.Query, got.Query)
			assert.Equal(t, 3, got.Summary.Total)
			assert.Equal(t, byYear, got.Summary.ByYear)
			assert.True(t, vf.Summary.Timestamp.Equal(got.Summary.Timestamp))
			assert.Equal(t, vf.Records, got.Records)

			assert.Equal(t, "2020", got.Records[0].Year)
			assert.Equal(t, "unknown", got.Records[2].Year)
			assert.Empty(t, got.Records[2].Journal)
		})
	}
}

func TestWriteViewFileRejectsCSL(t *testing.T) {
	err := WriteViewFile(filepath.Join(t.TempDir(), "x"), ViewFile{}, FormatCSLYAML)
	require.Error(t, err)
}

func TestReadViewFileMissing(t *testing.T) {
	_, err := ReadViewFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading view file")
}

// --- CSL ---

func TestParseAuthorName(t *testing.T) {
	tests := []struct {
		in   string
		want CSLName
	}{
		{"Smith, John", CSLName{Family: "Smith", Given: "John"}},
		{" Doe, Jane A. ", CSLName{Family: "Doe", Given: "Jane A."}},
		{"Ashish Vaswani", CSLName{Given: "Ashish", Family: "Vaswani"}},
		{"WHO", CSLName{Literal: "WHO"}},
		{"Consortium,", CSLName{Literal: "Consortium"}},
		{"  ", CSLName{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAuthorName(tt.in))
		})
	}
}

func TestToCSLItem(t *testing.T) {
	recs := sampleRecords()

	item := toCSLItem(recs[0])
	assert.Equal(t, "article-journal", item.Type)
	assert.Equal(t, "Virology", item.ContainerTitle)
	assert.Equal(t, []CSLName{
		{Family: "Smith", Given: "John"},
		{Family: "Doe", Given: "Jane A."},
	}, item.Author)
	require.NotNil(t, item.Issued)
	assert.Equal(t, [][]int{{2020, 5, 1}}, item.Issued.DateParts)

	item = toCSLItem(recs[1])
	assert.Equal(t, "article", item.Type)
	require.NotNil(t, item.Issued)
	assert.Equal(t, [][]int{{2020}}, item.Issued.DateParts)

	item = toCSLItem(recs[2])
	assert.Nil(t, item.Issued)
	assert.Empty(t, item.Author)
}

func TestIssuedPrecision(t *testing.T) {
	tests := []struct {
		raw  string
		want [][]int
	}{
		{"2020", [][]int{{2020}}},
		{"2020-05", [][]int{{2020, 5}}},
		{"2020 May", [][]int{{2020, 5}}},
		{"May 2020", [][]int{{2020, 5}}},
		{"2020 May 7", [][]int{{2020, 5, 7}}},
		{"2020-05-07", [][]int{{2020, 5, 7}}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := issued(types.Record{PublishTime: types.StringPtr(tt.raw), Year: 2020})
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.DateParts)
		})
	}
}

func TestFormatCSL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatCSL(&buf, sampleRecords()))

	var items []CSLItem
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 3)

	assert.Equal(t, "smith2020", items[0].ID)
	assert.Equal(t, "smith2020a", items[1].ID)
	assert.Equal(t, "anon", items[2].ID)

	s := buf.String()
	assert.Contains(t, s, "container-title: Virology")
	assert.Equal(t, 1, strings.Count(s, "container-title:"))
	assert.Contains(t, s, "date-parts:")
}

func TestWriteCSL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.yaml")
	require.NoError(t, WriteCSL(path, sampleRecords()[:1]))

	vf, err := ReadViewFile(path)
	// A CSL list is not a view file; reading it must fail cleanly.
	assert.Error(t, err)
	assert.Nil(t, vf)
}

func TestSuffix(t *testing.T) {
	assert.Equal(t, "a", suffix(1))
	assert.Equal(t, "z", suffix(26))
	assert.Equal(t, "aa", suffix(27))
}
