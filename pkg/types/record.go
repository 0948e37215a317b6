// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for cord-explorer.
// Record is one row of publication metadata after cleaning; FieldCount is
// one bucket of an aggregate. See docs/ARCHITECTURE.md § Data Model.
package types

import (
	"strconv"
	"time"
)

// Year is a publication year derived from publish_time. UnknownYear marks a
// record whose date was absent or could not be parsed.
type Year int

// UnknownYear is the sentinel for an absent or unparseable publish_time.
// Year zero is never produced by a successful parse.
const UnknownYear Year = 0

// Known reports whether y holds a parsed calendar year.
func (y Year) Known() bool {
	return y != UnknownYear
}

// String returns the year as decimal text, or "unknown" for the sentinel.
func (y Year) String() string {
	if !y.Known() {
		return "unknown"
	}
	return strconv.Itoa(int(y))
}

// Record holds one row of publication metadata. Text columns are nil when
// the source cell was empty or the column was missing.
type Record struct {
	// Title is the paper title.
	Title *string `json:"title" yaml:"title"`

	// Authors is the raw author list as it appears in the source
	// (semicolon separated in CORD-19).
	Authors *string `json:"authors" yaml:"authors"`

	// PublishTime is the unparsed publish_time cell.
	PublishTime *string `json:"publish_time" yaml:"publish_time"`

	// Journal is the publishing venue.
	Journal *string `json:"journal" yaml:"journal"`

	// Abstract is the paper abstract.
	Abstract *string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Published is the parsed publish_time; zero when Year is UnknownYear.
	Published time.Time `json:"-" yaml:"-"`

	// Year is derived from PublishTime.
	Year Year `json:"year" yaml:"year"`

	// AbstractWordCount is the number of whitespace-separated tokens in Abstract.
	AbstractWordCount int `json:"abstract_word_count" yaml:"abstract_word_count"`
}

// Text returns the dereferenced value of an optional column and whether it
// was present.
func Text(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Field names a categorical column that can be aggregated.
type Field string

const (
	FieldYear    Field = "year"
	FieldJournal Field = "journal"
	FieldAuthors Field = "authors"
	FieldTitle   Field = "title"
)

// Ordered reports whether buckets of f sort by key rather than by count.
func (f Field) Ordered() bool {
	return f == FieldYear
}

// FieldCount is one bucket of an aggregate: a field value and the number of
// records carrying it.
type FieldCount struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}
