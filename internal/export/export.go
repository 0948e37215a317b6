// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes a filtered slice of the metadata table to disk: a
// YAML or JSON view file that records the query alongside its results, or a
// CSL-YAML bibliography for reference managers.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

// Format selects the export encoding.
type Format string

const (
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatCSLYAML Format = "csl"
)

// ParseFormat validates a user-supplied format name. Empty means YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatYAML, nil
	case FormatYAML, FormatJSON, FormatCSLYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use yaml, json, or csl", s)
	}
}

// ViewFile is the on-disk representation of an explorer query and the
// records it selected.
type ViewFile struct {
	Query   ViewQuery   `json:"query" yaml:"query"`
	Summary ViewSummary `json:"summary" yaml:"summary"`
	Records []Entry     `json:"records" yaml:"records"`
}

// ViewQuery stores the inputs that produced the records.
type ViewQuery struct {
	Source   string `json:"source" yaml:"source"`
	FromYear int    `json:"from_year,omitempty" yaml:"from_year,omitempty"`
	ToYear   int    `json:"to_year,omitempty" yaml:"to_year,omitempty"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
}

// ViewSummary stores result counts and a timestamp.
type ViewSummary struct {
	Total     int                `json:"total" yaml:"total"`
	ByYear    []types.FieldCount `json:"by_year,omitempty" yaml:"by_year,omitempty"`
	Timestamp time.Time          `json:"timestamp" yaml:"timestamp"`
}

// Entry is one exported record. Absent columns are omitted.
type Entry struct {
	Title             string `json:"title,omitempty" yaml:"title,omitempty"`
	Authors           string `json:"authors,omitempty" yaml:"authors,omitempty"`
	PublishTime       string `json:"publish_time,omitempty" yaml:"publish_time,omitempty"`
	Journal           string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Year              string `json:"year" yaml:"year"`
	AbstractWordCount int    `json:"abstract_word_count" yaml:"abstract_word_count"`
}

// NewViewFile assembles a ViewFile from a query and its records.
func NewViewFile(q ViewQuery, records []types.Record, byYear []types.FieldCount) ViewFile {
	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = toEntry(r)
	}
	return ViewFile{
		Query: q,
		Summary: ViewSummary{
			Total:     len(records),
			ByYear:    byYear,
			Timestamp: time.Now().UTC(),
		},
		Records: entries,
	}
}

func toEntry(r types.Record) Entry {
	e := Entry{
		Year:              r.Year.String(),
		AbstractWordCount: r.AbstractWordCount,
	}
	e.Title, _ = types.Text(r.Title)
	e.Authors, _ = types.Text(r.Authors)
	e.PublishTime, _ = types.Text(r.PublishTime)
	e.Journal, _ = types.Text(r.Journal)
	return e
}

// WriteViewFile saves vf to path as YAML or JSON.
func WriteViewFile(path string, vf ViewFile, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML, "":
		data, err = yaml.Marshal(&vf)
	case FormatJSON:
		data, err = json.MarshalIndent(&vf, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("view files support yaml or json, not %q", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling view file: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadViewFile loads a view file written by WriteViewFile. Files ending in
// .json are decoded as JSON, everything else as YAML.
func ReadViewFile(path string) (*ViewFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading view file: %w", err)
	}

	var vf ViewFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &vf)
	} else {
		err = yaml.Unmarshal(data, &vf)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing view file: %w", err)
	}
	return &vf, nil
}
