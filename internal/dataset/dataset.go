// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset loads the publication metadata table, derives the year and
// abstract word count of every record, and answers filter and aggregate
// queries against the in-memory result.
// See docs/ARCHITECTURE § Dataset Preparer.
package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

// ErrDataUnavailable reports that the source table could not be opened or
// read. Callers treat it as "no data" and must not render a partial result.
var ErrDataUnavailable = errors.New("data unavailable")

// Column names the loader looks for in the header row.
const (
	colTitle       = "title"
	colAuthors     = "authors"
	colPublishTime = "publish_time"
	colJournal     = "journal"
	colAbstract    = "abstract"
)

// ctxCheckInterval is how many rows are read between context checks.
const ctxCheckInterval = 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// naValues are the cell spellings treated as absent, matching the default
// missing-value markers of common dataframe readers.
var naValues = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// LoadStats counts what the loader did with the source rows.
type LoadStats struct {
	Rows           int      `json:"rows" yaml:"rows"`
	SkippedRows    int      `json:"skipped_rows" yaml:"skipped_rows"`
	UnknownYears   int      `json:"unknown_years" yaml:"unknown_years"`
	MissingColumns []string `json:"missing_columns,omitempty" yaml:"missing_columns,omitempty"`
}

// Dataset is the cleaned, immutable, ordered collection of records read from
// one source file.
type Dataset struct {
	source   string
	records  []types.Record
	stats    LoadStats
	loadedAt time.Time
}

// Source returns the path the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Stats returns the load counters.
func (d *Dataset) Stats() LoadStats { return d.stats }

// LoadedAt returns when the source was read.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Records returns a copy of the record slice in source order. The optional
// text fields point at shared strings and must not be written through.
func (d *Dataset) Records() []types.Record {
	return slices.Clone(d.records)
}

// FilterByYearRange returns the records whose known year lies in
// [minYear, maxYear].
func (d *Dataset) FilterByYearRange(minYear, maxYear int) []types.Record {
	return FilterByYearRange(d.records, minYear, maxYear)
}

// NewDataset builds a Dataset from already-prepared records. It is used by
// tests and by callers that assemble records without a file.
func NewDataset(source string, records []types.Record) *Dataset {
	stats := LoadStats{Rows: len(records)}
	for _, r := range records {
		if !r.Year.Known() {
			stats.UnknownYears++
		}
	}
	return &Dataset{
		source:   source,
		records:  slices.Clone(records),
		stats:    stats,
		loadedAt: time.Now(),
	}
}

// Loader reads metadata tables. The zero value is not usable; call NewLoader.
type Loader struct {
	logger *zap.Logger
}

// NewLoader returns a Loader that reports progress to logger. A nil logger
// discards output.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load reads the table at path with a silent Loader.
func Load(ctx context.Context, path string) (*Dataset, error) {
	return NewLoader(nil).Load(ctx, path)
}

// Load opens path, parses every row into a Record, and derives Year and
// AbstractWordCount. A missing or unreadable file yields an error wrapping
// ErrDataUnavailable. Malformed fields never fail the load; they degrade to
// the UnknownYear sentinel or an absent value on that record.
func (l *Loader) Load(ctx context.Context, path string) (*Dataset, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrDataUnavailable, path, err)
	}
	defer f.Close()

	records, stats, err := l.read(ctx, f)
	if err != nil {
		if errors.Is(err, ErrDataUnavailable) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}

	for _, name := range stats.MissingColumns {
		l.logger.Warn("column missing from header; values treated as absent",
			zap.String("path", path), zap.String("column", name))
	}
	l.logger.Info("loaded dataset",
		zap.String("path", path),
		zap.Int("records", stats.Rows),
		zap.Int("unknown_years", stats.UnknownYears),
		zap.Int("skipped_rows", stats.SkippedRows),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Dataset{
		source:   path,
		records:  records,
		stats:    stats,
		loadedAt: time.Now(),
	}, nil
}

// columnIndex maps each known column to its position in a row, -1 if absent.
type columnIndex struct {
	title, authors, publishTime, journal, abstract int
}

func mapColumns(header []string) (columnIndex, []string) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		if i, ok := pos[name]; ok {
			return i
		}
		missing = append(missing, name)
		return -1
	}

	idx := columnIndex{
		title:       lookup(colTitle),
		authors:     lookup(colAuthors),
		publishTime: lookup(colPublishTime),
		journal:     lookup(colJournal),
		abstract:    lookup(colAbstract),
	}
	return idx, missing
}

func (l *Loader) read(ctx context.Context, r io.Reader) ([]types.Record, LoadStats, error) {
	var stats LoadStats

	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, stats, fmt.Errorf("%w: source has no header row", ErrDataUnavailable)
		}
		return nil, stats, fmt.Errorf("%w: reading header: %w", ErrDataUnavailable, err)
	}

	cols, missing := mapColumns(header)
	stats.MissingColumns = missing

	var records []types.Record
	for n := 1; ; n++ {
		if n%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, stats, ctx.Err()
			default:
			}
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				l.logger.Debug("skipping malformed row", zap.Int("line", pe.StartLine), zap.Error(err))
				stats.SkippedRows++
				continue
			}
			return nil, stats, fmt.Errorf("%w: reading rows: %w", ErrDataUnavailable, err)
		}

		rec := buildRecord(row, cols)
		if !rec.Year.Known() {
			stats.UnknownYears++
		}
		records = append(records, rec)
	}

	stats.Rows = len(records)
	return records, stats, nil
}

// buildRecord converts one CSV row into a Record with derived fields.
func buildRecord(row []string, cols columnIndex) types.Record {
	rec := types.Record{
		Title:       cell(row, cols.title),
		Authors:     cell(row, cols.authors),
		PublishTime: cell(row, cols.publishTime),
		Journal:     cell(row, cols.journal),
		Abstract:    cell(row, cols.abstract),
	}

	if s, ok := types.Text(rec.PublishTime); ok {
		if t, ok := ParseDate(s); ok {
			rec.Published = t
			rec.Year = types.Year(t.Year())
		}
	}
	rec.AbstractWordCount = WordCount(rec.Abstract)
	return rec
}

func cell(row []string, i int) *string {
	if i < 0 || i >= len(row) {
		return nil
	}
	v := row[i]
	if naValues[v] {
		return nil
	}
	return &v
}
