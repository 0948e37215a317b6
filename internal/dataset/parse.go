// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

var errUnparseable = errors.New("unparseable date")

// Precision is how much of a date the source text carried.
type Precision int

const (
	PrecisionNone Precision = iota
	PrecisionYear
	PrecisionMonth
	PrecisionDay
)

// dateLayouts are tried in order before the free-form parser. They cover
// the publish_time shapes that dominate the metadata table.
var dateLayouts = []struct {
	layout    string
	precision Precision
}{
	{"2006-01-02", PrecisionDay},
	{"2006", PrecisionYear},
	{"2006-01", PrecisionMonth},
	{"2006-01-02 15:04:05", PrecisionDay},
	{time.RFC3339, PrecisionDay},
	{"2006 Jan 2", PrecisionDay},
	{"2006 Jan", PrecisionMonth},
	{"2006 January 2", PrecisionDay},
	{"2006 January", PrecisionMonth},
	{"Jan 2006", PrecisionMonth},
	{"January 2006", PrecisionMonth},
	{"Jan 2, 2006", PrecisionDay},
	{"January 2, 2006", PrecisionDay},
	{"2 Jan 2006", PrecisionDay},
	{"2 January 2006", PrecisionDay},
}

// maxDigitRun is the longest all-digit text accepted (YYYYMMDD). Longer runs
// would be read as Unix timestamps by the free-form parser.
const maxDigitRun = 8

// ParseDate parses publish_time text into a date. It reports false for
// empty text, text without digits, and anything no layout accepts.
func ParseDate(s string) (time.Time, bool) {
	t, p := ParseDatePrecision(s)
	return t, p != PrecisionNone
}

// ParseDatePrecision is ParseDate that also reports which parts of the date
// the text gave. Dates only the free-form parser accepts count as
// PrecisionDay.
func ParseDatePrecision(s string) (time.Time, Precision) {
	s = strings.TrimSpace(s)
	if s == "" || !strings.ContainsAny(s, "0123456789") {
		return time.Time{}, PrecisionNone
	}
	if len(s) > maxDigitRun && strings.Trim(s, "0123456789") == "" {
		return time.Time{}, PrecisionNone
	}

	for _, l := range dateLayouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			return validDate(t, l.precision)
		}
	}

	t, err := parseAny(s)
	if err != nil {
		return time.Time{}, PrecisionNone
	}
	return validDate(t, PrecisionDay)
}

// parseAny wraps dateparse, which is not panic-free on arbitrary input.
func parseAny(s string) (t time.Time, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, err = time.Time{}, errUnparseable
		}
	}()
	return dateparse.ParseIn(s, time.UTC)
}

// validDate rejects year zero so that it can serve as the sentinel.
func validDate(t time.Time, p Precision) (time.Time, Precision) {
	if t.Year() <= 0 {
		return time.Time{}, PrecisionNone
	}
	return t, p
}

// ParseYear returns the calendar year of s, or types.UnknownYear when s is
// not a valid date.
func ParseYear(s string) types.Year {
	t, ok := ParseDate(s)
	if !ok {
		return types.UnknownYear
	}
	return types.Year(t.Year())
}

// WordCount returns the number of whitespace-separated tokens in s.
// Runs of whitespace count as one separator; nil counts as empty.
func WordCount(s *string) int {
	text, ok := types.Text(s)
	if !ok {
		return 0
	}
	return len(strings.Fields(text))
}
