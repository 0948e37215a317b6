// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

const (
	barWidth     = 40
	barGlyph     = "█"
	colorReset   = "\033[0m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorBold    = "\033[1m"
)

// Empty-state messages.
const (
	MsgNoYearData    = "No data available for selected year range."
	MsgNoJournalData = "No journal data available for selected range."
	MsgNoMatches     = "No matching papers."
)

// Options controls text rendering.
type Options struct {
	// Color enables ANSI colors.
	Color bool
}

// ColorEnabled reports whether f is a terminal and NO_COLOR is unset.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render writes the full text dashboard for v to w.
func Render(w io.Writer, v View, opts Options) error {
	var sb strings.Builder

	writeHeader(&sb, v, opts)
	sb.WriteString("\n")
	writeSection(&sb, "Publications by Year", opts)
	writeBars(&sb, v.ByYear, colorBlue, MsgNoYearData, opts)
	sb.WriteString("\n")
	writeSection(&sb, fmt.Sprintf("Top %d Journals", v.TopN), opts)
	writeBars(&sb, v.TopJournals, colorMagenta, MsgNoJournalData, opts)
	sb.WriteString("\n")
	writeSection(&sb, "Papers", opts)
	writeTable(&sb, v)

	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderJSON writes v as indented JSON to w. The paper list carries the
// same rows and columns as the text table.
func RenderJSON(w io.Writer, v View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeHeader(sb *strings.Builder, v View, opts Options) {
	sb.WriteString(paint("CORD-19 Data Explorer", colorBold, opts))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Source:     %s\n", v.Source)
	fmt.Fprintf(sb, "Records:    %s", humanize.Comma(int64(v.Total)))
	if v.UnknownYears > 0 {
		fmt.Fprintf(sb, " (%s without a usable publish date)", humanize.Comma(int64(v.UnknownYears)))
	}
	sb.WriteString("\n")
	if v.HasYears {
		fmt.Fprintf(sb, "Year range: %d-%d (%s records)\n", v.From, v.To, humanize.Comma(int64(v.InRange)))
	}
	if v.Query != "" {
		fmt.Fprintf(sb, "Search:     %q (%s matches)\n", v.Query, humanize.Comma(int64(v.MatchCount)))
	}
}

func writeSection(sb *strings.Builder, title string, opts Options) {
	sb.WriteString(paint(title, colorBold, opts))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", len(title)))
	sb.WriteString("\n")
}

// writeBars draws one horizontal bar per bucket, scaled to the largest count.
func writeBars(sb *strings.Builder, counts []types.FieldCount, color, empty string, opts Options) {
	if len(counts) == 0 {
		sb.WriteString(empty)
		sb.WriteString("\n")
		return
	}

	maxCount, labelWidth := 0, 0
	for _, c := range counts {
		if c.Count > maxCount {
			maxCount = c.Count
		}
		if n := utf8.RuneCountInString(truncate(c.Key, 40)); n > labelWidth {
			labelWidth = n
		}
	}

	for _, c := range counts {
		fmt.Fprintf(sb, "%-*s  %s %s\n",
			labelWidth, truncate(c.Key, 40),
			paint(bar(c.Count, maxCount), color, opts),
			humanize.Comma(int64(c.Count)))
	}
}

// bar returns a bar proportional to count/maxCount; non-zero counts get at
// least one glyph.
func bar(count, maxCount int) string {
	if count <= 0 || maxCount <= 0 {
		return ""
	}
	n := count * barWidth / maxCount
	if n == 0 {
		n = 1
	}
	return strings.Repeat(barGlyph, n)
}

func writeTable(sb *strings.Builder, v View) {
	if len(v.Papers) == 0 {
		sb.WriteString(MsgNoMatches)
		sb.WriteString("\n")
		return
	}

	fmt.Fprintf(sb, "%-50s  %-12s  %-7s  %-25s  %s\n",
		"Title", "Published", "Year", "Journal", "Words")
	sb.WriteString(strings.Repeat("-", 108))
	sb.WriteString("\n")

	for _, p := range v.Papers {
		fmt.Fprintf(sb, "%-50s  %-12s  %-7s  %-25s  %d\n",
			truncate(orDash(p.Title), 50),
			truncate(orDash(p.PublishTime), 12),
			p.Year,
			truncate(orDash(p.Journal), 25),
			p.AbstractWordCount)
	}

	if v.MatchCount > len(v.Papers) {
		fmt.Fprintf(sb, "\nshowing %d of %s papers\n", len(v.Papers), humanize.Comma(int64(v.MatchCount)))
	} else {
		fmt.Fprintf(sb, "\n%d papers\n", len(v.Papers))
	}
}

func paint(s, color string, opts Options) string {
	if !opts.Color || s == "" {
		return s
	}
	return color + s + colorReset
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to n runes, marking the cut with "..." when there is
// room for it.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:max(n, 0)])
	}
	return string(r[:n-3]) + "..."
}
