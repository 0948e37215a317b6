// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format, consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title,omitempty"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes records as a CSL-YAML list to w.
func FormatCSL(w io.Writer, records []types.Record) error {
	items := make([]CSLItem, len(records))
	keys := make(map[string]int)
	for i, r := range records {
		items[i] = toCSLItem(r)
		items[i].ID = uniqueKey(keys, citeKey(items[i], r.Year))
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// WriteCSL saves records to path as CSL-YAML.
func WriteCSL(path string, records []types.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := FormatCSL(f, records); err != nil {
		f.Close()
		return fmt.Errorf("writing CSL: %w", err)
	}
	return f.Close()
}

func toCSLItem(r types.Record) CSLItem {
	item := CSLItem{Type: "article"}
	item.Title, _ = types.Text(r.Title)

	if journal, ok := types.Text(r.Journal); ok {
		item.Type = "article-journal"
		item.ContainerTitle = journal
	}

	if authors, ok := types.Text(r.Authors); ok {
		for _, a := range strings.Split(authors, ";") {
			if name := parseAuthorName(a); name != (CSLName{}) {
				item.Author = append(item.Author, name)
			}
		}
	}

	item.Issued = issued(r)
	return item
}

// issued returns date-parts at the precision the source text gave: year
// only, year and month, or a full date.
func issued(r types.Record) *CSLDate {
	if !r.Year.Known() {
		return nil
	}
	raw, _ := types.Text(r.PublishTime)
	t, p := dataset.ParseDatePrecision(raw)

	switch p {
	case dataset.PrecisionMonth:
		return &CSLDate{DateParts: [][]int{{t.Year(), int(t.Month())}}}
	case dataset.PrecisionDay:
		return &CSLDate{DateParts: [][]int{{t.Year(), int(t.Month()), t.Day()}}}
	default:
		return &CSLDate{DateParts: [][]int{{int(r.Year)}}}
	}
}

// parseAuthorName splits one author into CSL family/given parts. CORD-19
// writes "Family, Given"; names without a comma split on the last space.
// Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if family, given, ok := strings.Cut(name, ","); ok {
		family, given = strings.TrimSpace(family), strings.TrimSpace(given)
		if given == "" {
			return CSLName{Literal: family}
		}
		return CSLName{Family: family, Given: given}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}

// citeKey builds a key like "smith2020" from the first author and year.
func citeKey(item CSLItem, year types.Year) string {
	base := "anon"
	if len(item.Author) > 0 {
		a := item.Author[0]
		base = a.Family
		if base == "" {
			base = a.Literal
		}
	}

	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		b.WriteString("anon")
	}
	if year.Known() {
		b.WriteString(year.String())
	}
	return b.String()
}

// uniqueKey appends a, b, c, ... to repeated keys.
func uniqueKey(seen map[string]int, key string) string {
	n := seen[key]
	seen[key] = n + 1
	if n == 0 {
		return key
	}
	return fmt.Sprintf("%s%s", key, suffix(n))
}

func suffix(n int) string {
	var s []byte
	for n > 0 {
		n--
		s = append([]byte{byte('a' + n%26)}, s...)
		n /= 26
	}
	return string(s)
}
