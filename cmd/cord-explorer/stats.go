// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pdiddy/cord-explorer/internal/dataset"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the loaded metadata table",
	Long: `Stats loads the metadata table and reports how many records it holds,
how many have a usable publish date, the year span, distinct journals, and
the mean abstract length. Load counters (skipped rows, missing columns) are
included.`,
	RunE: runStats,
}

// statsReport is the JSON shape of the stats command.
type statsReport struct {
	Source   string            `json:"source"`
	LoadedAt time.Time         `json:"loaded_at"`
	Summary  dataset.Summary   `json:"summary"`
	Load     dataset.LoadStats `json:"load"`
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := explorerConfig()
	if err != nil {
		return err
	}

	ds, err := loadDataset(cmd.Context(), cfg.DataPath)
	if err != nil {
		return err
	}

	report := statsReport{
		Source:   ds.Source(),
		LoadedAt: ds.LoadedAt(),
		Summary:  dataset.Summarize(ds.Records()),
		Load:     ds.Stats(),
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatStatsOutput(cmd.OutOrStdout(), report, jsonOutput)
}

func formatStatsOutput(w io.Writer, r statsReport, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	s := r.Summary
	fmt.Fprintf(w, "%-22s  %s\n", "Source", r.Source)
	if !r.LoadedAt.IsZero() {
		fmt.Fprintf(w, "%-22s  %s\n", "Loaded", humanize.Time(r.LoadedAt))
	}
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "%-22s  %s\n", "Records", humanize.Comma(int64(s.Records)))
	fmt.Fprintf(w, "%-22s  %s\n", "With publish year", humanize.Comma(int64(s.KnownYears)))
	fmt.Fprintf(w, "%-22s  %s\n", "Without publish year", humanize.Comma(int64(s.UnknownYears)))
	if s.KnownYears > 0 {
		fmt.Fprintf(w, "%-22s  %s-%s\n", "Years", s.MinYear, s.MaxYear)
	}
	fmt.Fprintf(w, "%-22s  %s\n", "Journals", humanize.Comma(int64(s.Journals)))
	fmt.Fprintf(w, "%-22s  %s\n", "With abstract", humanize.Comma(int64(s.WithAbstract)))
	fmt.Fprintf(w, "%-22s  %.1f\n", "Mean abstract words", s.MeanAbstractWords)

	if r.Load.SkippedRows > 0 {
		fmt.Fprintf(w, "%-22s  %s\n", "Skipped rows", humanize.Comma(int64(r.Load.SkippedRows)))
	}
	if len(r.Load.MissingColumns) > 0 {
		fmt.Fprintf(w, "%-22s  %s\n", "Missing columns", strings.Join(r.Load.MissingColumns, ", "))
	}
	return nil
}

func init() {
	statsCmd.Flags().Bool("json", false, "output the summary as JSON")

	rootCmd.AddCommand(statsCmd)
}
