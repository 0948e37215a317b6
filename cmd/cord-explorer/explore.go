// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cord-explorer/internal/dashboard"
	"github.com/pdiddy/cord-explorer/internal/export"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Render the publications dashboard",
	Long: `Explore loads the metadata table and prints the dashboard: record counts,
a publications-by-year chart, the top journals, and a table of papers whose
title or authors contain the search text.

The year range defaults to the earliest and latest known years in the data.
Papers without a usable publish date are counted but never charted.`,
	RunE: runExplore,
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := explorerConfig()
	if err != nil {
		return err
	}

	q, err := resolveQuery(cmd, &cfg)
	if err != nil {
		return err
	}
	q.TopJournals = cfg.TopJournals
	q.Rows = cfg.TableRows

	ds, err := loadDataset(cmd.Context(), cfg.DataPath)
	if err != nil {
		return err
	}

	v, err := dashboard.BuildView(ds, q)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return dashboard.RenderJSON(cmd.OutOrStdout(), v)
	}
	return dashboard.Render(cmd.OutOrStdout(), v, dashboard.Options{
		Color: dashboard.ColorEnabled(os.Stdout),
	})
}

func init() {
	addQueryFlags(exploreCmd)
	exploreCmd.Flags().Int("top", types.DefaultExplorerConfig().TopJournals, "number of journals to list")
	exploreCmd.Flags().Int("rows", types.DefaultExplorerConfig().TableRows, "number of papers to show in the table")
	exploreCmd.Flags().Bool("json", false, "output the dashboard as JSON")

	_ = viper.BindPFlag("top", exploreCmd.Flags().Lookup("top"))
	_ = viper.BindPFlag("rows", exploreCmd.Flags().Lookup("rows"))

	rootCmd.AddCommand(exploreCmd)
}

// --- shared helpers ---

// addQueryFlags registers the year-range and search flags shared by explore
// and export.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().Int("from", 0, "first publication year to include (default: earliest in data)")
	cmd.Flags().Int("to", 0, "last publication year to include (default: latest in data)")
	cmd.Flags().String("query", "", "case-insensitive text to find in titles or authors")
	cmd.Flags().String("view", "", "replay the source, years, and search text saved in a view file")
}

// resolveQuery combines the query flags with a saved view file. Flags set
// on the command line win over the file; the file's source replaces the
// configured data path unless --data was given.
func resolveQuery(cmd *cobra.Command, cfg *types.ExplorerConfig) (dashboard.Query, error) {
	q := queryFromFlags(cmd)

	viewPath, _ := cmd.Flags().GetString("view")
	if viewPath == "" {
		return q, nil
	}
	vf, err := export.ReadViewFile(viewPath)
	if err != nil {
		return q, err
	}

	saved := vf.Query
	if saved.Source != "" && !cmd.Flags().Changed("data") {
		cfg.DataPath = saved.Source
	}
	if q.Range.From == nil && saved.FromYear != 0 {
		q.Range.From = &saved.FromYear
	}
	if q.Range.To == nil && saved.ToYear != 0 {
		q.Range.To = &saved.ToYear
	}
	if !cmd.Flags().Changed("query") {
		q.Text = saved.Text
	}
	return q, nil
}

// queryFromFlags builds a dashboard query. Year bounds the user did not set
// stay nil so the view falls back to the dataset's own range.
func queryFromFlags(cmd *cobra.Command) dashboard.Query {
	var q dashboard.Query
	if cmd.Flags().Changed("from") {
		from, _ := cmd.Flags().GetInt("from")
		q.Range.From = &from
	}
	if cmd.Flags().Changed("to") {
		to, _ := cmd.Flags().GetInt("to")
		q.Range.To = &to
	}
	q.Text, _ = cmd.Flags().GetString("query")
	return q
}
