// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/cord-explorer/internal/dashboard"
	"github.com/pdiddy/cord-explorer/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the selected papers to YAML, JSON, or CSL",
	Long: `Export applies the same year range and search text as explore and
writes the matching papers to a file. yaml and json produce a view file
holding the query, a per-year summary, and the records; csl produces a
CSL-YAML bibliography for Pandoc or a reference manager.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")

	cfg, err := explorerConfig()
	if err != nil {
		return err
	}

	q, err := resolveQuery(cmd, &cfg)
	if err != nil {
		return err
	}

	ds, err := loadDataset(cmd.Context(), cfg.DataPath)
	if err != nil {
		return err
	}

	v, err := dashboard.BuildView(ds, q)
	if err != nil {
		return err
	}

	switch format {
	case export.FormatCSLYAML:
		err = export.WriteCSL(out, v.Matches)
	default:
		vf := export.NewViewFile(export.ViewQuery{
			Source:   v.Source,
			FromYear: v.From,
			ToYear:   v.To,
			Text:     v.Query,
		}, v.Matches, v.ByYear)
		err = export.WriteViewFile(out, vf, format)
	}
	if err != nil {
		return fmt.Errorf("exporting to %s: %w", out, err)
	}

	logger.Debug("export written",
		zap.String("path", out),
		zap.String("format", string(format)),
		zap.Int("records", len(v.Matches)))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d papers to %s\n", len(v.Matches), out)
	return nil
}

func init() {
	addQueryFlags(exportCmd)
	exportCmd.Flags().String("format", "yaml", "output format: yaml, json, or csl")
	exportCmd.Flags().String("out", "", "output file path")
	_ = exportCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(exportCmd)
}
