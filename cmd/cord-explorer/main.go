// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cord-explorer CLI.
// Implements: the Dataset Preparer surface (explore, stats, export).
// See docs/ARCHITECTURE § Dataset Preparer, § Presentation.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// logger is built in PersistentPreRunE; commands may assume it is set.
	logger = zap.NewNop()

	// cache memoizes loaded tables for the life of the process.
	cache *dataset.Cache
)

// rootCmd is the base command for the cord-explorer CLI.
var rootCmd = &cobra.Command{
	Use:   "cord-explorer",
	Short: "Explore CORD-19 publication metadata from the terminal",
	Long: `cord-explorer loads the CORD-19 metadata table (data/metadata.csv by
default), derives the publication year and abstract length of each paper,
and renders an interactive-style report: publications per year, the top
journals, and a searchable paper table.

Use explore for the dashboard, stats for a dataset summary, and export to
write the selected papers to YAML, JSON, or a CSL bibliography.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if viper.GetBool("verbose") {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		cache = dataset.NewCache(dataset.NewLoader(logger).Load)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := types.DefaultExplorerConfig()
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cord-explorer.yaml or ~/.config/cord-explorer/cord-explorer.yaml)")
	rootCmd.PersistentFlags().String("data", defaults.DataPath, "path to the CORD-19 metadata CSV")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	_ = viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	viper.SetDefault("data", defaults.DataPath)
	viper.SetDefault("top", defaults.TopJournals)
	viper.SetDefault("rows", defaults.TableRows)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cord-explorer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cord-explorer"))
		}
	}

	viper.SetEnvPrefix("CORD_EXPLORER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// explorerConfig resolves the effective settings from flags, config file,
// environment, and defaults.
func explorerConfig() (types.ExplorerConfig, error) {
	cfg := types.DefaultExplorerConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if cfg.DataPath == "" {
		cfg.DataPath = types.DefaultDataPath
	}
	return cfg, nil
}

// loadDataset returns the memoized table at path. A missing or unreadable
// file becomes a single user-facing error.
func loadDataset(ctx context.Context, path string) (*dataset.Dataset, error) {
	ds, err := cache.GetOrLoad(ctx, path)
	if errors.Is(err, dataset.ErrDataUnavailable) {
		logger.Debug("load failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("could not read %s: place the CORD-19 metadata.csv there or pass --data", path)
	}
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
