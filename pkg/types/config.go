// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultDataPath is the well-known location of the metadata table,
// relative to the application root.
const DefaultDataPath = "data/metadata.csv"

// ExplorerConfig holds the settings shared by the explorer commands.
// Values come from flags, the config file, or CORD_EXPLORER_* variables.
type ExplorerConfig struct {
	// DataPath is the delimited-text metadata file (default data/metadata.csv).
	DataPath string `json:"data" yaml:"data" mapstructure:"data"`

	// TopJournals is how many journals the dashboard lists (default 10).
	TopJournals int `json:"top" yaml:"top" mapstructure:"top"`

	// TableRows is how many records the search table shows (default 20).
	TableRows int `json:"rows" yaml:"rows" mapstructure:"rows"`

	// Verbose enables debug logging.
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}

// DefaultExplorerConfig returns the settings used when nothing is configured.
func DefaultExplorerConfig() ExplorerConfig {
	return ExplorerConfig{
		DataPath:    DefaultDataPath,
		TopJournals: 10,
		TableRows:   20,
	}
}

// YearRange is an inclusive year filter. A nil bound means the dataset's
// own minimum or maximum.
type YearRange struct {
	From *int `json:"from,omitempty" yaml:"from,omitempty"`
	To   *int `json:"to,omitempty" yaml:"to,omitempty"`
}
