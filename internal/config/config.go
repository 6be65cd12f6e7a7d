// Package config defines the pipeline configuration and its defaults.
//
// Running with no file and no environment reproduces the fixed layout of the
// competition data: one season, inputs under data_<season>/, outputs under input/.
package config

import (
	"fmt"
	"path/filepath"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Season is the only season kept from multi-season tables.
	Season int `koanf:"season" validate:"gt=0"`

	// DataDir holds the raw input tables; OutputDir receives the feature files.
	DataDir   string `koanf:"data_dir" validate:"required"`
	OutputDir string `koanf:"output_dir" validate:"required"`

	// RankingSystem and RankingDay select the public ordinal used for men.
	RankingSystem string `koanf:"ranking_system" validate:"required"`
	RankingDay    int    `koanf:"ranking_day" validate:"gte=0"`

	// PopulationThreshold splits matchups: first team below is men, above is women.
	PopulationThreshold int `koanf:"population_threshold" validate:"gt=0"`

	// Input file names, relative to DataDir.
	SeedsMen         string `koanf:"seeds_men" validate:"required"`
	SeedsWomen       string `koanf:"seeds_women" validate:"required"`
	BoxScoresMen     string `koanf:"box_scores_men" validate:"required"`
	BoxScoresWomen   string `koanf:"box_scores_women" validate:"required"`
	ConferencesWomen string `koanf:"conferences_women" validate:"required"`
	RankingsMen      string `koanf:"rankings_men" validate:"required"`
	Matchups         string `koanf:"matchups" validate:"required"`

	// Output file names, relative to OutputDir. Empty means the season default.
	OutputMen   string `koanf:"output_men"`
	OutputWomen string `koanf:"output_women"`

	// Optional exports; empty disables each.
	SQLitePath  string `koanf:"sqlite_path"`
	XLSXPath    string `koanf:"xlsx_path"`
	MetricsFile string `koanf:"metrics_file"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Season:              2023,
		DataDir:             "data_2023",
		OutputDir:           "input",
		RankingSystem:       "POM",
		RankingDay:          128,
		PopulationThreshold: 2000,
		SeedsMen:            "MNCAATourneySeeds.csv",
		SeedsWomen:          "WNCAATourneySeeds.csv",
		BoxScoresMen:        "MRegularSeasonDetailedResults.csv",
		BoxScoresWomen:      "WRegularSeasonDetailedResults.csv",
		ConferencesWomen:    "WTeamConferences.csv",
		RankingsMen:         "MMasseyOrdinals_thru_Season2023_Day128.csv",
		Matchups:            "SampleSubmission2023.csv",
	}
}

// InputPath resolves an input file name against DataDir.
func (c *Config) InputPath(name string) string {
	return filepath.Join(c.DataDir, name)
}

// OutputMenPath is the men's feature file path.
func (c *Config) OutputMenPath() string {
	return c.outputPath(c.OutputMen, "m")
}

// OutputWomenPath is the women's feature file path.
func (c *Config) OutputWomenPath() string {
	return c.outputPath(c.OutputWomen, "w")
}

func (c *Config) outputPath(name, code string) string {
	if name == "" {
		name = fmt.Sprintf("prediction_data_%s_%d.csv", code, c.Season)
	}
	return filepath.Join(c.OutputDir, name)
}
