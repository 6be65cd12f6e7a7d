package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/marchprep/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Season, convey.ShouldEqual, 2023)
				convey.So(cfg.DataDir, convey.ShouldEqual, "data_2023")
				convey.So(cfg.RankingDay, convey.ShouldEqual, 128)
				convey.So(cfg.SQLitePath, convey.ShouldEqual, "")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MARCHPREP_SEASON", "2024")
			_ = os.Setenv("MARCHPREP_DATA_DIR", "data_2024")
			_ = os.Setenv("MARCHPREP_RANKING_DAY", "133")
			_ = os.Setenv("MARCHPREP_RANKINGS_MEN", "MMasseyOrdinals.csv")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Season, convey.ShouldEqual, 2024)
				convey.So(cfg.DataDir, convey.ShouldEqual, "data_2024")
				convey.So(cfg.RankingDay, convey.ShouldEqual, 133)
				convey.So(cfg.RankingsMen, convey.ShouldEqual, "MMasseyOrdinals.csv")
				convey.So(cfg.RankingSystem, convey.ShouldEqual, "POM")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
season: 2022
output_dir: out
ranking_system: SAG
sqlite_path: out/features.db
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MARCHPREP_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Season, convey.ShouldEqual, 2022)
				convey.So(cfg.OutputDir, convey.ShouldEqual, "out")
				convey.So(cfg.RankingSystem, convey.ShouldEqual, "SAG")
				convey.So(cfg.SQLitePath, convey.ShouldEqual, "out/features.db")
				convey.So(cfg.DataDir, convey.ShouldEqual, "data_2023")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("season: 2022\nlog_format: json\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MARCHPREP_CONFIG", tmpFile)
			_ = os.Setenv("MARCHPREP_SEASON", "2021")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Season, convey.ShouldEqual, 2021)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MARCHPREP_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("MARCHPREP_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an empty data dir", func() {
			_ = os.Setenv("MARCHPREP_DATA_DIR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "DataDir")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-positive season", func() {
			_ = os.Setenv("MARCHPREP_SEASON", "0")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with an unknown log format", func() {
			_ = os.Setenv("MARCHPREP_LOG_FORMAT", "xml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("MARCHPREP_SEASON", "twenty")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"MARCHPREP_CONFIG",
		"MARCHPREP_SEASON",
		"MARCHPREP_DATA_DIR",
		"MARCHPREP_RANKING_DAY",
		"MARCHPREP_RANKINGS_MEN",
		"MARCHPREP_LOG_FORMAT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "marchprep-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
