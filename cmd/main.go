package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	app "github.com/okian/marchprep/internal/app"
	"github.com/okian/marchprep/internal/config"
	"github.com/okian/marchprep/pkg/logger"
	"github.com/okian/marchprep/pkg/metrics"
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := run(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Stderr.WriteString("marchprep: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// run loads configuration and executes one pipeline run.
func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if err := logger.InitWith(os.Stderr, cfg.LogFormat); err != nil {
		return err
	}
	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Label every exported series with the season
	metrics.Configure(metrics.WithConstLabels(map[string]string{"season": strconv.Itoa(cfg.Season)}))

	pipeline := app.New(
		app.WithLogger(loggerInstance),
		app.WithSeason(cfg.Season),
		app.WithDataDir(cfg.DataDir),
		app.WithOutputDir(cfg.OutputDir),
		app.WithRankingSystem(cfg.RankingSystem),
		app.WithRankingDay(cfg.RankingDay),
		app.WithPopulationThreshold(cfg.PopulationThreshold),
		app.WithFiles(app.Files{
			SeedsMen:         cfg.SeedsMen,
			SeedsWomen:       cfg.SeedsWomen,
			BoxScoresMen:     cfg.BoxScoresMen,
			BoxScoresWomen:   cfg.BoxScoresWomen,
			ConferencesWomen: cfg.ConferencesWomen,
			RankingsMen:      cfg.RankingsMen,
			Matchups:         cfg.Matchups,
			OutputMen:        cfg.OutputMen,
			OutputWomen:      cfg.OutputWomen,
		}),
		app.WithFeatureStore(cfg.SQLitePath),
		app.WithWorkbook(cfg.XLSXPath),
		app.WithMetrics(cfg.MetricsFile),
	)

	_, err = pipeline.Run(ctx)
	return err
}
