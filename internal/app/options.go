package service

import "github.com/okian/marchprep/pkg/logger"

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// Files names the input tables, relative to the data directory, and the two
// feature files, relative to the output directory. Empty fields keep their default.
type Files struct {
	SeedsMen         string
	SeedsWomen       string
	BoxScoresMen     string
	BoxScoresWomen   string
	ConferencesWomen string
	RankingsMen      string
	Matchups         string
	OutputMen        string
	OutputWomen      string
}

// WithLogger sets a custom logger for the pipeline.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithSeason selects the season kept from multi-season tables.
func WithSeason(season int) Option {
	return func(p *Pipeline) {
		if season > 0 {
			p.cfg.Season = season
		}
	}
}

// WithDataDir sets the directory holding the input tables.
func WithDataDir(dir string) Option {
	return func(p *Pipeline) {
		if dir != "" {
			p.cfg.DataDir = dir
		}
	}
}

// WithOutputDir sets the directory receiving the feature files.
func WithOutputDir(dir string) Option {
	return func(p *Pipeline) {
		if dir != "" {
			p.cfg.OutputDir = dir
		}
	}
}

// WithRankingSystem selects the public ranking system used for men.
func WithRankingSystem(system string) Option {
	return func(p *Pipeline) {
		if system != "" {
			p.cfg.RankingSystem = system
		}
	}
}

// WithRankingDay selects the ranking snapshot day.
func WithRankingDay(day int) Option {
	return func(p *Pipeline) {
		if day >= 0 {
			p.cfg.RankingDay = day
		}
	}
}

// WithPopulationThreshold sets the team ID that separates men from women.
func WithPopulationThreshold(threshold int) Option {
	return func(p *Pipeline) {
		if threshold > 0 {
			p.cfg.PopulationThreshold = threshold
		}
	}
}

// WithFiles overrides input and output file names.
func WithFiles(f Files) Option {
	return func(p *Pipeline) {
		set := func(dst *string, v string) {
			if v != "" {
				*dst = v
			}
		}
		set(&p.cfg.SeedsMen, f.SeedsMen)
		set(&p.cfg.SeedsWomen, f.SeedsWomen)
		set(&p.cfg.BoxScoresMen, f.BoxScoresMen)
		set(&p.cfg.BoxScoresWomen, f.BoxScoresWomen)
		set(&p.cfg.ConferencesWomen, f.ConferencesWomen)
		set(&p.cfg.RankingsMen, f.RankingsMen)
		set(&p.cfg.Matchups, f.Matchups)
		set(&p.cfg.OutputMen, f.OutputMen)
		set(&p.cfg.OutputWomen, f.OutputWomen)
	}
}

// WithFeatureStore also writes team features and both outputs to a SQLite file.
func WithFeatureStore(path string) Option {
	return func(p *Pipeline) {
		p.cfg.SQLitePath = path
	}
}

// WithWorkbook also writes both outputs to an XLSX workbook.
func WithWorkbook(path string) Option {
	return func(p *Pipeline) {
		p.cfg.XLSXPath = path
	}
}

// WithMetrics writes the run's metrics to a node-exporter textfile.
func WithMetrics(path string) Option {
	return func(p *Pipeline) {
		p.cfg.MetricsFile = path
	}
}
