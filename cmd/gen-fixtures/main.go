package main

import (
	"context"
	"flag"
	"os"

	"github.com/okian/marchprep/internal/config"
	"github.com/okian/marchprep/internal/fixtures"
	"github.com/okian/marchprep/pkg/logger"
)

func main() {
	def := fixtures.DefaultConfig()
	var (
		dir     = flag.String("dir", "", "Output directory (default: the configured data_dir)")
		season  = flag.Int("season", 0, "Season to generate (default: the configured season)")
		men     = flag.Int("men", def.MenTeams, "Number of men's teams")
		women   = flag.Int("women", def.WomenTeams, "Number of women's teams")
		rounds  = flag.Int("rounds", def.Rounds, "Games per team")
		seeded  = flag.Int("seeded", def.Seeded, "Seeded teams per population (max 64)")
		pairs   = flag.Int("matchup-teams", def.MatchupTeams, "Teams per population paired in the matchup list")
		seed    = flag.Int64("seed", def.RandSeed, "Random seed")
		verbose = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *dir != "" {
		cfg.DataDir = *dir
	}
	if *season > 0 {
		cfg.Season = *season
	}

	ds := fixtures.Generate(fixtures.Config{
		Season:        cfg.Season,
		MenTeams:      *men,
		WomenTeams:    *women,
		Rounds:        *rounds,
		Seeded:        *seeded,
		MatchupTeams:  *pairs,
		RankingSystem: cfg.RankingSystem,
		RankingDay:    cfg.RankingDay,
		RandSeed:      *seed,
	})
	if err := fixtures.Write(ctx, cfg, ds); err != nil {
		os.Stderr.WriteString("failed to write fixtures: " + err.Error() + "\n")
		os.Exit(1)
	}
}
