package fixtures

import (
	"context"
	"fmt"
	"strconv"

	"github.com/okian/marchprep/internal/adapters/csvio"
	"github.com/okian/marchprep/internal/config"
	"github.com/okian/marchprep/internal/domain/model"
	"github.com/okian/marchprep/pkg/logger"
)

// Write stores ds under the input file names of cfg.
func Write(ctx context.Context, cfg *config.Config, ds Dataset) error {
	log := logger.Named("fixtures")

	seedRows := func(entries []model.SeedEntry) [][]string {
		out := make([][]string, len(entries))
		for i, e := range entries {
			out[i] = []string{strconv.Itoa(e.Season), e.Seed, strconv.Itoa(e.TeamID)}
		}
		return out
	}
	gameRows := func(games []model.Game) [][]string {
		out := make([][]string, len(games))
		for i, g := range games {
			out[i] = csvio.FormatBoxScore(g)
		}
		return out
	}

	confs := make([][]string, len(ds.Conferences))
	for i, c := range ds.Conferences {
		confs[i] = []string{strconv.Itoa(c.Season), strconv.Itoa(c.TeamID), c.ConfAbbrev}
	}
	ranks := make([][]string, len(ds.Rankings))
	for i, r := range ds.Rankings {
		ranks[i] = []string{strconv.Itoa(r.Season), strconv.Itoa(r.RankingDayNum), r.SystemName, strconv.Itoa(r.TeamID), strconv.Itoa(r.OrdinalRank)}
	}
	subs := make([][]string, len(ds.Matchups))
	for i, id := range ds.Matchups {
		subs[i] = []string{id, "0.5"}
	}

	tables := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{cfg.SeedsMen, []string{"Season", "Seed", "TeamID"}, seedRows(ds.SeedsMen)},
		{cfg.SeedsWomen, []string{"Season", "Seed", "TeamID"}, seedRows(ds.SeedsWomen)},
		{cfg.BoxScoresMen, csvio.BoxScoreColumns(), gameRows(ds.GamesMen)},
		{cfg.BoxScoresWomen, csvio.BoxScoreColumns(), gameRows(ds.GamesWomen)},
		{cfg.ConferencesWomen, []string{"Season", "TeamID", "ConfAbbrev"}, confs},
		{cfg.RankingsMen, []string{"Season", "RankingDayNum", "SystemName", "TeamID", "OrdinalRank"}, ranks},
		{cfg.Matchups, []string{"ID", "Pred"}, subs},
	}
	for _, t := range tables {
		path := cfg.InputPath(t.name)
		if err := csvio.WriteTable(path, t.header, t.rows); err != nil {
			return fmt.Errorf("write fixture %s: %w", t.name, err)
		}
		log.Debug(ctx, "fixture written", logger.String("path", path), logger.Int("rows", len(t.rows)))
	}
	log.Info(ctx, "fixtures written",
		logger.String("dir", cfg.DataDir),
		logger.Int("season", cfg.Season),
		logger.Int("games_men", len(ds.GamesMen)),
		logger.Int("games_women", len(ds.GamesWomen)),
		logger.Int("matchups", len(ds.Matchups)),
	)
	return nil
}
