package fixtures_test

import (
	"context"
	"testing"

	"github.com/okian/marchprep/internal/adapters/csvio"
	"github.com/okian/marchprep/internal/config"
	"github.com/okian/marchprep/internal/domain/enrich"
	"github.com/okian/marchprep/internal/fixtures"
	"github.com/okian/marchprep/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Write logs through the global logger
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestGenerate(t *testing.T) {
	Convey("Given the default fixture config", t, func() {
		cfg := fixtures.DefaultConfig()
		ds := fixtures.Generate(cfg)

		Convey("Then every team plays once per round", func() {
			So(len(ds.GamesMen), ShouldEqual, cfg.Rounds*cfg.MenTeams/2)
			So(len(ds.GamesWomen), ShouldEqual, cfg.Rounds*cfg.WomenTeams/2)

			perDay := map[int]map[int]int{}
			for _, g := range ds.GamesMen {
				if perDay[g.DayNum] == nil {
					perDay[g.DayNum] = map[int]int{}
				}
				perDay[g.DayNum][g.WTeamID]++
				perDay[g.DayNum][g.LTeamID]++
			}
			for _, teams := range perDay {
				So(len(teams), ShouldEqual, cfg.MenTeams)
				for _, n := range teams {
					So(n, ShouldEqual, 1)
				}
			}
		})

		Convey("Then winners always outscore losers", func() {
			for _, g := range append(ds.GamesMen, ds.GamesWomen...) {
				So(g.W.Score, ShouldBeGreaterThan, g.L.Score)
				So(g.W.FGM, ShouldBeLessThanOrEqualTo, g.W.FGA)
				So(g.W.FTM, ShouldBeLessThanOrEqualTo, g.W.FTA)
			}
		})

		Convey("Then every seed code parses", func() {
			So(len(ds.SeedsMen), ShouldEqual, cfg.Seeded)
			for _, s := range append(ds.SeedsMen, ds.SeedsWomen...) {
				_, err := enrich.ParseSeed(s.Seed)
				So(err, ShouldBeNil)
			}
		})

		Convey("Then the matchup list pairs the strongest teams", func() {
			n := cfg.MatchupTeams
			So(len(ds.Matchups), ShouldEqual, n*(n-1))
			So(ds.Matchups[0], ShouldEqual, "2023_1101_1102")
		})

		Convey("Then generation is deterministic", func() {
			again := fixtures.Generate(cfg)
			So(again.GamesMen, ShouldResemble, ds.GamesMen)
			So(again.Matchups, ShouldResemble, ds.Matchups)
		})
	})

	Convey("Given an odd team count", t, func() {
		cfg := fixtures.DefaultConfig()
		cfg.MenTeams = 5
		cfg.Rounds = 2
		ds := fixtures.Generate(cfg)

		Convey("Then it is rounded up to an even count", func() {
			So(len(ds.GamesMen), ShouldEqual, 6)
		})
	})
}

func TestWrite(t *testing.T) {
	Convey("Given a generated dataset", t, func() {
		gen := fixtures.DefaultConfig()
		ds := fixtures.Generate(gen)
		cfg := config.New()
		cfg.DataDir = t.TempDir()

		Convey("When it is written", func() {
			So(fixtures.Write(context.Background(), cfg, ds), ShouldBeNil)

			Convey("Then the loaders read it back", func() {
				games, err := csvio.ReadBoxScores(cfg.InputPath(cfg.BoxScoresMen), gen.Season)
				So(err, ShouldBeNil)
				So(games, ShouldResemble, ds.GamesMen)

				seeds, err := csvio.ReadSeeds(cfg.InputPath(cfg.SeedsWomen), gen.Season)
				So(err, ShouldBeNil)
				So(seeds, ShouldResemble, ds.SeedsWomen)

				ranks, err := csvio.ReadRankings(cfg.InputPath(cfg.RankingsMen), csvio.RankingFilter{
					Season: gen.Season, System: gen.RankingSystem, Day: gen.RankingDay,
				})
				So(err, ShouldBeNil)
				So(len(ranks), ShouldEqual, gen.MenTeams)

				ids, err := csvio.ReadMatchups(cfg.InputPath(cfg.Matchups))
				So(err, ShouldBeNil)
				So(ids, ShouldResemble, ds.Matchups)
			})
		})
	})
}
