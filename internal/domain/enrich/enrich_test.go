package enrich_test

import (
	"errors"
	"testing"

	"github.com/okian/marchprep/internal/adapters/repository"
	"github.com/okian/marchprep/internal/domain/enrich"
	"github.com/okian/marchprep/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func key(team int) model.TeamKey { return model.TeamKey{Season: 2023, TeamID: team} }

func featureTable(teams ...int) *repository.Table[model.TeamFeatures] {
	tbl := repository.NewTable[model.TeamFeatures]()
	for _, id := range teams {
		tbl.Upsert(key(id), model.TeamFeatures{Key: key(id), GP: 30})
	}
	return tbl
}

func TestParseSeed(t *testing.T) {
	Convey("Given seed codes", t, func() {
		Convey("When the code is plain", func() {
			n, err := enrich.ParseSeed("W03")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 3)
		})

		Convey("When the code has a play-in suffix", func() {
			n, err := enrich.ParseSeed("X16a")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 16)
		})

		Convey("When the code has one digit", func() {
			n, err := enrich.ParseSeed("Y1")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)
		})

		Convey("When the code has no digits", func() {
			_, err := enrich.ParseSeed("Z")
			So(errors.Is(err, enrich.ErrInvalidSeed), ShouldBeTrue)
		})

		Convey("When the rank is out of range", func() {
			_, err := enrich.ParseSeed("W17")
			So(errors.Is(err, enrich.ErrInvalidSeed), ShouldBeTrue)
			_, err = enrich.ParseSeed("W00")
			So(errors.Is(err, enrich.ErrInvalidSeed), ShouldBeTrue)
		})
	})
}

func TestSeeds(t *testing.T) {
	Convey("Given seed entries", t, func() {
		Convey("When they are well formed", func() {
			tbl, err := enrich.Seeds([]model.SeedEntry{
				{Season: 2023, Seed: "W01", TeamID: 1101},
				{Season: 2023, Seed: "X16b", TeamID: 1102},
			})
			So(err, ShouldBeNil)
			So(tbl.Len(), ShouldEqual, 2)
			seed, _ := tbl.Get(key(1102))
			So(seed, ShouldEqual, 16)
		})

		Convey("When a team is seeded twice", func() {
			_, err := enrich.Seeds([]model.SeedEntry{
				{Season: 2023, Seed: "W01", TeamID: 1101},
				{Season: 2023, Seed: "Y02", TeamID: 1101},
			})
			So(errors.Is(err, repository.ErrDuplicateKey), ShouldBeTrue)
		})

		Convey("When a code is unparsable", func() {
			_, err := enrich.Seeds([]model.SeedEntry{{Season: 2023, Seed: "??", TeamID: 1101}})
			So(errors.Is(err, enrich.ErrInvalidSeed), ShouldBeTrue)
		})
	})
}

func TestMen(t *testing.T) {
	Convey("Given men's features, seeds and rankings", t, func() {
		feats := featureTable(1101, 1102, 1103)
		seeds, err := enrich.Seeds([]model.SeedEntry{
			{Season: 2023, Seed: "W03", TeamID: 1101},
			{Season: 2023, Seed: "Z14", TeamID: 1102},
		})
		So(err, ShouldBeNil)
		ranks, err := enrich.Rankings([]model.RankEntry{
			{Season: 2023, SystemName: "POM", RankingDayNum: 128, TeamID: 1101, OrdinalRank: 12},
			{Season: 2023, SystemName: "POM", RankingDayNum: 128, TeamID: 1103, OrdinalRank: 200},
		})
		So(err, ShouldBeNil)

		Convey("When enriching", func() {
			out := enrich.Men(feats, seeds, ranks)

			Convey("Then seeds and ranks are left-joined", func() {
				f, _ := out.Get(key(1101))
				So(f.HasSeed, ShouldBeTrue)
				So(f.Seed, ShouldEqual, 3)
				So(f.HasRank, ShouldBeTrue)
				So(f.Rank, ShouldEqual, 12)

				f, _ = out.Get(key(1102))
				So(f.Seed, ShouldEqual, 14)
				So(f.HasRank, ShouldBeFalse)

				f, _ = out.Get(key(1103))
				So(f.HasSeed, ShouldBeFalse)
				So(f.Rank, ShouldEqual, 200)
			})

			Convey("And no team is dropped", func() {
				So(out.Len(), ShouldEqual, 3)
			})
		})
	})
}

func TestWomen(t *testing.T) {
	Convey("Given women's features, seeds and conferences", t, func() {
		feats := featureTable(3101, 3102, 3103, 3104)
		seeds, err := enrich.Seeds([]model.SeedEntry{
			{Season: 2023, Seed: "W01", TeamID: 3101},
			{Season: 2023, Seed: "X05", TeamID: 3102},
			{Season: 2023, Seed: "Y09", TeamID: 3104},
		})
		So(err, ShouldBeNil)
		confs, err := enrich.Conferences([]model.ConfEntry{
			{Season: 2023, TeamID: 3101, ConfAbbrev: "sec"},
			{Season: 2023, TeamID: 3102, ConfAbbrev: "sec"},
			{Season: 2023, TeamID: 3103, ConfAbbrev: "sec"},
			{Season: 2023, TeamID: 3104, ConfAbbrev: "big_ten"},
			{Season: 2022, TeamID: 3104, ConfAbbrev: "sec"},
		})
		So(err, ShouldBeNil)

		Convey("When counting bids", func() {
			bids := enrich.ConferenceBids(seeds, confs)
			So(bids[enrich.ConfKey{Season: 2023, Conf: "sec"}], ShouldEqual, 2)
			So(bids[enrich.ConfKey{Season: 2023, Conf: "big_ten"}], ShouldEqual, 1)
			So(bids[enrich.ConfKey{Season: 2022, Conf: "sec"}], ShouldEqual, 0)
		})

		Convey("When enriching", func() {
			out := enrich.Women(feats, seeds, confs)

			Convey("Then every conference member carries the bid count", func() {
				f, _ := out.Get(key(3103))
				So(f.HasSeed, ShouldBeFalse)
				So(f.HasConf, ShouldBeTrue)
				So(f.ConfBids, ShouldEqual, 2)

				f, _ = out.Get(key(3104))
				So(f.Seed, ShouldEqual, 9)
				So(f.Conf, ShouldEqual, "big_ten")
				So(f.ConfBids, ShouldEqual, 1)
			})
		})

		Convey("When a team has two conferences in one season", func() {
			_, err := enrich.Conferences([]model.ConfEntry{
				{Season: 2023, TeamID: 3101, ConfAbbrev: "sec"},
				{Season: 2023, TeamID: 3101, ConfAbbrev: "acc"},
			})
			So(errors.Is(err, repository.ErrDuplicateKey), ShouldBeTrue)
		})
	})
}
