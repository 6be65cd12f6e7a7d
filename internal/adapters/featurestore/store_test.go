package featurestore_test

import (
	"context"
	"database/sql"
	"math"
	"path/filepath"
	"testing"

	"github.com/okian/marchprep/internal/adapters/featurestore"
	"github.com/okian/marchprep/internal/adapters/repository"
	"github.com/okian/marchprep/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStore(t *testing.T) {
	Convey("Given a fresh feature store", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "out", "features.db")
		store, err := featurestore.Open(path)
		So(err, ShouldBeNil)
		defer func() { _ = store.Close() }()

		feats := repository.NewTable[model.TeamFeatures]()
		k := model.TeamKey{Season: 2023, TeamID: 1101}
		feats.Upsert(k, model.TeamFeatures{
			Key: k, GP: 31,
			Metrics: model.Metrics{Poss: 2100, TOPct: 0.17, ORPct: 0.31, Tempo: math.NaN(), EFGPct: math.NaN(), FTR: math.NaN()},
			Seed:    2, HasSeed: true,
		})

		Convey("When saving teams and rows twice", func() {
			rows := []model.MenRow{{ID: "2023_1101_1102", Seed: 2, OppSeed: 15, TO: -0.02, OR: 0.04, KPDiff: -60}}
			for i := 0; i < 2; i++ {
				So(store.SaveTeams(ctx, model.Men, 2023, feats), ShouldBeNil)
				So(store.SaveMen(ctx, 2023, rows), ShouldBeNil)
			}
			So(store.SaveWomen(ctx, 2023, []model.WomenRow{{ID: "2023_3101_3102", Seed: 1, OppSeed: 16, ConfBids: 5}}), ShouldBeNil)

			db, err := sql.Open("sqlite", path)
			So(err, ShouldBeNil)
			defer func() { _ = db.Close() }()

			Convey("Then rows are replaced, not duplicated", func() {
				var n int
				So(db.QueryRow(`SELECT COUNT(*) FROM team_features`).Scan(&n), ShouldBeNil)
				So(n, ShouldEqual, 1)
				So(db.QueryRow(`SELECT COUNT(*) FROM prediction_men`).Scan(&n), ShouldBeNil)
				So(n, ShouldEqual, 1)
				So(db.QueryRow(`SELECT COUNT(*) FROM prediction_women`).Scan(&n), ShouldBeNil)
				So(n, ShouldEqual, 1)
			})

			Convey("And NaN features and absent context are stored as NULL", func() {
				var tempo sql.NullFloat64
				var rank sql.NullInt64
				var seed int
				So(db.QueryRow(`SELECT tempo, kp_rank, seed FROM team_features WHERE team_id = 1101`).Scan(&tempo, &rank, &seed), ShouldBeNil)
				So(tempo.Valid, ShouldBeFalse)
				So(rank.Valid, ShouldBeFalse)
				So(seed, ShouldEqual, 2)
			})
		})

		Convey("When a later run keeps fewer matchups", func() {
			first := []model.MenRow{
				{ID: "2023_1101_1102", Seed: 2, OppSeed: 15, KPDiff: -60},
				{ID: "2023_1101_1103", Seed: 2, OppSeed: 7, KPDiff: -20},
			}
			So(store.SaveMen(ctx, 2023, first), ShouldBeNil)
			So(store.SaveMen(ctx, 2022, []model.MenRow{{ID: "2022_1101_1102", Seed: 1, OppSeed: 16}}), ShouldBeNil)
			So(store.SaveMen(ctx, 2023, first[:1]), ShouldBeNil)

			empty := repository.NewTable[model.TeamFeatures]()
			So(store.SaveTeams(ctx, model.Men, 2023, feats), ShouldBeNil)
			So(store.SaveTeams(ctx, model.Men, 2023, empty), ShouldBeNil)

			db, err := sql.Open("sqlite", path)
			So(err, ShouldBeNil)
			defer func() { _ = db.Close() }()

			Convey("Then the dropped rows are gone and other seasons stay", func() {
				var n int
				So(db.QueryRow(`SELECT COUNT(*) FROM prediction_men WHERE season = 2023`).Scan(&n), ShouldBeNil)
				So(n, ShouldEqual, 1)
				So(db.QueryRow(`SELECT COUNT(*) FROM prediction_men WHERE season = 2022`).Scan(&n), ShouldBeNil)
				So(n, ShouldEqual, 1)
				So(db.QueryRow(`SELECT COUNT(*) FROM team_features`).Scan(&n), ShouldBeNil)
				So(n, ShouldEqual, 0)
			})
		})
	})
}
