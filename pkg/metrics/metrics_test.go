package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConfigure(t *testing.T) {
	Convey("Given the global manager configured with a season label", t, func() {
		Configure(WithConstLabels(map[string]string{"season": "2024"}))
		defer Configure()

		RecordRun("success")
		path := filepath.Join(t.TempDir(), "season.prom")
		So(WriteTextfile(path), ShouldBeNil)

		Convey("Then every exported series carries the label", func() {
			body, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(string(body), ShouldContainSubstring, `marchprep_pipeline_runs_total{season="2024",status="success"} 1`)
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithConstLabels(map[string]string{"season": "2023"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should register on that registry", func() {
				So(manager, ShouldNotBeNil)
				manager.games.Add(3)
				So(testutil.ToFloat64(manager.games), ShouldEqual, 3)
				n, err := testutil.GatherAndCount(registry, "marchprep_pipeline_games_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording a run", func() {
			before := testutil.ToFloat64(globalManager.matchups.WithLabelValues("men", "kept"))

			So(func() {
				RecordRowsLoaded("seeds_m", 68)
				RecordGames(5000)
				RecordPerspectiveRecords(10000)
				UpdateTeams("men", 363)
				RecordMatchups("men", "kept", 2278)
				RecordMatchups("men", "missing_seed", 63000)
				UpdateOutputRows("men", 2278)
				ObserveStage("aggregate", 15*time.Millisecond)
				RecordRun("success")
				MarkSuccess(time.Unix(1700000000, 0))
			}, ShouldNotPanic)

			Convey("Then counters accumulate", func() {
				after := testutil.ToFloat64(globalManager.matchups.WithLabelValues("men", "kept"))
				So(after-before, ShouldEqual, 2278)
				So(testutil.ToFloat64(globalManager.lastSuccess), ShouldEqual, 1700000000)
			})
		})

		Convey("When writing the textfile", func() {
			RecordRun("success")
			path := filepath.Join(t.TempDir(), "marchprep.prom")
			So(WriteTextfile(path), ShouldBeNil)

			Convey("Then it holds the exposition text", func() {
				body, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(strings.Contains(string(body), "marchprep_pipeline_runs_total"), ShouldBeTrue)
			})
		})

		Convey("When the textfile directory is missing", func() {
			err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
			So(err, ShouldNotBeNil)
		})

		Convey("Then the registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
