// Package service runs the feature preparation pipeline: load, symmetrize,
// normalize, aggregate, enrich, build matchups, write.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/marchprep/internal/adapters/csvio"
	"github.com/okian/marchprep/internal/adapters/featurestore"
	"github.com/okian/marchprep/internal/adapters/repository"
	"github.com/okian/marchprep/internal/adapters/workbook"
	"github.com/okian/marchprep/internal/config"
	"github.com/okian/marchprep/internal/domain/aggregate"
	"github.com/okian/marchprep/internal/domain/enrich"
	"github.com/okian/marchprep/internal/domain/matchup"
	"github.com/okian/marchprep/internal/domain/model"
	"github.com/okian/marchprep/internal/domain/perspective"
	"github.com/okian/marchprep/pkg/logger"
	"github.com/okian/marchprep/pkg/metrics"
)

// Stage names used in logs and the stage duration metric.
const (
	StageLoad      = "load"
	StageSymmetry  = "symmetrize"
	StageAggregate = "aggregate"
	StageEnrich    = "enrich"
	StageMatchups  = "matchups"
	StageWrite     = "write"
	StageExport    = "export"
)

// Pipeline turns one season of raw tables into the two feature files.
type Pipeline struct {
	cfg    config.Config
	logger logger.Logger
}

// New constructs a Pipeline with the default layout and applies opts.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{cfg: *config.New()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PopulationSummary describes one population's share of a run.
type PopulationSummary struct {
	Games    int
	Teams    int
	Matchups matchup.Stats
	Output   string
}

// Summary is the outcome of a successful run.
type Summary struct {
	RunID      string
	Season     int
	Men        PopulationSummary
	Women      PopulationSummary
	Unassigned int
	Duration   time.Duration
}

// inputs holds every table the loader keeps for the season.
type inputs struct {
	seedsMen, seedsWomen []model.SeedEntry
	gamesMen, gamesWomen []model.Game
	confs                []model.ConfEntry
	ranks                []model.RankEntry
	matchups             []string
}

// run is the state of one Run call.
type run struct {
	*Pipeline
	id  string
	log logger.Logger

	in                   inputs
	recsMen, recsWomen   []model.TeamGame
	featsMen, featsWomen *repository.Table[model.TeamFeatures]
	rowsMen              []model.MenRow
	rowsWomen            []model.WomenRow
	summary              Summary
}

// Run executes every stage in order. Nothing is written unless both
// feature tables were built.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	if p.logger == nil {
		p.logger = logger.Get()
	}
	start := time.Now()
	r := &run{Pipeline: p, id: uuid.NewString()}
	r.log = p.logger.With(logger.String("run_id", r.id), logger.Int("season", p.cfg.Season))
	r.summary = Summary{RunID: r.id, Season: p.cfg.Season}

	r.log.Info(ctx, "pipeline starting",
		logger.String("data_dir", p.cfg.DataDir),
		logger.String("output_dir", p.cfg.OutputDir),
		logger.String("ranking_system", p.cfg.RankingSystem),
		logger.Int("ranking_day", p.cfg.RankingDay),
	)

	err := r.execute(ctx)
	r.summary.Duration = time.Since(start)

	status := "success"
	if err != nil {
		status = "failure"
	} else {
		metrics.MarkSuccess(time.Now())
	}
	metrics.RecordRun(status)
	if p.cfg.MetricsFile != "" {
		if werr := metrics.WriteTextfile(p.cfg.MetricsFile); werr != nil {
			if err == nil {
				err = werr
			} else {
				r.log.Warn(ctx, "metrics textfile not written", logger.Error(werr))
			}
		}
	}

	if err != nil {
		r.log.Error(ctx, "pipeline failed", logger.Error(err), logger.Duration("elapsed", r.summary.Duration))
		return Summary{}, err
	}
	r.log.Info(ctx, "pipeline finished",
		logger.Int("rows_men", r.summary.Men.Matchups.Kept),
		logger.Int("rows_women", r.summary.Women.Matchups.Kept),
		logger.Duration("elapsed", r.summary.Duration),
	)
	return r.summary, nil
}

func (r *run) execute(ctx context.Context) error {
	stages := []struct {
		name string
		fn   func(context.Context) error
	}{
		{StageLoad, r.load},
		{StageSymmetry, r.symmetrize},
		{StageAggregate, r.aggregate},
		{StageEnrich, r.enrich},
		{StageMatchups, r.matchups},
		{StageWrite, r.write},
		{StageExport, r.export},
	}
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("before %s: %w", s.name, err)
		}
		begin := time.Now()
		err := s.fn(ctx)
		took := time.Since(begin)
		metrics.ObserveStage(s.name, took)
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		r.log.Debug(ctx, "stage done", logger.String("stage", s.name), logger.Duration("took", took))
	}
	return nil
}

func (r *run) load(ctx context.Context) error {
	c := &r.cfg
	season := c.Season
	var err error

	loaded := func(table string, n int) {
		metrics.RecordRowsLoaded(table, n)
		r.log.Debug(ctx, "table loaded", logger.String("table", table), logger.Int("rows", n))
	}

	if r.in.seedsMen, err = csvio.ReadSeeds(c.InputPath(c.SeedsMen), season); err != nil {
		return err
	}
	loaded("seeds_men", len(r.in.seedsMen))
	if r.in.seedsWomen, err = csvio.ReadSeeds(c.InputPath(c.SeedsWomen), season); err != nil {
		return err
	}
	loaded("seeds_women", len(r.in.seedsWomen))
	if r.in.gamesMen, err = csvio.ReadBoxScores(c.InputPath(c.BoxScoresMen), season); err != nil {
		return err
	}
	loaded("box_scores_men", len(r.in.gamesMen))
	if r.in.gamesWomen, err = csvio.ReadBoxScores(c.InputPath(c.BoxScoresWomen), season); err != nil {
		return err
	}
	loaded("box_scores_women", len(r.in.gamesWomen))
	if r.in.confs, err = csvio.ReadConferences(c.InputPath(c.ConferencesWomen), season); err != nil {
		return err
	}
	loaded("conferences_women", len(r.in.confs))
	filter := csvio.RankingFilter{Season: season, System: c.RankingSystem, Day: c.RankingDay}
	if r.in.ranks, err = csvio.ReadRankings(c.InputPath(c.RankingsMen), filter); err != nil {
		return err
	}
	loaded("rankings_men", len(r.in.ranks))
	if r.in.matchups, err = csvio.ReadMatchups(c.InputPath(c.Matchups)); err != nil {
		return err
	}
	loaded("matchups", len(r.in.matchups))

	if len(r.in.ranks) == 0 {
		r.log.Warn(ctx, "no ranking rows match; every men's matchup will be incomplete",
			logger.String("system", c.RankingSystem), logger.Int("day", c.RankingDay))
	}

	r.summary.Men.Games = len(r.in.gamesMen)
	r.summary.Women.Games = len(r.in.gamesWomen)
	metrics.RecordGames(len(r.in.gamesMen) + len(r.in.gamesWomen))
	return nil
}

func (r *run) symmetrize(_ context.Context) error {
	r.recsMen = perspective.Symmetrize(r.in.gamesMen)
	if err := perspective.NormalizeAll(r.recsMen); err != nil {
		return fmt.Errorf("men: %w", err)
	}
	r.recsWomen = perspective.Symmetrize(r.in.gamesWomen)
	if err := perspective.NormalizeAll(r.recsWomen); err != nil {
		return fmt.Errorf("women: %w", err)
	}
	metrics.RecordPerspectiveRecords(len(r.recsMen) + len(r.recsWomen))
	return nil
}

func (r *run) aggregate(ctx context.Context) error {
	r.featsMen = aggregate.Features(model.Men, aggregate.Aggregate(r.recsMen))
	r.featsWomen = aggregate.Features(model.Women, aggregate.Aggregate(r.recsWomen))

	for _, t := range []struct {
		p     model.Population
		feats *repository.Table[model.TeamFeatures]
		sum   *PopulationSummary
	}{
		{model.Men, r.featsMen, &r.summary.Men},
		{model.Women, r.featsWomen, &r.summary.Women},
	} {
		t.sum.Teams = t.feats.Len()
		metrics.UpdateTeams(t.p.String(), t.feats.Len())
		r.log.Info(ctx, "teams aggregated",
			logger.String("population", t.p.String()),
			logger.Int("teams", t.feats.Len()),
			logger.Any("features", aggregate.Columns(t.p)),
		)
	}
	return nil
}

func (r *run) enrich(_ context.Context) error {
	seedsMen, err := enrich.Seeds(r.in.seedsMen)
	if err != nil {
		return fmt.Errorf("men seeds: %w", err)
	}
	ranks, err := enrich.Rankings(r.in.ranks)
	if err != nil {
		return fmt.Errorf("rankings: %w", err)
	}
	seedsWomen, err := enrich.Seeds(r.in.seedsWomen)
	if err != nil {
		return fmt.Errorf("women seeds: %w", err)
	}
	confs, err := enrich.Conferences(r.in.confs)
	if err != nil {
		return fmt.Errorf("conferences: %w", err)
	}

	enrich.Men(r.featsMen, seedsMen, ranks)
	enrich.Women(r.featsWomen, seedsWomen, confs)
	return nil
}

func (r *run) matchups(ctx context.Context) error {
	ms, err := matchup.ParseAll(r.in.matchups)
	if err != nil {
		return err
	}
	split := matchup.Partition(ms, r.cfg.PopulationThreshold)
	r.summary.Unassigned = split.Unassigned
	if split.Unassigned > 0 {
		metrics.RecordMatchups("none", "unassigned", split.Unassigned)
		r.log.Warn(ctx, "matchups on the population threshold skipped",
			logger.Int("count", split.Unassigned),
			logger.Int("threshold", r.cfg.PopulationThreshold),
		)
	}

	var men, women matchup.Stats
	r.rowsMen, men = matchup.BuildMen(split.Men, r.featsMen)
	r.rowsWomen, women = matchup.BuildWomen(split.Women, r.featsWomen)
	r.summary.Men.Matchups = men
	r.summary.Women.Matchups = women

	for _, s := range []struct {
		p  model.Population
		st matchup.Stats
	}{{model.Men, men}, {model.Women, women}} {
		pop := s.p.String()
		metrics.RecordMatchups(pop, "kept", s.st.Kept)
		metrics.RecordMatchups(pop, "missing_seed", s.st.MissingSeed)
		metrics.RecordMatchups(pop, "incomplete", s.st.Incomplete)
		r.log.Info(ctx, "matchups built",
			logger.String("population", pop),
			logger.Int("considered", s.st.Considered),
			logger.Int("kept", s.st.Kept),
			logger.Int("missing_seed", s.st.MissingSeed),
			logger.Int("incomplete", s.st.Incomplete),
		)
	}
	return nil
}

func (r *run) write(ctx context.Context) error {
	menPath, womenPath := r.cfg.OutputMenPath(), r.cfg.OutputWomenPath()

	menRecs := make([][]string, len(r.rowsMen))
	for i, row := range r.rowsMen {
		menRecs[i] = row.Record()
	}
	womenRecs := make([][]string, len(r.rowsWomen))
	for i, row := range r.rowsWomen {
		womenRecs[i] = row.Record()
	}

	if err := csvio.WriteTables(
		csvio.Table{Path: menPath, Header: model.MenHeader, Records: menRecs},
		csvio.Table{Path: womenPath, Header: model.WomenHeader, Records: womenRecs},
	); err != nil {
		return err
	}

	r.summary.Men.Output, r.summary.Women.Output = menPath, womenPath
	metrics.UpdateOutputRows(model.Men.String(), len(menRecs))
	metrics.UpdateOutputRows(model.Women.String(), len(womenRecs))
	r.log.Info(ctx, "feature files written",
		logger.String("men", menPath),
		logger.String("women", womenPath),
	)
	return nil
}

func (r *run) export(ctx context.Context) error {
	if path := r.cfg.SQLitePath; path != "" {
		if err := r.saveStore(ctx, path); err != nil {
			return fmt.Errorf("feature store: %w", err)
		}
		r.log.Info(ctx, "feature store written", logger.String("path", path))
	}
	if path := r.cfg.XLSXPath; path != "" {
		if err := workbook.Write(path, r.rowsMen, r.rowsWomen); err != nil {
			return fmt.Errorf("workbook: %w", err)
		}
		r.log.Info(ctx, "workbook written", logger.String("path", path))
	}
	return nil
}

func (r *run) saveStore(ctx context.Context, path string) (err error) {
	store, err := featurestore.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); err == nil {
			err = cerr
		}
	}()

	season := r.cfg.Season
	if err := store.SaveTeams(ctx, model.Men, season, r.featsMen); err != nil {
		return err
	}
	if err := store.SaveTeams(ctx, model.Women, season, r.featsWomen); err != nil {
		return err
	}
	if err := store.SaveMen(ctx, season, r.rowsMen); err != nil {
		return err
	}
	return store.SaveWomen(ctx, season, r.rowsWomen)
}
