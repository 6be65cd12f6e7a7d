// Package featurestore persists the team feature tables and the prediction
// rows of a run into a SQLite database.
package featurestore

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/okian/marchprep/internal/adapters/repository"
	"github.com/okian/marchprep/internal/domain/model"

	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS team_features (
		population TEXT    NOT NULL,
		season     INTEGER NOT NULL,
		team_id    INTEGER NOT NULL,
		gp         INTEGER NOT NULL,
		poss       REAL,
		to_pct     REAL,
		or_pct     REAL,
		tempo      REAL,
		efg_pct    REAL,
		ftr        REAL,
		seed       INTEGER,
		kp_rank    INTEGER,
		conf       TEXT,
		conf_bids  INTEGER,
		PRIMARY KEY (population, season, team_id)
	)`,
	`CREATE TABLE IF NOT EXISTS prediction_men (
		id       TEXT PRIMARY KEY,
		season   INTEGER NOT NULL,
		seed     INTEGER NOT NULL,
		opp_seed INTEGER NOT NULL,
		to_diff  REAL    NOT NULL,
		or_diff  REAL    NOT NULL,
		kp_diff  INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS prediction_women (
		id         TEXT PRIMARY KEY,
		season     INTEGER NOT NULL,
		seed       INTEGER NOT NULL,
		opp_seed   INTEGER NOT NULL,
		tempo_diff REAL    NOT NULL,
		efg_diff   REAL    NOT NULL,
		to_diff    REAL    NOT NULL,
		or_diff    REAL    NOT NULL,
		ftr_diff   REAL    NOT NULL,
		conf_bids  INTEGER NOT NULL
	)`,
}

// Store writes run results to one SQLite file. Each save first clears the
// rows of the same season (and population), so a rerun leaves exactly its own output.
type Store struct {
	db *sql.DB
}

// Open creates the database file and schema if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveTeams replaces the season's rows of population p with feats.
func (s *Store) SaveTeams(ctx context.Context, p model.Population, season int, feats *repository.Table[model.TeamFeatures]) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM team_features WHERE population = ? AND season = ?`, p.String(), season); err != nil {
			return fmt.Errorf("clear teams: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO team_features (
			population, season, team_id, gp, poss, to_pct, or_pct, tempo, efg_pct, ftr,
			seed, kp_rank, conf, conf_bids
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
		if err != nil {
			return fmt.Errorf("prepare team insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		return feats.Each(func(k model.TeamKey, f model.TeamFeatures) error {
			m := f.Metrics
			_, err := stmt.ExecContext(ctx,
				p.String(), k.Season, k.TeamID, f.GP,
				nullable(m.Poss), nullable(m.TOPct), nullable(m.ORPct), nullable(m.Tempo), nullable(m.EFGPct), nullable(m.FTR),
				optional(f.Seed, f.HasSeed), optional(f.Rank, f.HasRank),
				optional(f.Conf, f.HasConf), optional(f.ConfBids, f.HasConf),
			)
			if err != nil {
				return fmt.Errorf("insert team %d: %w", k.TeamID, err)
			}
			return nil
		})
	})
}

// SaveMen replaces the season's men's prediction rows.
func (s *Store) SaveMen(ctx context.Context, season int, rows []model.MenRow) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM prediction_men WHERE season = ?`, season); err != nil {
			return fmt.Errorf("clear men: %w", err)
		}
		for _, r := range rows {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO prediction_men (season, id, seed, opp_seed, to_diff, or_diff, kp_diff) VALUES (?,?,?,?,?,?,?)`,
				append([]any{season}, r.Values()...)...,
			); err != nil {
				return fmt.Errorf("insert %s: %w", r.ID, err)
			}
		}
		return nil
	})
}

// SaveWomen replaces the season's women's prediction rows.
func (s *Store) SaveWomen(ctx context.Context, season int, rows []model.WomenRow) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM prediction_women WHERE season = ?`, season); err != nil {
			return fmt.Errorf("clear women: %w", err)
		}
		for _, r := range rows {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO prediction_women (
					season, id, seed, opp_seed, tempo_diff, efg_diff, to_diff, or_diff, ftr_diff, conf_bids
				) VALUES (?,?,?,?,?,?,?,?,?,?)`,
				append([]any{season}, r.Values()...)...,
			); err != nil {
				return fmt.Errorf("insert %s: %w", r.ID, err)
			}
		}
		return nil
	})
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// nullable maps NaN to SQL NULL.
func nullable(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func optional[T any](v T, ok bool) any {
	if !ok {
		return nil
	}
	return v
}
