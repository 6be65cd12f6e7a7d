package csvio

import (
	"github.com/okian/marchprep/internal/domain/model"
)

// Column names shared by several tables.
const (
	colSeason = "Season"
	colTeamID = "TeamID"
)

// ReadSeeds loads one season of a seed table (Season, Seed, TeamID).
func ReadSeeds(path string, season int) ([]model.SeedEntry, error) {
	var out []model.SeedEntry
	err := scan(path, []string{colSeason, "Seed", colTeamID}, func(r record) error {
		s, err := r.int(colSeason)
		if err != nil || s != season {
			return err
		}
		team, err := r.int(colTeamID)
		if err != nil {
			return err
		}
		out = append(out, model.SeedEntry{Season: s, Seed: r.str("Seed"), TeamID: team})
		return nil
	})
	return out, err
}

// ReadConferences loads one season of conference memberships (Season, TeamID, ConfAbbrev).
func ReadConferences(path string, season int) ([]model.ConfEntry, error) {
	var out []model.ConfEntry
	err := scan(path, []string{colSeason, colTeamID, "ConfAbbrev"}, func(r record) error {
		s, err := r.int(colSeason)
		if err != nil || s != season {
			return err
		}
		team, err := r.int(colTeamID)
		if err != nil {
			return err
		}
		out = append(out, model.ConfEntry{Season: s, TeamID: team, ConfAbbrev: r.str("ConfAbbrev")})
		return nil
	})
	return out, err
}

// RankingFilter selects one system's ordinals for one day of one season.
type RankingFilter struct {
	Season int
	System string
	Day    int
}

// ReadRankings streams an ordinal table and keeps the rows matching f.
func ReadRankings(path string, f RankingFilter) ([]model.RankEntry, error) {
	var out []model.RankEntry
	required := []string{colSeason, "SystemName", "RankingDayNum", colTeamID, "OrdinalRank"}
	err := scan(path, required, func(r record) error {
		if r.str("SystemName") != f.System {
			return nil
		}
		s, err := r.int(colSeason)
		if err != nil || s != f.Season {
			return err
		}
		day, err := r.int("RankingDayNum")
		if err != nil || day != f.Day {
			return err
		}
		team, err := r.int(colTeamID)
		if err != nil {
			return err
		}
		rank, err := r.int("OrdinalRank")
		if err != nil {
			return err
		}
		out = append(out, model.RankEntry{Season: s, SystemName: f.System, RankingDayNum: day, TeamID: team, OrdinalRank: rank})
		return nil
	})
	return out, err
}

// ReadMatchups loads the ID column of the matchup list. Other columns are ignored.
func ReadMatchups(path string) ([]string, error) {
	var out []string
	err := scan(path, []string{"ID"}, func(r record) error {
		out = append(out, r.str("ID"))
		return nil
	})
	return out, err
}
