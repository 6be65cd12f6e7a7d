// Package enrich joins tournament context (seeds, rankings, conference bids)
// onto the per-team feature tables.
package enrich

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/okian/marchprep/internal/adapters/repository"
	"github.com/okian/marchprep/internal/domain/model"
)

// Seed bounds within a region.
const (
	MinSeed = 1
	MaxSeed = 16
)

var seedDigits = regexp.MustCompile(`[0-9]+`)

// ParseSeed extracts the rank from a seed code such as "W01" or "Y16b".
func ParseSeed(code string) (int, error) {
	digits := seedDigits.FindString(code)
	if digits == "" {
		return 0, fmt.Errorf("%q: %w", code, ErrInvalidSeed)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < MinSeed || n > MaxSeed {
		return 0, fmt.Errorf("%q: %w", code, ErrInvalidSeed)
	}
	return n, nil
}

// Seeds parses every seed code into a table keyed by (season, team).
func Seeds(entries []model.SeedEntry) (*repository.Table[int], error) {
	tbl := repository.NewTable[int](repository.WithName("seeds"), repository.WithCapacity(len(entries)))
	for _, e := range entries {
		seed, err := ParseSeed(e.Seed)
		if err != nil {
			return nil, fmt.Errorf("season %d team %d: %w", e.Season, e.TeamID, err)
		}
		if err := tbl.Insert(model.TeamKey{Season: e.Season, TeamID: e.TeamID}, seed); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// Rankings keys ordinal ranks by (season, team). Entries must already be
// restricted to one system and one ranking day.
func Rankings(entries []model.RankEntry) (*repository.Table[int], error) {
	tbl := repository.NewTable[int](repository.WithName("rankings"), repository.WithCapacity(len(entries)))
	for _, e := range entries {
		if err := tbl.Insert(model.TeamKey{Season: e.Season, TeamID: e.TeamID}, e.OrdinalRank); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// Conferences keys conference abbreviations by (season, team).
func Conferences(entries []model.ConfEntry) (*repository.Table[string], error) {
	tbl := repository.NewTable[string](repository.WithName("conferences"), repository.WithCapacity(len(entries)))
	for _, e := range entries {
		if err := tbl.Insert(model.TeamKey{Season: e.Season, TeamID: e.TeamID}, e.ConfAbbrev); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// ConfKey identifies one conference in one season.
type ConfKey struct {
	Season int
	Conf   string
}

// ConferenceBids counts seeded teams per (season, conference). Seeded teams
// without a conference row are not counted.
func ConferenceBids(seeds *repository.Table[int], confs *repository.Table[string]) map[ConfKey]int {
	bids := make(map[ConfKey]int)
	for _, k := range seeds.Keys() {
		conf, ok := confs.Lookup(k)
		if !ok {
			continue
		}
		bids[ConfKey{Season: k.Season, Conf: conf}]++
	}
	return bids
}

// Men left-joins seeds and ranking ordinals onto feats.
func Men(feats *repository.Table[model.TeamFeatures], seeds, ranks *repository.Table[int]) *repository.Table[model.TeamFeatures] {
	for _, k := range feats.Keys() {
		f, _ := feats.Lookup(k)
		f.Seed, f.HasSeed = seeds.Lookup(k)
		f.Rank, f.HasRank = ranks.Lookup(k)
		feats.Upsert(k, f)
	}
	return feats
}

// Women left-joins seeds, conference and the conference's bid count onto feats.
// Every member of a conference gets its bid count, zero when none qualified.
func Women(feats *repository.Table[model.TeamFeatures], seeds *repository.Table[int], confs *repository.Table[string]) *repository.Table[model.TeamFeatures] {
	bids := ConferenceBids(seeds, confs)
	for _, k := range feats.Keys() {
		f, _ := feats.Lookup(k)
		f.Seed, f.HasSeed = seeds.Lookup(k)
		f.Conf, f.HasConf = confs.Lookup(k)
		if f.HasConf {
			f.ConfBids = bids[ConfKey{Season: k.Season, Conf: f.Conf}]
		}
		feats.Upsert(k, f)
	}
	return feats
}
