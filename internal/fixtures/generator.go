// Package fixtures generates deterministic synthetic seasons in the layout
// of the competition data, for tests and local runs.
package fixtures

import (
	"fmt"
	"math/rand"

	"github.com/okian/marchprep/internal/domain/model"
)

// First team IDs per population.
const (
	menBaseID   = 1101
	womenBaseID = 3101
)

const (
	regions      = "WXYZ"
	maxSeeded    = 64
	conferences  = 8
	offSystem    = "SAG"
	baseFGPct    = 0.40
	strengthFG   = 0.10
	threeShare   = 0.35
	threePct     = 0.34
	freeThrowPct = 0.72
)

// Dataset is one generated season for both populations.
type Dataset struct {
	SeedsMen    []model.SeedEntry
	SeedsWomen  []model.SeedEntry
	GamesMen    []model.Game
	GamesWomen  []model.Game
	Conferences []model.ConfEntry
	Rankings    []model.RankEntry
	Matchups    []string
}

// Generate builds a Dataset. The same Config always yields the same Dataset.
func Generate(cfg Config) Dataset {
	rng := rand.New(rand.NewSource(cfg.RandSeed)) //nolint:gosec // deterministic fixtures
	men := teamIDs(menBaseID, even(cfg.MenTeams))
	women := teamIDs(womenBaseID, even(cfg.WomenTeams))

	ds := Dataset{
		SeedsMen:   seeds(cfg, men),
		SeedsWomen: seeds(cfg, women),
		GamesMen:   schedule(cfg, rng, men),
		GamesWomen: schedule(cfg, rng, women),
	}
	for i, id := range women {
		ds.Conferences = append(ds.Conferences, model.ConfEntry{
			Season:     cfg.Season,
			TeamID:     id,
			ConfAbbrev: fmt.Sprintf("conf%d", i%conferences),
		})
	}
	for i, id := range men {
		// The selected ordinal plus rows the loader must filter out.
		ds.Rankings = append(ds.Rankings,
			model.RankEntry{Season: cfg.Season, SystemName: cfg.RankingSystem, RankingDayNum: cfg.RankingDay, TeamID: id, OrdinalRank: i + 1},
			model.RankEntry{Season: cfg.Season, SystemName: cfg.RankingSystem, RankingDayNum: cfg.RankingDay - 1, TeamID: id, OrdinalRank: i + 2},
			model.RankEntry{Season: cfg.Season, SystemName: offSystem, RankingDayNum: cfg.RankingDay, TeamID: id, OrdinalRank: len(men) - i},
		)
	}
	ds.Matchups = append(pairs(cfg, men), pairs(cfg, women)...)
	return ds
}

func even(n int) int {
	if n < 2 {
		return 2
	}
	return n + n%2
}

func teamIDs(base, n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = base + i
	}
	return ids
}

// seeds gives the first cfg.Seeded teams a region and rank, strongest first.
func seeds(cfg Config, ids []int) []model.SeedEntry {
	n := min(cfg.Seeded, maxSeeded, len(ids))
	out := make([]model.SeedEntry, 0, n)
	for i := 0; i < n; i++ {
		code := fmt.Sprintf("%c%02d", regions[i%len(regions)], i/len(regions)+1)
		if i == n-1 && n > 1 {
			code += "a" // play-in suffix
		}
		out = append(out, model.SeedEntry{Season: cfg.Season, Seed: code, TeamID: ids[i]})
	}
	return out
}

// schedule pairs every team once per round using the circle method.
func schedule(cfg Config, rng *rand.Rand, ids []int) []model.Game {
	n := len(ids)
	strength := make(map[int]float64, n)
	for i, id := range ids {
		strength[id] = 1 - float64(i)/float64(n)
	}

	ring := append([]int(nil), ids...)
	var games []model.Game
	for r := 0; r < cfg.Rounds; r++ {
		for i := 0; i < n/2; i++ {
			a, b := ring[i], ring[n-1-i]
			games = append(games, play(cfg.Season, r+1, rng, a, b, strength[a], strength[b]))
		}
		// Keep ring[0] fixed and rotate the rest.
		last := ring[n-1]
		copy(ring[2:], ring[1:n-1])
		ring[1] = last
	}
	return games
}

func play(season, day int, rng *rand.Rand, a, b int, sa, sb float64) model.Game {
	la, lb := boxLine(rng, sa), boxLine(rng, sb)
	if la.Score == lb.Score {
		la.FTA++
		la.FTM++
		la.Score++
	}
	// Each side's defensive rebounds come from the other's misses.
	la.DR, lb.DR = rebounds(rng, lb), rebounds(rng, la)

	g := model.Game{Season: season, DayNum: day, WLoc: []model.Location{model.LocHome, model.LocAway, model.LocNeutral}[rng.Intn(3)]}
	if la.Score > lb.Score {
		g.WTeamID, g.LTeamID, g.W, g.L = a, b, la, lb
	} else {
		g.WTeamID, g.LTeamID, g.W, g.L = b, a, lb, la
	}
	return g
}

func boxLine(rng *rand.Rand, strength float64) model.BoxLine {
	fga := 52 + rng.Intn(14)
	fga3 := int(float64(fga) * (threeShare + rng.Float64()*0.1))
	fgPct := baseFGPct + strengthFG*strength + rng.Float64()*0.06 - 0.03
	fgm3 := int(float64(fga3) * (threePct + rng.Float64()*0.1 - 0.05))
	fgm := max(int(float64(fga)*fgPct), fgm3+1)
	fta := 10 + rng.Intn(16)
	ftm := int(float64(fta) * freeThrowPct)
	return model.BoxLine{
		Score:    2*fgm + fgm3 + ftm,
		FGM:      fgm,
		FGA:      fga,
		FGM3:     fgm3,
		FGA3:     fga3,
		FTM:      ftm,
		FTA:      fta,
		OR:       6 + rng.Intn(8),
		Ast:      10 + rng.Intn(10),
		TO:       9 + rng.Intn(9) - int(4*strength),
		Stl:      4 + rng.Intn(6),
		Blk:      1 + rng.Intn(5),
		PF:       14 + rng.Intn(8),
		HasScore: true,
	}
}

func rebounds(rng *rand.Rand, shooter model.BoxLine) int {
	misses := shooter.FGA - shooter.FGM
	return max(misses-shooter.OR-rng.Intn(4), 0)
}

// pairs lists every ordered-low-high pairing among the strongest teams.
func pairs(cfg Config, ids []int) []string {
	n := min(cfg.MatchupTeams, len(ids))
	var out []string
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, fmt.Sprintf("%d_%d_%d", cfg.Season, ids[i], ids[j]))
		}
	}
	return out
}
