// Package matchup parses the prediction targets and joins team features onto
// both sides of each pairing to produce the differential feature rows.
package matchup

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/marchprep/internal/adapters/repository"
	"github.com/okian/marchprep/internal/domain/model"
)

const idParts = 3

// ParseID splits an ID of the form "season_team_opp".
func ParseID(id string) (model.Matchup, error) {
	parts := strings.Split(strings.TrimSpace(id), "_")
	if len(parts) != idParts {
		return model.Matchup{}, fmt.Errorf("%q: %w", id, ErrInvalidMatchupID)
	}
	nums := make([]int, idParts)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return model.Matchup{}, fmt.Errorf("%q: %w", id, ErrInvalidMatchupID)
		}
		nums[i] = n
	}
	return model.Matchup{ID: strings.TrimSpace(id), Season: nums[0], TeamID: nums[1], OppTeamID: nums[2]}, nil
}

// ParseAll parses every ID, failing on the first malformed one.
func ParseAll(ids []string) ([]model.Matchup, error) {
	out := make([]model.Matchup, 0, len(ids))
	for _, id := range ids {
		m, err := ParseID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Split holds matchups partitioned by population.
type Split struct {
	Men   []model.Matchup
	Women []model.Matchup
	// Unassigned counts matchups whose first team sits exactly on the threshold.
	Unassigned int
}

// Partition assigns matchups by their first team's ID: below threshold is
// men, above is women. Input order is preserved.
func Partition(ms []model.Matchup, threshold int) Split {
	var s Split
	for _, m := range ms {
		switch {
		case m.TeamID < threshold:
			s.Men = append(s.Men, m)
		case m.TeamID > threshold:
			s.Women = append(s.Women, m)
		default:
			s.Unassigned++
		}
	}
	return s
}

// Stats reports how many matchups survived the join.
type Stats struct {
	Considered  int
	Kept        int
	MissingSeed int
	Incomplete  int
}

// pair is the left join of a matchup onto the feature table, once per side.
type pair struct {
	self, opp       model.TeamFeatures
	hasSelf, hasOpp bool
}

func join(m model.Matchup, feats *repository.Table[model.TeamFeatures]) pair {
	var p pair
	p.self, p.hasSelf = feats.Lookup(m.Key())
	p.opp, p.hasOpp = feats.Lookup(m.OppKey())
	return p
}

func (p pair) seeded() bool {
	return p.hasSelf && p.hasOpp && p.self.HasSeed && p.opp.HasSeed
}

// BuildMen produces the men's rows: seeds, turnover and rebound rate
// differentials, and the ranking differential.
func BuildMen(ms []model.Matchup, feats *repository.Table[model.TeamFeatures]) ([]model.MenRow, Stats) {
	rows := make([]model.MenRow, 0, len(ms))
	st := Stats{Considered: len(ms)}
	for _, m := range ms {
		p := join(m, feats)
		if !p.seeded() {
			st.MissingSeed++
			continue
		}
		s, o := p.self, p.opp
		row := model.MenRow{
			ID:      m.ID,
			Seed:    s.Seed,
			OppSeed: o.Seed,
			TO:      s.Metrics.TOPct - o.Metrics.TOPct,
			OR:      s.Metrics.ORPct - o.Metrics.ORPct,
			KPDiff:  s.Rank - o.Rank,
		}
		if !s.HasRank || !o.HasRank || anyNaN(row.TO, row.OR) {
			st.Incomplete++
			continue
		}
		rows = append(rows, row)
	}
	st.Kept = len(rows)
	return rows, st
}

// BuildWomen produces the women's rows: seeds, five rate differentials and
// the team's own conference bid count.
func BuildWomen(ms []model.Matchup, feats *repository.Table[model.TeamFeatures]) ([]model.WomenRow, Stats) {
	rows := make([]model.WomenRow, 0, len(ms))
	st := Stats{Considered: len(ms)}
	for _, m := range ms {
		p := join(m, feats)
		if !p.seeded() {
			st.MissingSeed++
			continue
		}
		s, o := p.self, p.opp
		row := model.WomenRow{
			ID:       m.ID,
			Seed:     s.Seed,
			OppSeed:  o.Seed,
			Tempo:    s.Metrics.Tempo - o.Metrics.Tempo,
			EFG:      s.Metrics.EFGPct - o.Metrics.EFGPct,
			TO:       s.Metrics.TOPct - o.Metrics.TOPct,
			OR:       s.Metrics.ORPct - o.Metrics.ORPct,
			FTR:      s.Metrics.FTR - o.Metrics.FTR,
			ConfBids: s.ConfBids,
		}
		if !s.HasConf || anyNaN(row.Tempo, row.EFG, row.TO, row.OR, row.FTR) {
			st.Incomplete++
			continue
		}
		rows = append(rows, row)
	}
	st.Kept = len(rows)
	return rows, st
}

func anyNaN(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
