// Package aggregate sums per-team game records into season totals and
// derives the rate features the models consume.
package aggregate

import (
	"math"

	"github.com/okian/marchprep/internal/adapters/repository"
	"github.com/okian/marchprep/internal/domain/model"
)

// Box-score weights.
const (
	freeThrowPossessionFactor = 0.475
	threePointBonus           = 0.5
)

// Feature column names as used in logs and the feature store.
const (
	ColTempo  = "Tempo"
	ColEFGPct = "EFG_pct"
	ColTOPct  = "TO_pct"
	ColORPct  = "OR_pct"
	ColFTR    = "FTR"
)

// Aggregate groups records by (season, team) and sums both box lines.
// GP counts records whose score was present.
func Aggregate(games []model.TeamGame) *repository.Table[model.TeamSeason] {
	tbl := repository.NewTable[model.TeamSeason](repository.WithName("team_seasons"))
	for _, g := range games {
		k := g.Key()
		ts, _ := tbl.Lookup(k)
		ts.Key = k
		ts.Team = ts.Team.Add(g.Team)
		ts.Opp = ts.Opp.Add(g.Opp)
		if g.Team.HasScore {
			ts.GP++
		}
		if g.Win {
			ts.Wins++
		}
		tbl.Upsert(k, ts)
	}
	return tbl
}

// Possessions estimates offensive possessions from season totals.
func Possessions(b model.BoxLine) float64 {
	return float64(b.FGA) - float64(b.OR) + float64(b.TO) + freeThrowPossessionFactor*float64(b.FTA)
}

// Derive computes every rate metric for ts.
func Derive(ts model.TeamSeason) model.Metrics {
	t := ts.Team
	poss := Possessions(t)
	return model.Metrics{
		Poss:   poss,
		TOPct:  ratio(float64(t.TO), poss),
		ORPct:  ratio(float64(t.OR), float64(t.OR+ts.Opp.DR)),
		Tempo:  ratio(poss, float64(ts.GP)),
		EFGPct: ratio(threePointBonus*float64(t.FGM3)+float64(t.FGM), float64(t.FGA)),
		FTR:    ratio(float64(t.FTA), float64(t.FGM)),
	}
}

// Columns lists the derived features a population keeps.
func Columns(p model.Population) []string {
	if p == model.Men {
		return []string{ColTOPct, ColORPct}
	}
	return []string{ColTempo, ColEFGPct, ColTOPct, ColORPct, ColFTR}
}

// Project keeps only the features p retains; the rest become NaN.
// Men keep turnover and offensive-rebound rate, women keep all five.
func Project(p model.Population, m model.Metrics) model.Metrics {
	if p != model.Men {
		return m
	}
	nan := math.NaN()
	return model.Metrics{
		Poss:   m.Poss,
		TOPct:  m.TOPct,
		ORPct:  m.ORPct,
		Tempo:  nan,
		EFGPct: nan,
		FTR:    nan,
	}
}

// Features builds the per-team feature table for population p.
func Features(p model.Population, seasons *repository.Table[model.TeamSeason]) *repository.Table[model.TeamFeatures] {
	out := repository.NewTable[model.TeamFeatures](
		repository.WithName(p.String()+"_features"),
		repository.WithCapacity(seasons.Len()),
	)
	_ = seasons.Each(func(k model.TeamKey, ts model.TeamSeason) error {
		out.Upsert(k, model.TeamFeatures{
			Key:     k,
			GP:      ts.GP,
			Metrics: Project(p, Derive(ts)),
		})
		return nil
	})
	return out
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}
