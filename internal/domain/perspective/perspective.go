// Package perspective turns winner/loser game records into per-team records
// and re-expresses the game site from each team's side.
package perspective

import (
	"fmt"

	"github.com/okian/marchprep/internal/domain/model"
)

// Symmetrize returns two records per game: every winner view first, then
// every loser view, each in input order. Location is still the winner's code;
// run NormalizeAll afterwards.
func Symmetrize(games []model.Game) []model.TeamGame {
	out := make([]model.TeamGame, 0, 2*len(games))
	for _, g := range games {
		out = append(out, WinnerView(g))
	}
	for _, g := range games {
		out = append(out, LoserView(g))
	}
	return out
}

// WinnerView sees g from the winning team.
func WinnerView(g model.Game) model.TeamGame {
	return model.TeamGame{
		Season:    g.Season,
		DayNum:    g.DayNum,
		TeamID:    g.WTeamID,
		OppTeamID: g.LTeamID,
		Team:      g.W,
		Opp:       g.L,
		Loc:       g.WLoc,
		NumOT:     g.NumOT,
		Win:       true,
	}
}

// LoserView sees g from the losing team.
func LoserView(g model.Game) model.TeamGame {
	return model.TeamGame{
		Season:    g.Season,
		DayNum:    g.DayNum,
		TeamID:    g.LTeamID,
		OppTeamID: g.WTeamID,
		Team:      g.L,
		Opp:       g.W,
		Loc:       g.WLoc,
		NumOT:     g.NumOT,
		Win:       false,
	}
}

// NormalizeLocation returns the site code relative to tg's own team.
// The input code must still be the winner's.
func NormalizeLocation(tg model.TeamGame) (model.Location, error) {
	if _, ok := model.ParseLocation(string(tg.Loc)); !ok {
		return "", fmt.Errorf("season %d day %d team %d: %q: %w", tg.Season, tg.DayNum, tg.TeamID, tg.Loc, ErrUnknownLocation)
	}
	if tg.Win {
		return tg.Loc, nil
	}
	return tg.Loc.Flip(), nil
}

// NormalizeAll rewrites Loc in place on every record.
func NormalizeAll(games []model.TeamGame) error {
	for i := range games {
		loc, err := NormalizeLocation(games[i])
		if err != nil {
			return err
		}
		games[i].Loc = loc
	}
	return nil
}
