package csvio

import (
	"strconv"

	"github.com/okian/marchprep/internal/domain/model"
)

// boxColumn maps one stat's winner and loser source columns onto a BoxLine field.
// The mapping is spelled out per column; "WLoc" is not a box stat and is read separately.
type boxColumn struct {
	winner, loser string
	field         func(*model.BoxLine) *int
}

var boxColumns = []boxColumn{
	{"WScore", "LScore", func(b *model.BoxLine) *int { return &b.Score }},
	{"WFGM", "LFGM", func(b *model.BoxLine) *int { return &b.FGM }},
	{"WFGA", "LFGA", func(b *model.BoxLine) *int { return &b.FGA }},
	{"WFGM3", "LFGM3", func(b *model.BoxLine) *int { return &b.FGM3 }},
	{"WFGA3", "LFGA3", func(b *model.BoxLine) *int { return &b.FGA3 }},
	{"WFTM", "LFTM", func(b *model.BoxLine) *int { return &b.FTM }},
	{"WFTA", "LFTA", func(b *model.BoxLine) *int { return &b.FTA }},
	{"WOR", "LOR", func(b *model.BoxLine) *int { return &b.OR }},
	{"WDR", "LDR", func(b *model.BoxLine) *int { return &b.DR }},
	{"WAst", "LAst", func(b *model.BoxLine) *int { return &b.Ast }},
	{"WTO", "LTO", func(b *model.BoxLine) *int { return &b.TO }},
	{"WStl", "LStl", func(b *model.BoxLine) *int { return &b.Stl }},
	{"WBlk", "LBlk", func(b *model.BoxLine) *int { return &b.Blk }},
	{"WPF", "LPF", func(b *model.BoxLine) *int { return &b.PF }},
}

// BoxScoreColumns lists every column ReadBoxScores requires, in file order.
func BoxScoreColumns() []string {
	cols := []string{colSeason, "DayNum", "WTeamID", "WScore", "LTeamID", "LScore", "WLoc", "NumOT"}
	for _, side := range []func(boxColumn) string{
		func(c boxColumn) string { return c.winner },
		func(c boxColumn) string { return c.loser },
	} {
		for _, c := range boxColumns[1:] {
			cols = append(cols, side(c))
		}
	}
	return cols
}

// ReadBoxScores loads one season of detailed results.
// Empty stat cells read as zero; an empty score clears HasScore for that side.
func ReadBoxScores(path string, season int) ([]model.Game, error) {
	var out []model.Game
	err := scan(path, BoxScoreColumns(), func(r record) error {
		s, err := r.int(colSeason)
		if err != nil || s != season {
			return err
		}
		g := model.Game{Season: s, WLoc: model.Location(r.str("WLoc"))}
		if g.DayNum, err = r.int("DayNum"); err != nil {
			return err
		}
		if g.WTeamID, err = r.int("WTeamID"); err != nil {
			return err
		}
		if g.LTeamID, err = r.int("LTeamID"); err != nil {
			return err
		}
		if g.NumOT, _, err = r.optInt("NumOT"); err != nil {
			return err
		}
		for i, c := range boxColumns {
			w, wok, err := r.optInt(c.winner)
			if err != nil {
				return err
			}
			l, lok, err := r.optInt(c.loser)
			if err != nil {
				return err
			}
			*c.field(&g.W) = w
			*c.field(&g.L) = l
			if i == 0 {
				g.W.HasScore, g.L.HasScore = wok, lok
			}
		}
		out = append(out, g)
		return nil
	})
	return out, err
}

// FormatBoxScore renders g in BoxScoreColumns order.
func FormatBoxScore(g model.Game) []string {
	rec := []string{
		strconv.Itoa(g.Season), strconv.Itoa(g.DayNum),
		strconv.Itoa(g.WTeamID), strconv.Itoa(g.W.Score),
		strconv.Itoa(g.LTeamID), strconv.Itoa(g.L.Score),
		string(g.WLoc), strconv.Itoa(g.NumOT),
	}
	for _, side := range []model.BoxLine{g.W, g.L} {
		for _, c := range boxColumns[1:] {
			rec = append(rec, strconv.Itoa(*c.field(&side)))
		}
	}
	return rec
}
