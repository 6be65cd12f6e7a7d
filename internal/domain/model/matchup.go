package model

import "strconv"

// Matchup is one pairing to predict, parsed from an ID like "2023_1101_1102".
type Matchup struct {
	ID        string
	Season    int
	TeamID    int
	OppTeamID int
}

// Key returns the (season, team) key of the first team.
func (m Matchup) Key() TeamKey { return TeamKey{Season: m.Season, TeamID: m.TeamID} }

// OppKey returns the (season, team) key of the opponent.
func (m Matchup) OppKey() TeamKey { return TeamKey{Season: m.Season, TeamID: m.OppTeamID} }

// MenRow is one output row of the men's feature file.
type MenRow struct {
	ID      string
	Seed    int
	OppSeed int
	TO      float64
	OR      float64
	KPDiff  int
}

// MenHeader is the column order of the men's feature file.
var MenHeader = []string{"ID", "Seed", "OppSeed", "TO", "OR", "KPDiff"}

// Record formats the row in MenHeader order.
func (r MenRow) Record() []string {
	return []string{
		r.ID,
		strconv.Itoa(r.Seed),
		strconv.Itoa(r.OppSeed),
		FormatFloat(r.TO),
		FormatFloat(r.OR),
		strconv.Itoa(r.KPDiff),
	}
}

// Values returns the typed cells in MenHeader order.
func (r MenRow) Values() []any {
	return []any{r.ID, r.Seed, r.OppSeed, r.TO, r.OR, r.KPDiff}
}

// WomenRow is one output row of the women's feature file.
type WomenRow struct {
	ID       string
	Seed     int
	OppSeed  int
	Tempo    float64
	EFG      float64
	TO       float64
	OR       float64
	FTR      float64
	ConfBids int
}

// WomenHeader is the column order of the women's feature file.
var WomenHeader = []string{"ID", "Seed", "OppSeed", "Tempo", "EFG", "TO", "OR", "FTR", "ConfBids"}

// Record formats the row in WomenHeader order.
func (r WomenRow) Record() []string {
	return []string{
		r.ID,
		strconv.Itoa(r.Seed),
		strconv.Itoa(r.OppSeed),
		FormatFloat(r.Tempo),
		FormatFloat(r.EFG),
		FormatFloat(r.TO),
		FormatFloat(r.OR),
		FormatFloat(r.FTR),
		strconv.Itoa(r.ConfBids),
	}
}

// Values returns the typed cells in WomenHeader order.
func (r WomenRow) Values() []any {
	return []any{r.ID, r.Seed, r.OppSeed, r.Tempo, r.EFG, r.TO, r.OR, r.FTR, r.ConfBids}
}

// FormatFloat renders a feature with the shortest representation that round-trips.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
