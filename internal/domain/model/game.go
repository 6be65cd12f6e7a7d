// Package model contains the records passed between pipeline stages.
package model

// Location is a game-site code relative to one team.
type Location string

// Location codes as they appear in the box-score tables.
const (
	LocHome    Location = "H"
	LocAway    Location = "A"
	LocNeutral Location = "N"
)

// ParseLocation validates a raw location code.
func ParseLocation(s string) (Location, bool) {
	switch l := Location(s); l {
	case LocHome, LocAway, LocNeutral:
		return l, true
	default:
		return "", false
	}
}

// Flip returns the same site seen from the other bench.
func (l Location) Flip() Location {
	switch l {
	case LocHome:
		return LocAway
	case LocAway:
		return LocHome
	default:
		return l
	}
}

// TeamKey identifies one team in one season.
type TeamKey struct {
	Season int
	TeamID int
}

// Less orders keys by season, then team.
func (k TeamKey) Less(o TeamKey) bool {
	if k.Season != o.Season {
		return k.Season < o.Season
	}
	return k.TeamID < o.TeamID
}

// BoxLine holds one side's counting stats for a game, or their sum over a season.
type BoxLine struct {
	Score int
	FGM   int
	FGA   int
	FGM3  int
	FGA3  int
	FTM   int
	FTA   int
	OR    int
	DR    int
	Ast   int
	TO    int
	Stl   int
	Blk   int
	PF    int

	// HasScore is false when the source row left the score cell empty.
	HasScore bool
}

// Add returns the element-wise sum of two lines. HasScore is not summed.
func (b BoxLine) Add(o BoxLine) BoxLine {
	return BoxLine{
		Score:    b.Score + o.Score,
		FGM:      b.FGM + o.FGM,
		FGA:      b.FGA + o.FGA,
		FGM3:     b.FGM3 + o.FGM3,
		FGA3:     b.FGA3 + o.FGA3,
		FTM:      b.FTM + o.FTM,
		FTA:      b.FTA + o.FTA,
		OR:       b.OR + o.OR,
		DR:       b.DR + o.DR,
		Ast:      b.Ast + o.Ast,
		TO:       b.TO + o.TO,
		Stl:      b.Stl + o.Stl,
		Blk:      b.Blk + o.Blk,
		PF:       b.PF + o.PF,
		HasScore: b.HasScore,
	}
}

// Game is one completed game as recorded from the winner's side.
type Game struct {
	Season  int
	DayNum  int
	WTeamID int
	LTeamID int
	W       BoxLine
	L       BoxLine
	WLoc    Location // relative to the winner
	NumOT   int
}

// TeamGame is a game viewed from one participant.
type TeamGame struct {
	Season    int
	DayNum    int
	TeamID    int
	OppTeamID int
	Team      BoxLine
	Opp       BoxLine
	Loc       Location
	NumOT     int
	Win       bool
}

// Key returns the (season, team) key of the record's own team.
func (g TeamGame) Key() TeamKey {
	return TeamKey{Season: g.Season, TeamID: g.TeamID}
}

// TeamSeason is the season sum of every TeamGame of one team.
type TeamSeason struct {
	Key  TeamKey
	Team BoxLine
	Opp  BoxLine
	GP   int // records with a score
	Wins int
}
