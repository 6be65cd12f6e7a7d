package model

// Metrics are the per-team rate features derived from season totals.
// A NaN value means the denominator was zero.
type Metrics struct {
	Poss   float64
	TOPct  float64
	ORPct  float64
	Tempo  float64
	EFGPct float64
	FTR    float64
}

// TeamFeatures is a TeamSeason's metrics plus the tournament context joined onto it.
type TeamFeatures struct {
	Key     TeamKey
	GP      int
	Metrics Metrics

	Seed    int
	HasSeed bool

	// Rank is the public ranking ordinal; men only.
	Rank    int
	HasRank bool

	// Conf and ConfBids are set for women only.
	Conf     string
	ConfBids int
	HasConf  bool
}

// Population separates the two tournaments, which use different feature sets.
type Population int

// Populations.
const (
	Men Population = iota + 1
	Women
)

// String returns the population name used in logs and metric labels.
func (p Population) String() string {
	switch p {
	case Men:
		return "men"
	case Women:
		return "women"
	default:
		return "unknown"
	}
}

// Code is the one-letter suffix used in file names.
func (p Population) Code() string {
	switch p {
	case Men:
		return "m"
	case Women:
		return "w"
	default:
		return "x"
	}
}

// SeedEntry is one row of a tournament seed table.
type SeedEntry struct {
	Season int
	Seed   string // e.g. "W01", "X16a"
	TeamID int
}

// RankEntry is one ordinal from a public ranking system.
type RankEntry struct {
	Season        int
	SystemName    string
	RankingDayNum int
	TeamID        int
	OrdinalRank   int
}

// ConfEntry is one team's conference membership for a season.
type ConfEntry struct {
	Season     int
	TeamID     int
	ConfAbbrev string
}
