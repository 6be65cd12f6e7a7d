package fixtures

// Config sizes a synthetic season.
type Config struct {
	Season     int
	MenTeams   int // rounded up to an even count
	WomenTeams int
	Rounds     int // every team plays once per round
	Seeded     int // teams per population given a seed, at most 64
	// MatchupTeams is how many of the strongest teams are paired in the matchup list.
	MatchupTeams  int
	RankingSystem string
	RankingDay    int
	RandSeed      int64
}

// DefaultConfig returns a small season with a few unseeded teams in the matchup list.
func DefaultConfig() Config {
	return Config{
		Season:        2023,
		MenTeams:      40,
		WomenTeams:    40,
		Rounds:        30,
		Seeded:        24,
		MatchupTeams:  28,
		RankingSystem: "POM",
		RankingDay:    128,
		RandSeed:      42,
	}
}
