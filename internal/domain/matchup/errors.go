package matchup

import "errors"

// ErrInvalidMatchupID reports an ID not shaped like "season_team_opp".
var ErrInvalidMatchupID = errors.New("invalid matchup id")
