package enrich

import "errors"

// ErrInvalidSeed reports a seed code without a rank in 1-16.
var ErrInvalidSeed = errors.New("invalid seed code")
