package csvio

import "errors"

// Sentinel kinds for table I/O errors.
var (
	ErrMissingFile   = errors.New("input file missing")
	ErrMissingColumn = errors.New("required column missing")
	ErrBadValue      = errors.New("unparsable value")
)
