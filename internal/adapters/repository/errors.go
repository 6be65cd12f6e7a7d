package repository

import "errors"

// Sentinel kinds for table errors.
var (
	ErrNotFound     = errors.New("key not found")
	ErrDuplicateKey = errors.New("duplicate key")
)
