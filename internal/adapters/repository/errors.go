package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrUnavailable  = errors.New("event store unavailable")
	ErrInvalidLimit = errors.New("invalid query limit")
)
