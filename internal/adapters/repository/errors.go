package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound         = errors.New("valuation not found")
	ErrInvalidLimit     = errors.New("invalid leaderboard limit")
	ErrInvalidValuation = errors.New("invalid valuation")
)
