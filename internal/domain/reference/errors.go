package reference

import "errors"

// Sentinel error kinds for reference data.
var (
	// ErrConfigurationMissing means a lookup needed for a valuation has no
	// entry. It is fatal for the athlete being valued, not for a batch.
	ErrConfigurationMissing = errors.New("reference configuration missing")
	ErrInvalidReference     = errors.New("invalid reference data")
	ErrLoadReference        = errors.New("load reference data failed")
)
