package ensemble

import "errors"

// Sentinel errors.
var (
	ErrInvalidArchetype = errors.New("invalid archetype")
	ErrUnknownArchetype = errors.New("unknown archetype")
)
