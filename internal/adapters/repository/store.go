// Package repository stores the latest valuation per athlete-season.
package repository

import (
	"context"

	"github.com/okian/varsity/internal/domain/model"
	"github.com/okian/varsity/internal/domain/types"
)

// Store provides read/write access to computed valuations. Stored
// valuations are shared and must not be modified by callers.
type Store interface {
	// Put stores v as the latest run for its athlete-season. A run computed
	// earlier than the stored one is ignored; Put reports whether v was kept.
	Put(ctx context.Context, v *model.Valuation) (bool, error)

	// Get returns the valuation for athleteID in season.
	// Returns ErrNotFound if none is stored.
	Get(ctx context.Context, athleteID string, season int) (*model.Valuation, error)

	// Latest returns the valuation of athleteID's most recent season.
	Latest(ctx context.Context, athleteID string) (*model.Valuation, error)

	// TopN returns the top-n entries ordered by combined value desc, ties by
	// athlete id. An empty position means all positions.
	TopN(ctx context.Context, n int, position model.Position) ([]types.Entry, error)

	// Count returns the number of stored athlete-seasons.
	Count(ctx context.Context) int
}
