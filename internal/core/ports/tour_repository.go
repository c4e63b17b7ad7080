// Package ports defines the contracts between the round planner core and its
// infrastructure: persistence of computed tours and publication of tour events.
package ports

import (
	"context"

	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/tour"
)

// TourRepository defines the persistence contract for computed tours.
// Tours are stored as immutable snapshots grouped by the round that produced them.
type TourRepository interface {
	// Add persists one tour of the given round.
	// The tour must be valid; its courier must not already have a tour in that round.
	Add(ctx context.Context, roundID kernel.UUID, aggregate *tour.Tour) error

	// GetByRound retrieves every tour stored for a round, ordered by courier insertion.
	// Returns an object not found error when the round is unknown.
	GetByRound(ctx context.Context, roundID kernel.UUID) ([]*tour.Tour, error)

	// GetLatestRoundID returns the identifier of the most recently saved round.
	//
	// Example:
	//   roundID, err := repo.GetLatestRoundID(ctx)
	//   if err != nil {
	//       return fmt.Errorf("failed to find latest round: %w", err)
	//   }
	//   tours, err := repo.GetByRound(ctx, roundID)
	GetLatestRoundID(ctx context.Context) (kernel.UUID, error)
}
