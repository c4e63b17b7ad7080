package ports

import (
	"context"

	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/tour"
)

// TourPublisher announces the tours of a saved round to downstream consumers.
type TourPublisher interface {
	// PublishRound emits one event per tour. Implementations must be safe for concurrent use.
	PublishRound(ctx context.Context, roundID kernel.UUID, tours []*tour.Tour) error
}
