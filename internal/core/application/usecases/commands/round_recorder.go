package commands

import (
	"context"
	"fmt"

	"routeplanner/internal/core/application/planner"
	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/tour"
	"routeplanner/internal/core/ports"
)

// roundRecorder stores the current tours as one round snapshot, then announces them.
type roundRecorder struct {
	uowFactory TourUoWFactory
	publisher  ports.TourPublisher
}

func (r roundRecorder) record(ctx context.Context, roundID kernel.UUID, current []planner.CourierTour) error {
	tours := make([]*tour.Tour, 0, len(current))
	for _, ct := range current {
		if ct.Tour != nil {
			tours = append(tours, ct.Tour)
		}
	}
	if len(tours) == 0 {
		return nil
	}

	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TourRepository()
	for _, t := range tours {
		if err := repo.Add(ctx, roundID, t); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if err := r.publisher.PublishRound(ctx, roundID, tours); err != nil {
		return fmt.Errorf("round %s saved but not published: %w", roundID, err)
	}

	return nil
}
