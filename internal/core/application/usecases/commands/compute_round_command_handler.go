package commands

import (
	"context"

	"routeplanner/internal/core/application/planner"
	"routeplanner/internal/core/ports"
)

// ComputeRoundCommandHandler computes all tours, then stores and publishes them.
//
// The planner state changes before anything is persisted: when saving fails the
// computed round stays visible in the planner and the error is returned.
type ComputeRoundCommandHandler struct {
	planner  RoundPlanner
	recorder roundRecorder
}

// NewComputeRoundCommandHandler creates a handler for full round computations.
func NewComputeRoundCommandHandler(
	planner RoundPlanner,
	uowFactory TourUoWFactory,
	publisher ports.TourPublisher,
) ComputeRoundCommandHandler {
	return ComputeRoundCommandHandler{
		planner:  planner,
		recorder: roundRecorder{uowFactory: uowFactory, publisher: publisher},
	}
}

func (h ComputeRoundCommandHandler) Handle(ctx context.Context, cmd ComputeRoundCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	compute := h.planner.ComputeRound
	if cmd.Mode() == planner.Optimized {
		compute = h.planner.ComputeRoundOptimized
	}
	if err := compute(ctx); err != nil {
		return err
	}

	return h.recorder.record(ctx, cmd.RoundID(), h.planner.Tours())
}
