package commands

import (
	"context"
	"errors"
	"math"

	"routeplanner/internal/pkg/errs"
	"routeplanner/internal/pkg/guard"
)

var ErrInitializeFleetCommandIsNotConstructed = errors.New(
	"InitializeFleetCommand must be created via NewInitializeFleetCommand constructor",
)

// InitializeFleetCommand replaces the courier fleet, clearing every tour and the history.
type InitializeFleetCommand struct {
	courierCount int

	guard guard.ConstructorGuard
}

// NewInitializeFleetCommand creates a command for a fleet of courierCount couriers.
// A count of zero is allowed and leaves the round without couriers.
func NewInitializeFleetCommand(courierCount int) (InitializeFleetCommand, error) {
	if courierCount < 0 {
		return InitializeFleetCommand{}, errs.NewValueIsOutOfRangeError("courier count", courierCount, 0, math.MaxInt)
	}

	return InitializeFleetCommand{
		courierCount: courierCount,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c InitializeFleetCommand) Validate() error {
	return c.guard.Validate(ErrInitializeFleetCommandIsNotConstructed)
}

func (c InitializeFleetCommand) CourierCount() int {
	return c.courierCount
}

type InitializeFleetCommandHandler struct {
	planner RoundPlanner
}

func NewInitializeFleetCommandHandler(planner RoundPlanner) InitializeFleetCommandHandler {
	return InitializeFleetCommandHandler{planner: planner}
}

// Handle resets the fleet on the current road graph.
func (h InitializeFleetCommandHandler) Handle(_ context.Context, cmd InitializeFleetCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.planner.Initialize(cmd.CourierCount(), nil)
}
