package commands

import (
	"context"
	"errors"

	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/pkg/guard"
)

var ErrChangeWarehouseCommandIsNotConstructed = errors.New(
	"ChangeWarehouseCommand must be created via NewSetWarehouseCommand or NewClearWarehouseCommand constructor",
)

// ChangeWarehouseCommand moves or clears the warehouse. Both drop the current
// tours; undo restores them.
type ChangeWarehouseCommand struct {
	intersection roadgraph.IntersectionID

	guard guard.ConstructorGuard
}

func NewSetWarehouseCommand(intersection roadgraph.IntersectionID) (ChangeWarehouseCommand, error) {
	if intersection == "" {
		return ChangeWarehouseCommand{}, ErrIntersectionIsRequired
	}

	return ChangeWarehouseCommand{
		intersection: intersection,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// NewClearWarehouseCommand creates a command leaving the round without warehouse.
func NewClearWarehouseCommand() ChangeWarehouseCommand {
	return ChangeWarehouseCommand{guard: guard.NewConstructorGuard()}
}

func (c ChangeWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrChangeWarehouseCommandIsNotConstructed)
}

// Intersection is the new warehouse, empty when clearing.
func (c ChangeWarehouseCommand) Intersection() roadgraph.IntersectionID {
	return c.intersection
}

func (c ChangeWarehouseCommand) Clears() bool {
	return c.intersection == ""
}

type ChangeWarehouseCommandHandler struct {
	planner RoundPlanner
}

func NewChangeWarehouseCommandHandler(planner RoundPlanner) ChangeWarehouseCommandHandler {
	return ChangeWarehouseCommandHandler{planner: planner}
}

func (h ChangeWarehouseCommandHandler) Handle(ctx context.Context, cmd ChangeWarehouseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.Clears() {
		return h.planner.ClearWarehouse(ctx)
	}
	return h.planner.SetWarehouse(ctx, cmd.Intersection())
}
