package commands

import (
	"context"
	"errors"
	"slices"

	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/pkg/errs"
	"routeplanner/internal/pkg/guard"
)

var (
	ErrLoadRequestsCommandIsNotConstructed = errors.New(
		"LoadRequestsCommand must be created via NewLoadRequestsCommand constructor",
	)
	ErrWarehouseIsRequired = errs.NewValueIsRequiredError("warehouse")
)

// LoadRequestsCommand replaces the warehouse and the delivery list at once.
//
// Example:
//
//	cmd, err := NewLoadRequestsCommand("25175791", []roadgraph.IntersectionID{"2129259178", "26086130"})
//	if err != nil {
//	    return fmt.Errorf("invalid requests: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // unknown intersection or duplicate: the previous list is still loaded
//	}
type LoadRequestsCommand struct {
	warehouse  roadgraph.IntersectionID
	deliveries []roadgraph.IntersectionID

	guard guard.ConstructorGuard
}

func NewLoadRequestsCommand(
	warehouse roadgraph.IntersectionID,
	deliveries []roadgraph.IntersectionID,
) (LoadRequestsCommand, error) {
	if warehouse == "" {
		return LoadRequestsCommand{}, ErrWarehouseIsRequired
	}

	return LoadRequestsCommand{
		warehouse:  warehouse,
		deliveries: slices.Clone(deliveries),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c LoadRequestsCommand) Validate() error {
	return c.guard.Validate(ErrLoadRequestsCommandIsNotConstructed)
}

func (c LoadRequestsCommand) Warehouse() roadgraph.IntersectionID {
	return c.warehouse
}

func (c LoadRequestsCommand) Deliveries() []roadgraph.IntersectionID {
	return slices.Clone(c.deliveries)
}

type LoadRequestsCommandHandler struct {
	planner RoundPlanner
}

func NewLoadRequestsCommandHandler(planner RoundPlanner) LoadRequestsCommandHandler {
	return LoadRequestsCommandHandler{planner: planner}
}

// Handle loads the requests all-or-nothing.
func (h LoadRequestsCommandHandler) Handle(_ context.Context, cmd LoadRequestsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.planner.LoadRequests(cmd.Warehouse(), cmd.Deliveries())
}
