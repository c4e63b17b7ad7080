package commands

import (
	"context"
	"errors"
	"math"

	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/pkg/errs"
	"routeplanner/internal/pkg/guard"
)

// StopChange selects whether a ChangeStopCommand inserts or deletes a delivery.
type StopChange int

const (
	AddStop StopChange = iota + 1
	RemoveStop
)

func (s StopChange) String() string {
	switch s {
	case AddStop:
		return "add stop"
	case RemoveStop:
		return "remove stop"
	default:
		return "unknown"
	}
}

var (
	ErrChangeStopCommandIsNotConstructed = errors.New(
		"ChangeStopCommand must be created via NewAddStopCommand or NewRemoveStopCommand constructor",
	)
	ErrIntersectionIsRequired = errs.NewValueIsRequiredError("intersection")
)

// ChangeStopCommand edits the tour of one courier: only that courier is re-solved.
//
// Example:
//
//	cmd, err := NewAddStopCommand(0, "26086130")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // the previous tours are untouched
//	}
type ChangeStopCommand struct { //nolint:recvcheck //using for validation
	change       StopChange
	courierIndex int
	intersection roadgraph.IntersectionID

	guard guard.ConstructorGuard
}

// NewAddStopCommand creates a command inserting a delivery at intersection into
// the tour of the courier at courierIndex.
func NewAddStopCommand(courierIndex int, intersection roadgraph.IntersectionID) (ChangeStopCommand, error) {
	return newChangeStopCommand(AddStop, courierIndex, intersection)
}

// NewRemoveStopCommand creates a command deleting the delivery at intersection
// from the tour of the courier at courierIndex.
func NewRemoveStopCommand(courierIndex int, intersection roadgraph.IntersectionID) (ChangeStopCommand, error) {
	return newChangeStopCommand(RemoveStop, courierIndex, intersection)
}

func newChangeStopCommand(
	change StopChange,
	courierIndex int,
	intersection roadgraph.IntersectionID,
) (ChangeStopCommand, error) {
	cmd := ChangeStopCommand{
		change: change,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierIndex(courierIndex),
		cmd.setIntersection(intersection),
	); err != nil {
		return ChangeStopCommand{}, err
	}

	return cmd, nil
}

func (c ChangeStopCommand) Validate() error {
	return c.guard.Validate(ErrChangeStopCommandIsNotConstructed)
}

func (c ChangeStopCommand) Change() StopChange {
	return c.change
}

func (c ChangeStopCommand) CourierIndex() int {
	return c.courierIndex
}

func (c ChangeStopCommand) Intersection() roadgraph.IntersectionID {
	return c.intersection
}

func (c *ChangeStopCommand) setCourierIndex(index int) error {
	if index < 0 {
		return errs.NewValueIsOutOfRangeError("courier index", index, 0, math.MaxInt)
	}

	c.courierIndex = index
	return nil
}

func (c *ChangeStopCommand) setIntersection(id roadgraph.IntersectionID) error {
	if id == "" {
		return ErrIntersectionIsRequired
	}

	c.intersection = id
	return nil
}

type ChangeStopCommandHandler struct {
	planner RoundPlanner
}

func NewChangeStopCommandHandler(planner RoundPlanner) ChangeStopCommandHandler {
	return ChangeStopCommandHandler{planner: planner}
}

func (h ChangeStopCommandHandler) Handle(ctx context.Context, cmd ChangeStopCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.Change() == RemoveStop {
		return h.planner.RemoveDeliveryPoint(ctx, cmd.CourierIndex(), cmd.Intersection())
	}
	return h.planner.AddDeliveryPoint(ctx, cmd.CourierIndex(), cmd.Intersection())
}
