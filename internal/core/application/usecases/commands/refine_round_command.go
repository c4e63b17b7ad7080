package commands

import (
	"context"
	"errors"
	"time"

	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/ports"
	"routeplanner/internal/pkg/errs"
	"routeplanner/internal/pkg/guard"
)

var ErrRefineRoundCommandIsNotConstructed = errors.New(
	"RefineRoundCommand must be created via NewRefineRoundCommand constructor",
)

// RefineRoundCommand re-solves the time-limited tours with a larger budget.
// When at least one tour improves, the new round is saved under roundID.
type RefineRoundCommand struct { //nolint:recvcheck //using for validation
	roundID kernel.UUID
	budget  time.Duration

	guard guard.ConstructorGuard
}

func NewRefineRoundCommand(roundID kernel.UUID, budget time.Duration) (RefineRoundCommand, error) {
	cmd := RefineRoundCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRoundID(roundID),
		cmd.setBudget(budget),
	); err != nil {
		return RefineRoundCommand{}, err
	}

	return cmd, nil
}

func (c RefineRoundCommand) Validate() error {
	return c.guard.Validate(ErrRefineRoundCommandIsNotConstructed)
}

func (c RefineRoundCommand) RoundID() kernel.UUID {
	return c.roundID
}

// Budget is the time limit of each re-solve.
func (c RefineRoundCommand) Budget() time.Duration {
	return c.budget
}

func (c *RefineRoundCommand) setRoundID(roundID kernel.UUID) error {
	if err := roundID.Validate(); err != nil {
		return err
	}

	c.roundID = roundID
	return nil
}

func (c *RefineRoundCommand) setBudget(budget time.Duration) error {
	if budget <= 0 {
		return errs.NewValueIsOutOfRangeError("budget", budget, time.Nanosecond, "unbounded")
	}

	c.budget = budget
	return nil
}

// RefineRoundCommandHandler drives RefineTimedOut and saves improved rounds.
type RefineRoundCommandHandler struct {
	planner  RoundPlanner
	recorder roundRecorder
}

func NewRefineRoundCommandHandler(
	planner RoundPlanner,
	uowFactory TourUoWFactory,
	publisher ports.TourPublisher,
) RefineRoundCommandHandler {
	return RefineRoundCommandHandler{
		planner:  planner,
		recorder: roundRecorder{uowFactory: uowFactory, publisher: publisher},
	}
}

// Handle returns how many tours were replaced. Nothing is saved when none was.
func (h RefineRoundCommandHandler) Handle(ctx context.Context, cmd RefineRoundCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	replaced, err := h.planner.RefineTimedOut(ctx, cmd.Budget())
	if err != nil {
		return 0, err
	}
	if replaced == 0 {
		return 0, nil
	}

	if err = h.recorder.record(ctx, cmd.RoundID(), h.planner.Tours()); err != nil {
		return replaced, err
	}

	return replaced, nil
}
