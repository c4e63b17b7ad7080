package commands

import (
	"errors"

	"routeplanner/internal/core/application/planner"
	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/pkg/errs"
	"routeplanner/internal/pkg/guard"
)

var ErrComputeRoundCommandIsNotConstructed = errors.New(
	"ComputeRoundCommand must be created via NewComputeRoundCommand constructor",
)

// ComputeRoundCommand asks for a full computation of every courier tour.
// The resulting tours are saved under roundID and published.
//
// Example:
//
//	roundID := kernel.NewUUID()
//	cmd, err := NewComputeRoundCommand(roundID, planner.Optimized)
//	if err != nil {
//	    return fmt.Errorf("invalid round: %w", err)
//	}
//
//	handler := NewComputeRoundCommandHandler(p, uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to compute round: %w", err)
//	}
type ComputeRoundCommand struct { //nolint:recvcheck //using for validation
	roundID kernel.UUID
	mode    planner.Mode

	guard guard.ConstructorGuard
}

// NewComputeRoundCommand creates a compute command.
// Returns an error if the round ID is invalid or the mode is unknown.
func NewComputeRoundCommand(roundID kernel.UUID, mode planner.Mode) (ComputeRoundCommand, error) {
	cmd := ComputeRoundCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRoundID(roundID),
		cmd.setMode(mode),
	); err != nil {
		return ComputeRoundCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ComputeRoundCommand) Validate() error {
	return c.guard.Validate(ErrComputeRoundCommandIsNotConstructed)
}

// RoundID identifies the saved snapshot of the computed tours.
func (c ComputeRoundCommand) RoundID() kernel.UUID {
	return c.roundID
}

func (c ComputeRoundCommand) Mode() planner.Mode {
	return c.mode
}

func (c *ComputeRoundCommand) setRoundID(roundID kernel.UUID) error {
	if err := roundID.Validate(); err != nil {
		return err
	}

	c.roundID = roundID
	return nil
}

func (c *ComputeRoundCommand) setMode(mode planner.Mode) error {
	if mode != planner.Naive && mode != planner.Optimized {
		return errs.NewValueIsInvalidError("mode")
	}

	c.mode = mode
	return nil
}
