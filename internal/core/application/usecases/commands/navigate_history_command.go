package commands

import (
	"context"
	"errors"

	"routeplanner/internal/pkg/guard"
)

var ErrNavigateHistoryCommandIsNotConstructed = errors.New(
	"NavigateHistoryCommand must be created via NewUndoCommand or NewRedoCommand constructor",
)

// NavigateHistoryCommand steps backward or forward through the edit history.
type NavigateHistoryCommand struct {
	redo bool

	guard guard.ConstructorGuard
}

func NewUndoCommand() NavigateHistoryCommand {
	return NavigateHistoryCommand{guard: guard.NewConstructorGuard()}
}

func NewRedoCommand() NavigateHistoryCommand {
	return NavigateHistoryCommand{redo: true, guard: guard.NewConstructorGuard()}
}

func (c NavigateHistoryCommand) Validate() error {
	return c.guard.Validate(ErrNavigateHistoryCommandIsNotConstructed)
}

func (c NavigateHistoryCommand) IsRedo() bool {
	return c.redo
}

type NavigateHistoryCommandHandler struct {
	planner RoundPlanner
}

func NewNavigateHistoryCommandHandler(planner RoundPlanner) NavigateHistoryCommandHandler {
	return NavigateHistoryCommandHandler{planner: planner}
}

// Handle returns planner.ErrNothingToUndo or planner.ErrNothingToRedo at the ends of the history.
func (h NavigateHistoryCommandHandler) Handle(ctx context.Context, cmd NavigateHistoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.IsRedo() {
		return h.planner.Redo(ctx)
	}
	return h.planner.Undo(ctx)
}
