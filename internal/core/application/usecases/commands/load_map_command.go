package commands

import (
	"context"
	"errors"
	"slices"

	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/pkg/guard"
)

var (
	ErrLoadMapCommandIsNotConstructed = errors.New(
		"LoadMapCommand must be created via NewLoadMapCommand constructor",
	)
	ErrMapIsEmpty = errors.New("map must contain at least one intersection")
)

// LoadMapCommand replaces the road graph. The warehouse, the request list and
// every tour are dropped; the number of couriers is kept.
//
// Example:
//
//	parsed, err := mapxml.ParseMap(file)
//	if err != nil {
//	    return err
//	}
//	cmd, err := NewLoadMapCommand(parsed.Intersections, parsed.Segments)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type LoadMapCommand struct {
	intersections []roadgraph.Intersection
	segments      []roadgraph.Segment

	guard guard.ConstructorGuard
}

func NewLoadMapCommand(intersections []roadgraph.Intersection, segments []roadgraph.Segment) (LoadMapCommand, error) {
	if len(intersections) == 0 {
		return LoadMapCommand{}, ErrMapIsEmpty
	}

	return LoadMapCommand{
		intersections: slices.Clone(intersections),
		segments:      slices.Clone(segments),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c LoadMapCommand) Validate() error {
	return c.guard.Validate(ErrLoadMapCommandIsNotConstructed)
}

func (c LoadMapCommand) Intersections() []roadgraph.Intersection {
	return slices.Clone(c.intersections)
}

func (c LoadMapCommand) Segments() []roadgraph.Segment {
	return slices.Clone(c.segments)
}

type LoadMapCommandHandler struct {
	planner RoundPlanner
}

func NewLoadMapCommandHandler(planner RoundPlanner) LoadMapCommandHandler {
	return LoadMapCommandHandler{planner: planner}
}

// Handle builds the graph; a malformed map leaves the previous graph in place.
func (h LoadMapCommandHandler) Handle(_ context.Context, cmd LoadMapCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.planner.LoadRoadGraph(cmd.Intersections(), cmd.Segments())
}
