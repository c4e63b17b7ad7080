package queries

import (
	"context"
	"errors"

	"routeplanner/internal/core/application/planner"
	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/pkg/guard"
)

var ErrFindNearestIntersectionQueryIsNotConstructed = errors.New(
	"FindNearestIntersectionQuery must be created via NewFindNearestIntersectionQuery constructor",
)

// FindNearestIntersectionQuery snaps a coordinate, typically a map click, to the
// closest intersection of the loaded road graph.
type FindNearestIntersectionQuery struct {
	location kernel.Location

	guard guard.ConstructorGuard
}

func NewFindNearestIntersectionQuery(lat, lon float64) (FindNearestIntersectionQuery, error) {
	location, err := kernel.NewLocation(lat, lon)
	if err != nil {
		return FindNearestIntersectionQuery{}, err
	}

	return FindNearestIntersectionQuery{location: location, guard: guard.NewConstructorGuard()}, nil
}

func (q FindNearestIntersectionQuery) Validate() error {
	return q.guard.Validate(ErrFindNearestIntersectionQueryIsNotConstructed)
}

func (q FindNearestIntersectionQuery) Location() kernel.Location {
	return q.location
}

type FindNearestIntersectionQueryResponse struct {
	ID        roadgraph.IntersectionID
	Latitude  float64
	Longitude float64
	// Distance is the straight-line distance from the queried point, in meters.
	Distance float64
}

// GraphSource provides the road graph currently loaded, or nil.
type GraphSource interface {
	Graph() *roadgraph.Graph
}

type FindNearestIntersectionQueryHandler struct {
	source GraphSource
}

func NewFindNearestIntersectionQueryHandler(source GraphSource) FindNearestIntersectionQueryHandler {
	return FindNearestIntersectionQueryHandler{source: source}
}

// Handle returns planner.ErrRoadGraphNotLoaded before any map was loaded.
func (h FindNearestIntersectionQueryHandler) Handle(
	_ context.Context,
	query FindNearestIntersectionQuery,
) (FindNearestIntersectionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return FindNearestIntersectionQueryResponse{}, err
	}

	graph := h.source.Graph()
	if graph == nil {
		return FindNearestIntersectionQueryResponse{}, planner.ErrRoadGraphNotLoaded
	}

	nearest, err := graph.Nearest(query.Location())
	if err != nil {
		return FindNearestIntersectionQueryResponse{}, err
	}

	distance, err := nearest.Location().DistanceTo(query.Location())
	if err != nil {
		return FindNearestIntersectionQueryResponse{}, err
	}

	return FindNearestIntersectionQueryResponse{
		ID:        nearest.ID(),
		Latitude:  nearest.Location().Latitude(),
		Longitude: nearest.Location().Longitude(),
		Distance:  distance,
	}, nil
}
