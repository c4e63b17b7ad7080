// Package queries contains read operations: the live round held by the planner
// and the round snapshots saved in the database. Queries return read models
// shaped for the HTTP layer and never expose domain aggregates.
package queries

import (
	"context"
	"errors"
	"time"

	"routeplanner/internal/core/application/planner"
	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/domain/model/tour"
	"routeplanner/internal/pkg/guard"
)

var ErrGetCurrentRoundQueryIsNotConstructed = errors.New(
	"GetCurrentRoundQuery must be created via NewGetCurrentRoundQuery constructor",
)

// GetCurrentRoundQuery reads the round currently held by the planner.
//
// Example:
//
//	handler := NewGetCurrentRoundQueryHandler(p)
//	round, err := handler.Handle(ctx, NewGetCurrentRoundQuery())
//	if err != nil {
//	    return err
//	}
//	for _, c := range round.Couriers {
//	    fmt.Printf("%s: %v (%.0f m)\n", c.CourierName, c.Sequence, c.Cost)
//	}
type GetCurrentRoundQuery struct {
	guard guard.ConstructorGuard
}

func NewGetCurrentRoundQuery() GetCurrentRoundQuery {
	return GetCurrentRoundQuery{guard: guard.NewConstructorGuard()}
}

func (q GetCurrentRoundQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentRoundQueryIsNotConstructed)
}

// GetCurrentRoundQueryResponse is the read model of the whole round.
type GetCurrentRoundQueryResponse struct {
	Warehouse roadgraph.IntersectionID
	Requests  []RequestResponse
	Couriers  []CourierTourResponse
	CanUndo   bool
	CanRedo   bool
}

type RequestResponse struct {
	ID        kernel.UUID
	Address   roadgraph.IntersectionID
	Status    string
	CourierID *kernel.UUID
}

// CourierTourResponse describes one courier. Assigned is false, and the tour
// fields are empty, until a round has been computed for it.
type CourierTourResponse struct {
	Index       int
	CourierID   kernel.UUID
	CourierName string
	Assigned    bool
	Sequence    []roadgraph.IntersectionID
	Stops       []StopResponse
	// Route lists every intersection driven through, for drawing the tour on a map.
	Route   []roadgraph.IntersectionID
	Cost    float64
	Optimal bool
}

type StopResponse struct {
	Intersection roadgraph.IntersectionID
	Arrival      time.Time
	Departure    time.Time
}

// SnapshotSource provides the consistent view of the round.
type SnapshotSource interface {
	Snapshot() planner.Snapshot
}

type GetCurrentRoundQueryHandler struct {
	source SnapshotSource
}

func NewGetCurrentRoundQueryHandler(source SnapshotSource) GetCurrentRoundQueryHandler {
	return GetCurrentRoundQueryHandler{source: source}
}

func (h GetCurrentRoundQueryHandler) Handle(
	_ context.Context,
	query GetCurrentRoundQuery,
) (GetCurrentRoundQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCurrentRoundQueryResponse{}, err
	}

	snapshot := h.source.Snapshot()
	response := GetCurrentRoundQueryResponse{
		Warehouse: snapshot.Warehouse,
		Requests:  make([]RequestResponse, 0, len(snapshot.Requests)),
		Couriers:  make([]CourierTourResponse, 0, len(snapshot.Tours)),
		CanUndo:   snapshot.CanUndo,
		CanRedo:   snapshot.CanRedo,
	}

	for _, r := range snapshot.Requests {
		response.Requests = append(response.Requests, RequestResponse{
			ID:        r.ID(),
			Address:   r.Address(),
			Status:    r.Status().String(),
			CourierID: r.Courier(),
		})
	}

	for _, ct := range snapshot.Tours {
		response.Couriers = append(response.Couriers, courierTourResponse(ct))
	}

	return response, nil
}

func courierTourResponse(ct planner.CourierTour) CourierTourResponse {
	out := CourierTourResponse{
		Index:       ct.Index,
		CourierID:   ct.Courier.ID(),
		CourierName: ct.Courier.Name(),
	}
	if ct.Tour == nil {
		return out
	}

	out.Assigned = true
	out.Sequence = ct.Tour.Sequence()
	out.Stops = stopsOf(ct.Tour)
	out.Route = routeOf(ct.Tour)
	out.Cost = ct.Tour.Cost()
	out.Optimal = ct.Tour.Optimal()

	return out
}

func stopsOf(t *tour.Tour) []StopResponse {
	var out []StopResponse
	for _, s := range t.Stops() {
		out = append(out, StopResponse{
			Intersection: s.Intersection,
			Arrival:      s.Arrival,
			Departure:    s.Departure,
		})
	}
	return out
}

// routeOf joins the leg paths, dropping the intersection each leg shares with the previous one.
func routeOf(t *tour.Tour) []roadgraph.IntersectionID {
	var out []roadgraph.IntersectionID
	for i, leg := range t.Legs() {
		ids := leg.Path.Intersections
		if i > 0 && len(ids) > 0 {
			ids = ids[1:]
		}
		out = append(out, ids...)
	}
	return out
}
