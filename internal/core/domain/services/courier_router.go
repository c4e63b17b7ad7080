package services

import (
	"context"
	"slices"

	"routeplanner/internal/core/domain/model/courier"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/domain/model/tour"
	"routeplanner/internal/core/domain/services/tsp"
	"routeplanner/internal/pkg/errs"
)

// CourierRouter is one courier's live solve: the stop list, its cost matrix and
// the solver configuration, plus the resulting tour.
//
// A CourierRouter never changes once built. WithStop, WithoutStop and Refine
// return a new router and leave the receiver untouched, so a caller swapping
// routers on success can never expose a half-applied edit.
//
// Example:
//
//	r, err := services.NewCourierRouter(ctx, graph, c, "W", []roadgraph.IntersectionID{"A", "B"}, solver, schedule)
//	r2, err := r.WithStop(ctx, "C") // one new row and column, one re-solve
type CourierRouter struct {
	network  RoadNetwork
	courier  *courier.Courier
	ids      []roadgraph.IntersectionID
	matrix   *tsp.Matrix
	solver   tsp.Options
	schedule Schedule
	result   tsp.Result
	tour     *tour.Tour
}

// NewCourierRouter builds the cost matrix over warehouse and stops and solves it.
//
// Returns:
//   - ErrObjectNotFound (wrapped) for an unknown intersection
//   - *errs.UnreachablePairError when two ids are not mutually reachable
//   - errs.ErrInvalidOperation for a duplicate stop or a stop at the warehouse
//
// A budget that runs out before any complete tour was found yields the stops in
// insertion order, flagged non-optimal.
func NewCourierRouter(
	ctx context.Context,
	network RoadNetwork,
	c *courier.Courier,
	warehouse roadgraph.IntersectionID,
	stops []roadgraph.IntersectionID,
	solver tsp.Options,
	schedule Schedule,
) (*CourierRouter, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ids := make([]roadgraph.IntersectionID, 0, len(stops)+1)
	ids = append(ids, warehouse)
	for _, s := range stops {
		if slices.Contains(ids, s) {
			return nil, duplicateStop(s)
		}
		ids = append(ids, s)
	}

	m, err := BuildCostMatrix(network, ids)
	if err != nil {
		return nil, err
	}

	r := &CourierRouter{
		network:  network,
		courier:  c,
		ids:      ids,
		matrix:   m,
		solver:   solver,
		schedule: schedule,
	}
	if err := r.solve(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// WithStop appends id to the stop set: the matrix grows by one row and one
// column and is re-solved.
func (r *CourierRouter) WithStop(ctx context.Context, id roadgraph.IntersectionID) (*CourierRouter, error) {
	if slices.Contains(r.ids, id) {
		return nil, duplicateStop(id)
	}

	out, in, err := costsAround(r.network, id, r.ids)
	if err != nil {
		return nil, err
	}
	m, err := r.matrix.WithAppended(out, in)
	if err != nil {
		return nil, err
	}

	next := r.derive(append(slices.Clone(r.ids), id), m)
	if err := next.solve(ctx); err != nil {
		return nil, err
	}
	return next, nil
}

// WithoutStop drops id from the stop set: its row and column are removed and the
// smaller matrix is re-solved.
func (r *CourierRouter) WithoutStop(ctx context.Context, id roadgraph.IntersectionID) (*CourierRouter, error) {
	pos := slices.Index(r.ids, id)
	if pos <= 0 {
		return nil, errs.NewInvalidOperationError("remove stop",
			"intersection "+string(id)+" is not a stop of courier "+r.courier.Name())
	}

	m, err := r.matrix.Without(pos)
	if err != nil {
		return nil, err
	}

	next := r.derive(slices.Delete(slices.Clone(r.ids), pos, pos+1), m)
	if err := next.solve(ctx); err != nil {
		return nil, err
	}
	return next, nil
}

// Refine re-solves the same matrix under another solver configuration.
func (r *CourierRouter) Refine(ctx context.Context, solver tsp.Options) (*CourierRouter, error) {
	next := r.derive(r.ids, r.matrix)
	next.solver = solver
	if err := next.solve(ctx); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *CourierRouter) Courier() *courier.Courier {
	return r.courier
}

func (r *CourierRouter) Tour() *tour.Tour {
	return r.tour
}

// Result returns the raw solver outcome over matrix indices.
func (r *CourierRouter) Result() tsp.Result {
	return r.result
}

func (r *CourierRouter) Warehouse() roadgraph.IntersectionID {
	return r.ids[0]
}

// Stops returns the delivery stops in insertion order, not visiting order.
func (r *CourierRouter) Stops() []roadgraph.IntersectionID {
	return slices.Clone(r.ids[1:])
}

// Has reports whether id is a delivery stop of this courier.
func (r *CourierRouter) Has(id roadgraph.IntersectionID) bool {
	return slices.Index(r.ids, id) > 0
}

func (r *CourierRouter) derive(ids []roadgraph.IntersectionID, m *tsp.Matrix) *CourierRouter {
	return &CourierRouter{
		network:  r.network,
		courier:  r.courier,
		ids:      ids,
		matrix:   m,
		solver:   r.solver,
		schedule: r.schedule,
	}
}

func (r *CourierRouter) solve(ctx context.Context) error {
	res := tsp.NewSolver(r.solver).Solve(ctx, r.matrix)
	if !res.Found() {
		res = insertionOrder(r.matrix)
	}

	order := make([]roadgraph.IntersectionID, len(res.Path))
	for i, idx := range res.Path {
		order[i] = r.ids[idx]
	}
	t, err := r.schedule.BuildTour(r.network, r.courier, order, res.Optimal)
	if err != nil {
		return err
	}

	r.result = res
	r.tour = t
	return nil
}

// insertionOrder is the tour 0, 1, ..., k-1, 0. Every pair of the matrix is
// reachable, so it is always feasible.
func insertionOrder(m *tsp.Matrix) tsp.Result {
	k := m.Size()
	res := tsp.Result{Path: make([]int, 0, k+1)}
	for i := 0; i < k; i++ {
		res.Path = append(res.Path, i)
	}
	res.Path = append(res.Path, 0)

	for i := 1; i < len(res.Path); i++ {
		res.Cost += m.At(res.Path[i-1], res.Path[i])
	}
	return res
}

func duplicateStop(id roadgraph.IntersectionID) error {
	return errs.NewInvalidOperationError("add stop", "intersection "+string(id)+" is already a stop or the warehouse")
}

func unreachable(from, to roadgraph.IntersectionID) error {
	return errs.NewUnreachablePairError(string(from), string(to))
}
