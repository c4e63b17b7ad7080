package planner

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"routeplanner/internal/core/domain/model/courier"
	"routeplanner/internal/core/domain/model/delivery"
	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/domain/model/tour"
	"routeplanner/internal/core/domain/services"
	"routeplanner/internal/core/domain/services/cluster"
	"routeplanner/internal/core/domain/services/tsp"
	"routeplanner/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

var (
	ErrRoadGraphNotLoaded = errs.NewInvalidOperationError("plan", "road graph is not loaded")
	ErrWarehouseNotSet    = errs.NewInvalidOperationError("plan", "warehouse is not set")
	ErrNoCouriers         = errs.NewInvalidOperationError("plan", "there are no couriers")
	ErrRoundNotComputed   = errs.NewInvalidOperationError("edit stop", "courier has no computed tour")
	ErrNothingToUndo      = errs.NewInvalidOperationError("undo", "history is empty")
	ErrNothingToRedo      = errs.NewInvalidOperationError("redo", "nothing was undone")
)

// Mode is the stop-to-courier assignment of the last full compute.
type Mode int

const (
	// Naive splits the request list in order, ignoring geography.
	Naive Mode = iota
	// Optimized partitions requests with K-means on their coordinates.
	Optimized
)

func (m Mode) String() string {
	if m == Optimized {
		return "optimized"
	}
	return "naive"
}

// Options configure a Planner. Zero fields get defaults in New.
type Options struct {
	// Solver configures every per-courier search.
	Solver tsp.Options
	// Schedule anchors arrival times.
	Schedule services.Schedule
	// CourierSpeed is the speed of couriers created by Initialize, in km/h.
	CourierSpeed float64
	// Workers bounds parallel per-courier solves; 0 means one per courier.
	Workers int
	Logger  *slog.Logger
}

// CourierTour pairs a courier with its current tour; Tour is nil while unassigned.
type CourierTour struct {
	Index   int
	Courier *courier.Courier
	Tour    *tour.Tour
}

// Snapshot is a consistent, read-only view of the round.
type Snapshot struct {
	Warehouse roadgraph.IntersectionID
	Requests  []*delivery.Request
	Tours     []CourierTour
	CanUndo   bool
	CanRedo   bool
}

// Planner owns the round state. All methods are safe for concurrent use.
//
// Example:
//
//	p := planner.New(planner.Options{})
//	_ = p.LoadRoadGraph(intersections, segments)
//	_ = p.Initialize(3, nil)
//	_ = p.LoadRequests("W", []roadgraph.IntersectionID{"A", "B", "C"})
//	_ = p.ComputeRoundOptimized(ctx)
//	_ = p.AddDeliveryPoint(ctx, 0, "D")
//	_ = p.Undo(ctx)
type Planner struct {
	mu       sync.Mutex
	opts     Options
	logger   *slog.Logger
	graph    *roadgraph.Graph
	couriers []*courier.Courier
	state    round
	history  History
}

// New creates an empty planner with no road graph and no couriers.
func New(opts Options) *Planner {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Solver.Logger == nil {
		opts.Solver.Logger = opts.Logger
	}
	if opts.Solver.TimeLimit == 0 {
		opts.Solver.TimeLimit = tsp.DefaultTimeLimit
	}
	if opts.Solver.Strategy == nil {
		opts.Solver.Strategy = tsp.Heuristic{}
	}
	if opts.CourierSpeed <= 0 {
		opts.CourierSpeed = courier.DefaultSpeed
	}
	if opts.Schedule.Start.IsZero() {
		opts.Schedule.Start = services.DayStart(time.Now(), 8, 0)
	}
	if opts.Schedule.Dwell == 0 {
		opts.Schedule.Dwell = services.DefaultDwell
	}

	return &Planner{
		opts:   opts,
		logger: opts.Logger.With("component", "Planner"),
	}
}

// Initialize replaces the fleet with courierCount fresh couriers and clears every
// tour and the history. A non-nil graph different from the current one also
// resets the warehouse and the request list, since their ids may no longer exist.
func (p *Planner) Initialize(courierCount int, graph *roadgraph.Graph) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	fleet, err := courier.NewFleet(courierCount, p.opts.CourierSpeed)
	if err != nil {
		return err
	}

	if graph != nil && graph != p.graph {
		p.graph = graph
		p.state.warehouse = ""
		p.state.requests = nil
	}
	p.couriers = fleet
	p.state.routers = make([]*services.CourierRouter, courierCount)
	p.history.Reset()

	p.logger.Info("round initialized", "couriers", courierCount, "intersections", p.graphLen())
	return nil
}

// LoadRoadGraph builds a graph from parsed map data and resets the round on it,
// keeping the current number of couriers.
func (p *Planner) LoadRoadGraph(intersections []roadgraph.Intersection, segments []roadgraph.Segment) error {
	g, err := roadgraph.NewGraph(intersections, segments)
	if err != nil {
		return err
	}

	p.mu.Lock()
	count := len(p.couriers)
	p.mu.Unlock()

	return p.Initialize(count, g)
}

// Graph returns the current road graph, or nil.
func (p *Planner) Graph() *roadgraph.Graph {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.graph
}

// LoadRequests replaces warehouse and request list at once. Every id is checked
// against the road graph first; on any error nothing changes.
func (p *Planner) LoadRequests(warehouse roadgraph.IntersectionID, deliveries []roadgraph.IntersectionID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.graph == nil {
		return ErrRoadGraphNotLoaded
	}
	if _, err := p.graph.Index(warehouse); err != nil {
		return fmt.Errorf("warehouse: %w", err)
	}

	requests := make([]*delivery.Request, 0, len(deliveries))
	seen := map[roadgraph.IntersectionID]struct{}{warehouse: {}}
	for i, id := range deliveries {
		if _, err := p.graph.Index(id); err != nil {
			return fmt.Errorf("delivery %d: %w", i, err)
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("delivery address",
				fmt.Errorf("intersection %s is requested twice or is the warehouse", id))
		}
		seen[id] = struct{}{}

		r, err := delivery.NewRequest(kernel.NewUUID(), id)
		if err != nil {
			return err
		}
		requests = append(requests, r)
	}

	p.state.warehouse = warehouse
	p.state.requests = requests
	p.state.routers = make([]*services.CourierRouter, len(p.couriers))
	p.history.Reset()

	p.logger.Info("requests loaded", "warehouse", warehouse, "deliveries", len(requests))
	return nil
}

// ComputeRound assigns requests to couriers in list order, then solves every courier.
func (p *Planner) ComputeRound(ctx context.Context) error {
	return p.compute(ctx, Naive)
}

// ComputeRoundOptimized assigns requests by K-means on their coordinates, then
// solves every courier.
func (p *Planner) ComputeRoundOptimized(ctx context.Context) error {
	return p.compute(ctx, Optimized)
}

func (p *Planner) compute(ctx context.Context, mode Mode) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ready(); err != nil {
		return err
	}

	groups, err := p.partition(mode)
	if err != nil {
		return err
	}

	started := time.Now()
	routers, err := p.solveAll(ctx, groups)
	if err != nil {
		return err
	}

	p.history.Execute(&p.state, &routersEdit{
		name:   "compute " + mode.String() + " round",
		before: slices.Clone(p.state.routers),
		after:  routers,
	})

	p.logger.Info("round computed",
		"mode", mode.String(),
		"couriers", len(routers),
		"deliveries", len(p.state.requests),
		"elapsed", time.Since(started))
	return nil
}

// partition returns, per courier, the delivery ids it serves in list order.
func (p *Planner) partition(mode Mode) ([][]roadgraph.IntersectionID, error) {
	addresses := make([]roadgraph.IntersectionID, len(p.state.requests))
	for i, r := range p.state.requests {
		addresses[i] = r.Address()
	}

	if mode == Naive {
		return services.SplitEvenly(addresses, len(p.couriers))
	}

	points, err := p.project(addresses)
	if err != nil {
		return nil, err
	}
	indexGroups, err := cluster.Assign(points, len(p.couriers))
	if err != nil {
		return nil, err
	}

	groups := make([][]roadgraph.IntersectionID, len(indexGroups))
	for c, idx := range indexGroups {
		groups[c] = make([]roadgraph.IntersectionID, len(idx))
		for k, i := range idx {
			groups[c][k] = addresses[i]
		}
	}
	return groups, nil
}

// project maps intersections onto an equirectangular plane centered on the
// warehouse latitude.
func (p *Planner) project(ids []roadgraph.IntersectionID) ([]cluster.Point, error) {
	wh, err := p.graph.Intersection(p.state.warehouse)
	if err != nil {
		return nil, err
	}
	scale := math.Cos(wh.Location().Latitude() * math.Pi / 180)

	points := make([]cluster.Point, len(ids))
	for i, id := range ids {
		in, err := p.graph.Intersection(id)
		if err != nil {
			return nil, err
		}
		points[i] = cluster.Point{X: in.Location().Longitude() * scale, Y: in.Location().Latitude()}
	}
	return points, nil
}

// solveAll builds one router per courier. Couriers are independent once
// partitioned, so their solves run in parallel against the shared graph.
func (p *Planner) solveAll(ctx context.Context, groups [][]roadgraph.IntersectionID) ([]*services.CourierRouter, error) {
	routers := make([]*services.CourierRouter, len(p.couriers))

	g, gctx := errgroup.WithContext(ctx)
	if p.opts.Workers > 0 {
		g.SetLimit(p.opts.Workers)
	}
	for i, c := range p.couriers {
		g.Go(func() error {
			r, err := services.NewCourierRouter(gctx, p.graph, c, p.state.warehouse, groups[i], p.opts.Solver, p.opts.Schedule)
			if err != nil {
				return fmt.Errorf("courier %d (%s): %w", i, c.Name(), err)
			}
			routers[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return routers, nil
}

// AddDeliveryPoint adds a new request at id to one courier's solved tour and
// re-solves only that courier.
func (p *Planner) AddDeliveryPoint(ctx context.Context, courierIndex int, id roadgraph.IntersectionID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	before, err := p.solvedRouter(courierIndex)
	if err != nil {
		return err
	}
	if _, err := p.graph.Index(id); err != nil {
		return err
	}
	if id == p.state.warehouse || p.requestPosition(id) >= 0 {
		return errs.NewInvalidOperationError("add stop",
			fmt.Sprintf("intersection %s is already requested or is the warehouse", id))
	}

	request, err := delivery.NewRequest(kernel.NewUUID(), id)
	if err != nil {
		return err
	}
	after, err := before.WithStop(ctx, id)
	if err != nil {
		return fmt.Errorf("courier %d: %w", courierIndex, err)
	}

	p.history.Execute(&p.state, &addStopEdit{
		courier:  courierIndex,
		request:  request,
		position: len(p.state.requests),
		before:   before,
		after:    after,
	})

	p.logger.Info("stop added", "courier", courierIndex, "intersection", id, "cost", after.Tour().Cost())
	return nil
}

// RemoveDeliveryPoint removes the request at id from one courier's tour and
// re-solves only that courier.
func (p *Planner) RemoveDeliveryPoint(ctx context.Context, courierIndex int, id roadgraph.IntersectionID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	before, err := p.solvedRouter(courierIndex)
	if err != nil {
		return err
	}
	position := p.requestPosition(id)
	if position < 0 || !before.Has(id) {
		return errs.NewInvalidOperationError("remove stop",
			fmt.Sprintf("intersection %s is not a stop of courier %d", id, courierIndex))
	}

	after, err := before.WithoutStop(ctx, id)
	if err != nil {
		return fmt.Errorf("courier %d: %w", courierIndex, err)
	}

	p.history.Execute(&p.state, &removeStopEdit{
		courier:  courierIndex,
		request:  p.state.requests[position],
		position: position,
		before:   before,
		after:    after,
	})

	p.logger.Info("stop removed", "courier", courierIndex, "intersection", id, "cost", after.Tour().Cost())
	return nil
}

// SetWarehouse moves the warehouse to id. Existing tours are dropped; undo brings
// them back.
func (p *Planner) SetWarehouse(_ context.Context, id roadgraph.IntersectionID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.graph == nil {
		return ErrRoadGraphNotLoaded
	}
	if _, err := p.graph.Index(id); err != nil {
		return err
	}
	if p.requestPosition(id) >= 0 {
		return errs.NewInvalidOperationError("set warehouse",
			fmt.Sprintf("intersection %s is a delivery address", id))
	}
	if id == p.state.warehouse {
		return nil
	}

	p.history.Execute(&p.state, &warehouseEdit{
		previous: p.state.warehouse,
		next:     id,
		routers:  slices.Clone(p.state.routers),
	})
	return nil
}

// ClearWarehouse unsets the warehouse; no round can be computed until a new one is set.
func (p *Planner) ClearWarehouse(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.warehouse == "" {
		return nil
	}

	p.history.Execute(&p.state, &warehouseEdit{
		previous: p.state.warehouse,
		next:     "",
		routers:  slices.Clone(p.state.routers),
	})
	return nil
}

// RefineTimedOut re-solves every courier whose tour was cut off by the time budget,
// this time with budget. A tour is replaced only when the new one is cheaper, or
// proven optimal at no extra cost. It returns how many tours were replaced.
// Replacing is one undoable edit.
func (p *Planner) RefineTimedOut(ctx context.Context, budget time.Duration) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	opts := p.opts.Solver
	opts.TimeLimit = budget

	refined := slices.Clone(p.state.routers)
	replaced := 0
	for i, r := range refined {
		if r == nil || r.Tour().Optimal() {
			continue
		}
		next, err := r.Refine(ctx, opts)
		if err != nil {
			return 0, fmt.Errorf("courier %d: %w", i, err)
		}
		if improves(next.Tour(), r.Tour()) {
			refined[i] = next
			replaced++
		}
	}
	if replaced == 0 {
		return 0, nil
	}

	p.history.Execute(&p.state, &routersEdit{
		name:   "refine time-limited tours",
		before: slices.Clone(p.state.routers),
		after:  refined,
	})

	p.logger.Info("tours refined", "replaced", replaced, "budget", budget)
	return replaced, nil
}

func improves(next, old *tour.Tour) bool {
	if next.Cost() < old.Cost() {
		return true
	}
	return next.Optimal() && next.Cost() <= old.Cost()
}

// Undo reverts the latest edit.
func (p *Planner) Undo(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.history.Undo(&p.state)
	if !ok {
		return ErrNothingToUndo
	}
	p.logger.Info("edit undone", "edit", e.Name())
	return nil
}

// Redo re-applies the latest undone edit.
func (p *Planner) Redo(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.history.Redo(&p.state)
	if !ok {
		return ErrNothingToRedo
	}
	p.logger.Info("edit redone", "edit", e.Name())
	return nil
}

// Tours returns one entry per courier, in courier order.
func (p *Planner) Tours() []CourierTour {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tours()
}

// Snapshot returns the whole round. Requests carry the courier they are assigned to.
func (p *Planner) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Snapshot{
		Warehouse: p.state.warehouse,
		Requests:  p.assignedRequests(),
		Tours:     p.tours(),
		CanUndo:   p.history.CanUndo(),
		CanRedo:   p.history.CanRedo(),
	}
}

func (p *Planner) tours() []CourierTour {
	out := make([]CourierTour, len(p.couriers))
	for i, c := range p.couriers {
		out[i] = CourierTour{Index: i, Courier: c}
		if r := p.state.routers[i]; r != nil {
			out[i].Tour = r.Tour()
		}
	}
	return out
}

// assignedRequests copies the request list, assigning each copy to the courier
// whose router serves it. Stored requests are never mutated, so edits can share them.
func (p *Planner) assignedRequests() []*delivery.Request {
	out := make([]*delivery.Request, 0, len(p.state.requests))
	for _, r := range p.state.requests {
		cp, err := delivery.NewRequest(r.ID(), r.Address())
		if err != nil {
			continue
		}
		for _, router := range p.state.routers {
			if router != nil && router.Has(r.Address()) {
				_ = cp.Assign(router.Courier().ID())
				break
			}
		}
		out = append(out, cp)
	}
	return out
}

func (p *Planner) ready() error {
	switch {
	case p.graph == nil:
		return ErrRoadGraphNotLoaded
	case p.state.warehouse == "":
		return ErrWarehouseNotSet
	case len(p.couriers) == 0:
		return ErrNoCouriers
	}
	return nil
}

func (p *Planner) solvedRouter(courierIndex int) (*services.CourierRouter, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	if courierIndex < 0 || courierIndex >= len(p.couriers) {
		return nil, errs.NewValueIsOutOfRangeError("courier index", courierIndex, 0, len(p.couriers)-1)
	}
	r := p.state.routers[courierIndex]
	if r == nil {
		return nil, ErrRoundNotComputed
	}
	return r, nil
}

func (p *Planner) requestPosition(id roadgraph.IntersectionID) int {
	return slices.IndexFunc(p.state.requests, func(r *delivery.Request) bool {
		return r.Address() == id
	})
}

func (p *Planner) graphLen() int {
	if p.graph == nil {
		return 0
	}
	return p.graph.Len()
}
