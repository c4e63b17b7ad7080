package tsp

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// DefaultTimeLimit bounds a solve when Options leave TimeLimit unset.
const DefaultTimeLimit = 10 * time.Second

const (
	// NoTimeLimit lets a solve run until the search space is exhausted.
	NoTimeLimit time.Duration = math.MaxInt64
	// BudgetSpent stops a solve before it explores anything.
	BudgetSpent time.Duration = -1
)

// State of a Solver: Idle → Searching → {Optimal, TimedOut}.
type State int

const (
	Idle State = iota
	Searching
	Optimal
	TimedOut
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Searching:
		return "Searching"
	case Optimal:
		return "Optimal"
	case TimedOut:
		return "TimedOut"
	default:
		return "Unknown"
	}
}

// Options configure a Solver.
type Options struct {
	// TimeLimit is the wall-clock budget of one Solve. Zero means DefaultTimeLimit,
	// a negative value means the budget is already spent. See NoTimeLimit.
	TimeLimit time.Duration
	// Strategy defaults to Heuristic.
	Strategy Strategy
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultOptions returns the heuristic strategy with DefaultTimeLimit.
func DefaultOptions() Options {
	return Options{
		TimeLimit: DefaultTimeLimit,
		Strategy:  Heuristic{},
		Logger:    slog.Default(),
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.TimeLimit == 0 {
		o.TimeLimit = def.TimeLimit
	}
	if o.Strategy == nil {
		o.Strategy = def.Strategy
	}
	if o.Logger == nil {
		o.Logger = def.Logger
	}
	return o
}

// Result of one Solve.
type Result struct {
	// Path starts and ends at 0 and has length k+1. It is empty when the budget
	// ran out before any complete tour was found.
	Path []int
	// Cost is the total cost of Path, or NoEdge when Path is empty.
	Cost float64
	// Optimal is true when the search space was exhausted within budget.
	Optimal bool
	// Explored counts recursive steps.
	Explored int64
}

// Found reports whether Result carries a complete tour.
func (r Result) Found() bool {
	return len(r.Path) > 0
}

// Solver runs branch-and-bound searches. A Solver may be reused; each Solve starts
// from an empty incumbent. It is not safe for concurrent use.
type Solver struct {
	opts   Options
	state  State
	logger *slog.Logger
}

// NewSolver fills unset options with defaults.
//
// Example:
//
//	s := tsp.NewSolver(tsp.Options{TimeLimit: 2 * time.Second, Strategy: tsp.Heuristic{}})
//	res := s.Solve(ctx, m)
//	if !res.Optimal {
//	    // best effort tour
//	}
func NewSolver(opts Options) *Solver {
	opts = opts.withDefaults()
	return &Solver{
		opts:   opts,
		state:  Idle,
		logger: opts.Logger.With("component", "TourSolver", "strategy", opts.Strategy.Name()),
	}
}

// State returns the outcome of the last Solve, or Idle.
func (s *Solver) State() State {
	return s.state
}

// Solve searches the minimum-cost closed tour through every node of m starting at 0.
// Matrices of size k ≤ 1 yield the zero-cost tour [0, 0] without searching.
// Cancelling ctx ends the search like an exhausted budget.
func (s *Solver) Solve(ctx context.Context, m *Matrix) Result {
	k := m.Size()
	if k <= 1 {
		s.state = Optimal
		return Result{Path: []int{0, 0}, Cost: 0, Optimal: true}
	}

	s.state = Searching
	started := time.Now()
	sr := newSearch(ctx, m, s.opts.Strategy, started, s.opts.TimeLimit)

	sr.visited = append(sr.visited, 0)
	sr.branch(0, 0)

	res := Result{Cost: NoEdge, Optimal: !sr.expired, Explored: sr.explored}
	if sr.bestPath != nil {
		res.Path = append(sr.bestPath, 0)
		res.Cost = sr.bestCost
	}
	if res.Optimal {
		s.state = Optimal
	} else {
		s.state = TimedOut
	}

	s.logger.Debug("search finished",
		"nodes", k,
		"explored", sr.explored,
		"cost", res.Cost,
		"state", s.state.String(),
		"elapsed", time.Since(started))

	return res
}

// search is the arena of one Solve: fixed-capacity index arrays allocated once.
type search struct {
	ctx      context.Context
	m        *Matrix
	strategy Strategy
	started  time.Time
	budget   time.Duration

	// visited is the committed path, visited[0] == 0.
	visited []int
	// unvisited is the working set; pos[v] is v's slot in it, or -1.
	unvisited []int
	pos       []int

	bestPath []int
	bestCost float64
	expired  bool
	explored int64
}

func newSearch(ctx context.Context, m *Matrix, strategy Strategy, started time.Time, budget time.Duration) *search {
	k := m.Size()
	sr := &search{
		ctx:       ctx,
		m:         m,
		strategy:  strategy,
		started:   started,
		budget:    budget,
		visited:   make([]int, 0, k),
		unvisited: make([]int, 0, k-1),
		pos:       make([]int, k),
		bestCost:  math.Inf(1),
	}
	sr.pos[0] = -1
	for v := 1; v < k; v++ {
		sr.pos[v] = len(sr.unvisited)
		sr.unvisited = append(sr.unvisited, v)
	}
	return sr
}

// exhausted latches once the budget is spent or ctx is done.
func (sr *search) exhausted() bool {
	if sr.expired {
		return true
	}
	if sr.budget != NoTimeLimit && time.Since(sr.started) >= sr.budget {
		sr.expired = true
	} else if sr.ctx.Err() != nil {
		sr.expired = true
	}
	return sr.expired
}

func (sr *search) branch(current int, cost float64) {
	if sr.exhausted() {
		return
	}
	sr.explored++

	if cost >= sr.bestCost {
		return
	}

	if len(sr.unvisited) == 0 {
		total := cost + sr.m.At(current, 0)
		if total < sr.bestCost {
			sr.bestCost = total
			sr.bestPath = append(sr.bestPath[:0], sr.visited...)
		}
		return
	}

	if cost+sr.strategy.LowerBound(sr.m, current, sr.unvisited) >= sr.bestCost {
		return
	}

	for _, next := range sr.strategy.Order(sr.m, current, sr.unvisited) {
		if !sr.strategy.Accept(sr.m, sr.visited, next) {
			continue
		}
		sr.step(current, next, cost)
		if sr.expired {
			return
		}
	}
}

// step moves next from unvisited onto the path for the duration of one branch.
func (sr *search) step(current, next int, cost float64) {
	restore := sr.mark(next)
	defer restore()

	sr.branch(next, cost+sr.m.At(current, next))
}

// mark swaps v to the end of unvisited, truncates it and pushes v on visited.
// The returned guard undoes exactly that, leaving unvisited in its prior order.
func (sr *search) mark(v int) func() {
	i := sr.pos[v]
	last := len(sr.unvisited) - 1
	sr.swap(i, last)
	sr.unvisited = sr.unvisited[:last]
	sr.pos[v] = -1
	sr.visited = append(sr.visited, v)

	return func() {
		sr.visited = sr.visited[:len(sr.visited)-1]
		sr.unvisited = sr.unvisited[:last+1]
		sr.pos[v] = last
		sr.swap(i, last)
	}
}

func (sr *search) swap(i, j int) {
	a, b := sr.unvisited[i], sr.unvisited[j]
	sr.unvisited[i], sr.unvisited[j] = b, a
	sr.pos[a], sr.pos[b] = j, i
}
