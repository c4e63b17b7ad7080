package tsp

import "sort"

// Strategy is the pluggable policy of the search skeleton.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string
	// LowerBound never overestimates the cost still needed to leave current,
	// visit every node of unvisited and return to 0.
	LowerBound(m *Matrix, current int, unvisited []int) float64
	// Order returns the candidates to branch on from current, in exploration order.
	// It must not retain or modify unvisited.
	Order(m *Matrix, current int, unvisited []int) []int
	// Accept filters the extension of the committed path by the edge (last, next).
	Accept(m *Matrix, path []int, next int) bool
}

// Baseline is the trivial strategy: no bound, index order, every extension accepted.
type Baseline struct{}

func (Baseline) Name() string { return "baseline" }

func (Baseline) LowerBound(*Matrix, int, []int) float64 { return 0 }

func (Baseline) Order(_ *Matrix, _ int, unvisited []int) []int {
	out := make([]int, len(unvisited))
	copy(out, unvisited)
	sort.Ints(out)
	return out
}

func (Baseline) Accept(*Matrix, []int, int) bool { return true }

// Heuristic bounds with minimum outgoing edges, explores nearest-first and
// rejects extensions that cross a committed edge.
type Heuristic struct{}

func (Heuristic) Name() string { return "heuristic" }

// LowerBound: every remaining node, current included, still needs one outgoing
// edge. current leaves to some unvisited node; each unvisited node leaves to
// another unvisited node or to 0.
func (Heuristic) LowerBound(m *Matrix, current int, unvisited []int) float64 {
	if len(unvisited) == 0 {
		return m.At(current, 0)
	}

	bound := NoEdge
	for _, u := range unvisited {
		if c := m.At(current, u); c < bound {
			bound = c
		}
	}
	for _, u := range unvisited {
		best := m.At(u, 0)
		for _, v := range unvisited {
			if v != u && m.At(u, v) < best {
				best = m.At(u, v)
			}
		}
		bound += best
	}
	return bound
}

// Order sorts candidates by ascending cost from current, index as tiebreak.
func (Heuristic) Order(m *Matrix, current int, unvisited []int) []int {
	out := make([]int, len(unvisited))
	copy(out, unvisited)
	sort.Slice(out, func(i, j int) bool {
		ci, cj := m.At(current, out[i]), m.At(current, out[j])
		if ci == cj {
			return out[i] < out[j]
		}
		return ci < cj
	})
	return out
}

// Accept rejects (last, next) when some committed, non-adjacent edge (a, b)
// satisfies cost(a,b)+cost(last,next) > cost(a,last)+cost(b,next), i.e. when
// reversing the stretch b..last would be strictly shorter on a symmetric matrix.
// This is a domain heuristic; on asymmetric matrices the reversed stretch can
// cost more and the optimum may be rejected.
func (Heuristic) Accept(m *Matrix, path []int, next int) bool {
	if len(path) < 3 {
		return true
	}
	last := path[len(path)-1]
	step := m.At(last, next)
	for i := 0; i+2 < len(path); i++ {
		a, b := path[i], path[i+1]
		if m.At(a, b)+step > m.At(a, last)+m.At(b, next) {
			return false
		}
	}
	return true
}
