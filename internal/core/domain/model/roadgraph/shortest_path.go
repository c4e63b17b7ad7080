package roadgraph

import (
	"container/heap"
	"math"
)

// Path is a road-level route between two intersections, used for map rendering.
type Path struct {
	// Intersections lists every intersection passed, both endpoints included.
	Intersections []IntersectionID
	// Segments are the traversed road segments; len(Segments) == len(Intersections)-1.
	Segments []Segment
	// Length is the sum of segment lengths in meters.
	Length float64
}

// ShortestDistance returns the length of the shortest directed path.
// reachable is false when no path exists; the distance is then 0 and carries no meaning.
// Unknown ids are reported as lookup errors, never as unreachable.
func (g *Graph) ShortestDistance(from, to IntersectionID) (distance float64, reachable bool, err error) {
	src, dst, err := g.pair(from, to)
	if err != nil {
		return 0, false, err
	}

	s := g.dijkstra(src, []int{dst})
	if math.IsInf(s.dist[dst], 1) {
		return 0, false, nil
	}
	return s.dist[dst], true, nil
}

// ShortestPath returns the ordered intersection ids of the shortest path,
// or an empty slice when to is unreachable from from.
func (g *Graph) ShortestPath(from, to IntersectionID) ([]IntersectionID, error) {
	p, ok, err := g.Route(from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []IntersectionID{}, nil
	}
	return p.Intersections, nil
}

// Route returns the shortest path with its segments. ok is false when unreachable.
func (g *Graph) Route(from, to IntersectionID) (Path, bool, error) {
	src, dst, err := g.pair(from, to)
	if err != nil {
		return Path{}, false, err
	}

	s := g.dijkstra(src, []int{dst})
	if math.IsInf(s.dist[dst], 1) {
		return Path{}, false, nil
	}

	var reversed []int
	for v := dst; v != src; v = g.segmentOrigin(s.prevSegment[v]) {
		reversed = append(reversed, s.prevSegment[v])
	}

	p := Path{
		Intersections: make([]IntersectionID, 0, len(reversed)+1),
		Segments:      make([]Segment, 0, len(reversed)),
		Length:        s.dist[dst],
	}
	p.Intersections = append(p.Intersections, from)
	for i := len(reversed) - 1; i >= 0; i-- {
		seg := g.segments[reversed[i]]
		p.Segments = append(p.Segments, seg)
		p.Intersections = append(p.Intersections, seg.Destination())
	}

	return p, true, nil
}

// DistancesFrom runs a single-source search that stops once every target is settled.
// Unreachable targets are absent from the returned map.
func (g *Graph) DistancesFrom(from IntersectionID, targets []IntersectionID) (map[IntersectionID]float64, error) {
	src, err := g.Index(from)
	if err != nil {
		return nil, err
	}
	idx := make([]int, 0, len(targets))
	for _, t := range targets {
		i, tErr := g.Index(t)
		if tErr != nil {
			return nil, tErr
		}
		idx = append(idx, i)
	}

	s := g.dijkstra(src, idx)
	out := make(map[IntersectionID]float64, len(targets))
	for _, i := range idx {
		if !math.IsInf(s.dist[i], 1) {
			out[g.ID(i)] = s.dist[i]
		}
	}
	return out, nil
}

func (g *Graph) pair(from, to IntersectionID) (int, int, error) {
	src, err := g.Index(from)
	if err != nil {
		return 0, 0, err
	}
	dst, err := g.Index(to)
	if err != nil {
		return 0, 0, err
	}
	return src, dst, nil
}

func (g *Graph) segmentOrigin(segment int) int {
	return g.index[g.segments[segment].Origin()]
}

// searchState is the per-query Dijkstra state; the graph itself is never mutated.
type searchState struct {
	dist        []float64
	prevSegment []int
	settled     []bool
}

// dijkstra settles vertices in distance order from src and returns as soon as all
// targets are settled. Stale heap entries are skipped (lazy decrease-key).
func (g *Graph) dijkstra(src int, targets []int) *searchState {
	n := len(g.intersections)
	s := &searchState{
		dist:        make([]float64, n),
		prevSegment: make([]int, n),
		settled:     make([]bool, n),
	}
	for i := range s.dist {
		s.dist[i] = math.Inf(1)
		s.prevSegment[i] = -1
	}
	s.dist[src] = 0

	pending := make(map[int]struct{}, len(targets))
	for _, t := range targets {
		pending[t] = struct{}{}
	}

	pq := &frontier{{node: src, dist: 0}}
	for pq.Len() > 0 && len(pending) > 0 {
		cur := heap.Pop(pq).(frontierItem)
		if s.settled[cur.node] || cur.dist > s.dist[cur.node] {
			continue
		}
		s.settled[cur.node] = true
		delete(pending, cur.node)

		for _, a := range g.out[cur.node] {
			nd := cur.dist + g.segments[a.segment].Length()
			if nd < s.dist[a.head] {
				s.dist[a.head] = nd
				s.prevSegment[a.head] = a.segment
				heap.Push(pq, frontierItem{node: a.head, dist: nd})
			}
		}
	}

	return s
}

type frontierItem struct {
	node int
	dist float64
}

// frontier is a min-heap on dist implementing heap.Interface.
type frontier []frontierItem

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].dist < f[j].dist }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(frontierItem))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}
