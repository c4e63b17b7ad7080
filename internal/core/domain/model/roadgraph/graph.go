package roadgraph

import (
	"fmt"
	"math"

	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/pkg/errs"

	"github.com/tidwall/rtree"
)

// arc is an outgoing adjacency entry: head index and the segment it came from.
type arc struct {
	head    int
	segment int
}

// Graph is the immutable road network.
//
// Example:
//
//	g, err := roadgraph.NewGraph(intersections, segments)
//	if err != nil {
//	    return err // duplicate id, dangling segment endpoint
//	}
//	d, ok, err := g.ShortestDistance("W", "A")
type Graph struct {
	intersections []Intersection
	index         map[IntersectionID]int
	segments      []Segment
	out           [][]arc
	spatial       rtree.RTreeG[int]
}

// NewGraph builds the id ↔ dense index mapping and adjacency lists.
//
// Returns:
//   - ErrValueIsInvalid (wrapped) for a duplicate intersection id or an unconstructed value
//   - ErrObjectNotFound (wrapped) for a segment endpoint that is not an intersection
func NewGraph(intersections []Intersection, segments []Segment) (*Graph, error) {
	g := &Graph{
		intersections: make([]Intersection, 0, len(intersections)),
		index:         make(map[IntersectionID]int, len(intersections)),
		segments:      make([]Segment, 0, len(segments)),
		out:           make([][]arc, len(intersections)),
	}

	for _, in := range intersections {
		if err := in.Validate(); err != nil {
			return nil, err
		}
		if _, dup := g.index[in.ID()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("intersection id",
				fmt.Errorf("duplicate intersection %q", in.ID()))
		}
		idx := len(g.intersections)
		g.index[in.ID()] = idx
		g.intersections = append(g.intersections, in)

		point := [2]float64{in.Location().Longitude(), in.Location().Latitude()}
		g.spatial.Insert(point, point, idx)
	}

	for _, s := range segments {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		from, ok := g.index[s.Origin()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("segment origin", string(s.Origin()))
		}
		to, ok := g.index[s.Destination()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("segment destination", string(s.Destination()))
		}
		g.out[from] = append(g.out[from], arc{head: to, segment: len(g.segments)})
		g.segments = append(g.segments, s)
	}

	return g, nil
}

// Len returns the number of intersections.
func (g *Graph) Len() int {
	return len(g.intersections)
}

// Has reports whether id is an intersection of the graph.
func (g *Graph) Has(id IntersectionID) bool {
	_, ok := g.index[id]
	return ok
}

// Index returns the dense index of id.
func (g *Graph) Index(id IntersectionID) (int, error) {
	idx, ok := g.index[id]
	if !ok {
		return 0, errs.NewObjectNotFoundError("intersection", string(id))
	}
	return idx, nil
}

// ID returns the intersection id at a dense index.
func (g *Graph) ID(index int) IntersectionID {
	return g.intersections[index].ID()
}

// Intersection looks an intersection up by id.
func (g *Graph) Intersection(id IntersectionID) (Intersection, error) {
	idx, err := g.Index(id)
	if err != nil {
		return Intersection{}, err
	}
	return g.intersections[idx], nil
}

// Intersections returns a copy of all intersections in index order.
func (g *Graph) Intersections() []Intersection {
	out := make([]Intersection, len(g.intersections))
	copy(out, g.intersections)
	return out
}

// Segments returns a copy of all segments in insertion order.
func (g *Graph) Segments() []Segment {
	out := make([]Segment, len(g.segments))
	copy(out, g.segments)
	return out
}

// Nearest returns the intersection closest to loc. Distances are compared on an
// equirectangular projection centered on loc, which preserves the ordering of
// nearby candidates.
func (g *Graph) Nearest(loc kernel.Location) (Intersection, error) {
	if err := loc.Validate(); err != nil {
		return Intersection{}, err
	}
	if len(g.intersections) == 0 {
		return Intersection{}, errs.NewObjectNotFoundError("intersection", loc.String())
	}

	x, y := loc.Longitude(), loc.Latitude()
	scale := math.Cos(y * math.Pi / 180)
	boxDist := func(minP, maxP [2]float64, _ int, _ bool) float64 {
		dx := axisGap(x, minP[0], maxP[0]) * scale
		dy := axisGap(y, minP[1], maxP[1])
		return dx*dx + dy*dy
	}

	found := -1
	g.spatial.Nearby(boxDist, func(_, _ [2]float64, idx int, _ float64) bool {
		found = idx
		return false
	})
	if found < 0 {
		return Intersection{}, errs.NewObjectNotFoundError("intersection", loc.String())
	}

	return g.intersections[found], nil
}

// axisGap is the distance from v to the interval [lo, hi] on one axis.
func axisGap(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo - v
	case v > hi:
		return v - hi
	default:
		return 0
	}
}
