package services_test

import (
	"testing"
	"time"

	"routeplanner/internal/core/domain/model/courier"
	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/domain/services"
	"routeplanner/internal/core/domain/services/tsp"

	"github.com/stretchr/testify/require"
)

var testSchedule = services.Schedule{
	Start: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	Dwell: 5 * time.Minute,
}

var unlimited = tsp.Options{TimeLimit: tsp.NoTimeLimit, Strategy: tsp.Heuristic{}}

// diamondGraph is W→A 1, A→B 1, W→B 5, B→W 1 plus C reachable only from B and
// back to W, and an isolated Z. Lengths are in meters.
func diamondGraph(t *testing.T) *roadgraph.Graph {
	t.Helper()
	coords := map[roadgraph.IntersectionID][2]float64{
		"W": {45.750, 4.850}, "A": {45.751, 4.851}, "B": {45.752, 4.850},
		"C": {45.753, 4.852}, "Z": {45.800, 4.900},
	}
	var ins []roadgraph.Intersection
	for _, id := range []roadgraph.IntersectionID{"W", "A", "B", "C", "Z"} {
		in, err := roadgraph.NewIntersection(id, coords[id][0], coords[id][1])
		require.NoError(t, err)
		ins = append(ins, in)
	}
	var segs []roadgraph.Segment
	for _, s := range []struct {
		from, to roadgraph.IntersectionID
		length   float64
	}{
		{"W", "A", 1}, {"A", "B", 1}, {"W", "B", 5}, {"B", "W", 1}, {"B", "C", 2}, {"C", "W", 2},
	} {
		seg, err := roadgraph.NewSegment(s.from, s.to, s.length, string(s.from)+string(s.to))
		require.NoError(t, err)
		segs = append(segs, seg)
	}
	g, err := roadgraph.NewGraph(ins, segs)
	require.NoError(t, err)
	return g
}

func newCourier(t *testing.T, speed float64) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), "Alice", speed)
	require.NoError(t, err)
	return c
}
