package roadgraph_test

import (
	"testing"

	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// diamond builds W→A(1), A→B(1), W→B(5), B→W(1) plus an isolated intersection Z.
func diamond(t *testing.T) *roadgraph.Graph {
	t.Helper()
	return mustGraph(t,
		[]roadgraph.Intersection{
			mustIntersection(t, "W", 45.750, 4.850),
			mustIntersection(t, "A", 45.751, 4.851),
			mustIntersection(t, "B", 45.752, 4.850),
			mustIntersection(t, "Z", 45.800, 4.900),
		},
		[]roadgraph.Segment{
			mustSegment(t, "W", "A", 1, "Rue A"),
			mustSegment(t, "A", "B", 1, "Rue B"),
			mustSegment(t, "W", "B", 5, "Avenue"),
			mustSegment(t, "B", "W", 1, "Retour"),
		},
	)
}

func mustIntersection(t *testing.T, id roadgraph.IntersectionID, lat, lon float64) roadgraph.Intersection {
	t.Helper()
	in, err := roadgraph.NewIntersection(id, lat, lon)
	require.NoError(t, err)
	return in
}

func mustSegment(t *testing.T, from, to roadgraph.IntersectionID, length float64, name string) roadgraph.Segment {
	t.Helper()
	s, err := roadgraph.NewSegment(from, to, length, name)
	require.NoError(t, err)
	return s
}

func mustGraph(t *testing.T, in []roadgraph.Intersection, seg []roadgraph.Segment) *roadgraph.Graph {
	t.Helper()
	g, err := roadgraph.NewGraph(in, seg)
	require.NoError(t, err)
	return g
}

func TestNewGraph(t *testing.T) {
	t.Run("builds dense index mapping", func(t *testing.T) {
		g := diamond(t)

		assert.Equal(t, 4, g.Len())
		for i := 0; i < g.Len(); i++ {
			idx, err := g.Index(g.ID(i))
			require.NoError(t, err)
			assert.Equal(t, i, idx)
		}
		assert.True(t, g.Has("Z"))
		assert.False(t, g.Has("nope"))
		assert.Len(t, g.Segments(), 4)
	})

	t.Run("duplicate intersection id is malformed input", func(t *testing.T) {
		_, err := roadgraph.NewGraph([]roadgraph.Intersection{
			mustIntersection(t, "A", 0, 0),
			mustIntersection(t, "A", 1, 1),
		}, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("dangling segment endpoint is a lookup error", func(t *testing.T) {
		_, err := roadgraph.NewGraph(
			[]roadgraph.Intersection{mustIntersection(t, "A", 0, 0)},
			[]roadgraph.Segment{mustSegment(t, "A", "ghost", 3, "")},
		)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Contains(t, err.Error(), "ghost")
	})

	t.Run("zero value segment is rejected", func(t *testing.T) {
		_, err := roadgraph.NewGraph(
			[]roadgraph.Intersection{mustIntersection(t, "A", 0, 0)},
			[]roadgraph.Segment{{}},
		)

		require.ErrorIs(t, err, roadgraph.ErrSegmentIsNotConstructed)
	})
}

func TestNewSegment(t *testing.T) {
	t.Run("negative length", func(t *testing.T) {
		_, err := roadgraph.NewSegment("A", "B", -1, "x")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("missing endpoints are joined", func(t *testing.T) {
		_, err := roadgraph.NewSegment("", "", 1, "x")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "segment origin")
		assert.Contains(t, err.Error(), "segment destination")
	})

	t.Run("accessors", func(t *testing.T) {
		s := mustSegment(t, "A", "B", 12.5, "Rue de la République")
		assert.Equal(t, roadgraph.IntersectionID("A"), s.Origin())
		assert.Equal(t, roadgraph.IntersectionID("B"), s.Destination())
		assert.InDelta(t, 12.5, s.Length(), 1e-12)
		assert.Equal(t, "Rue de la République", s.StreetName())
	})
}

func TestGraph_ShortestDistance(t *testing.T) {
	g := diamond(t)

	testCases := []struct {
		from, to roadgraph.IntersectionID
		want     float64
	}{
		{"W", "A", 1},
		{"W", "B", 2},
		{"A", "W", 2},
		{"B", "A", 2},
		{"A", "A", 0},
	}
	for _, tc := range testCases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			d, ok, err := g.ShortestDistance(tc.from, tc.to)

			require.NoError(t, err)
			assert.True(t, ok)
			assert.InDelta(t, tc.want, d, 1e-12)
		})
	}

	t.Run("unreachable is a distinct outcome", func(t *testing.T) {
		d, ok, err := g.ShortestDistance("W", "Z")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, d)
	})

	t.Run("unknown id is a lookup error", func(t *testing.T) {
		_, _, err := g.ShortestDistance("W", "nowhere")

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestGraph_ShortestPath(t *testing.T) {
	g := diamond(t)

	t.Run("path length equals shortest distance", func(t *testing.T) {
		ids := []roadgraph.IntersectionID{"W", "A", "B"}
		for _, from := range ids {
			for _, to := range ids {
				d, ok, err := g.ShortestDistance(from, to)
				require.NoError(t, err)
				require.True(t, ok)

				route, ok, err := g.Route(from, to)
				require.NoError(t, err)
				require.True(t, ok)

				sum := 0.0
				for _, s := range route.Segments {
					sum += s.Length()
				}
				assert.InDelta(t, d, sum, 1e-9)
				assert.InDelta(t, d, route.Length, 1e-9)
				assert.Equal(t, from, route.Intersections[0])
				assert.Equal(t, to, route.Intersections[len(route.Intersections)-1])
			}
		}
	})

	t.Run("W to B goes through A", func(t *testing.T) {
		path, err := g.ShortestPath("W", "B")

		require.NoError(t, err)
		assert.Equal(t, []roadgraph.IntersectionID{"W", "A", "B"}, path)
	})

	t.Run("unreachable gives empty path", func(t *testing.T) {
		path, err := g.ShortestPath("A", "Z")

		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("parallel segments use the shorter one", func(t *testing.T) {
		pg := mustGraph(t,
			[]roadgraph.Intersection{mustIntersection(t, "X", 0, 0), mustIntersection(t, "Y", 0, 1)},
			[]roadgraph.Segment{mustSegment(t, "X", "Y", 9, "long"), mustSegment(t, "X", "Y", 4, "short")},
		)

		route, ok, err := pg.Route("X", "Y")

		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "short", route.Segments[0].StreetName())
	})
}

func TestGraph_DistancesFrom(t *testing.T) {
	g := diamond(t)

	dist, err := g.DistancesFrom("W", []roadgraph.IntersectionID{"A", "B", "Z"})

	require.NoError(t, err)
	assert.InDelta(t, 1, dist["A"], 1e-12)
	assert.InDelta(t, 2, dist["B"], 1e-12)
	_, reachable := dist["Z"]
	assert.False(t, reachable)

	_, err = g.DistancesFrom("W", []roadgraph.IntersectionID{"?"})
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGraph_Nearest(t *testing.T) {
	g := diamond(t)

	t.Run("snaps to closest intersection", func(t *testing.T) {
		loc, _ := kernel.NewLocation(45.7995, 4.8990)

		in, err := g.Nearest(loc)

		require.NoError(t, err)
		assert.Equal(t, roadgraph.IntersectionID("Z"), in.ID())
	})

	t.Run("empty graph", func(t *testing.T) {
		empty := mustGraph(t, nil, nil)
		loc, _ := kernel.NewLocation(0, 0)

		_, err := empty.Nearest(loc)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
