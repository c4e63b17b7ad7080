// Package cluster partitions delivery stops among couriers with a balanced,
// deterministic K-means.
package cluster

import (
	"math"
	"sort"

	"routeplanner/internal/pkg/errs"
)

// MaxIterations bounds centroid relocation rounds.
const MaxIterations = 50

// Point is a planar coordinate. Callers project latitude/longitude first.
type Point struct {
	X float64
	Y float64
}

// Assign splits points into m groups of at most ⌈n/m⌉ indices each. Every index
// in [0, n) appears in exactly one group; groups are sorted ascending. With m > n
// the trailing groups are empty.
//
// Seeding is farthest-point from the overall centroid, ties broken by index, so
// the same input always yields the same partition.
func Assign(points []Point, m int) ([][]int, error) {
	if m <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("cluster count", m, 1, math.MaxInt)
	}

	n := len(points)
	groups := make([][]int, m)
	for i := range groups {
		groups[i] = []int{}
	}
	if n == 0 {
		return groups, nil
	}

	active := min(m, n)
	capacity := (n + m - 1) / m
	centroids := seed(points, active)

	owner := make([]int, n)
	for i := range owner {
		owner[i] = -1
	}
	for iter := 0; iter < MaxIterations; iter++ {
		next := balancedAssign(points, centroids, capacity)
		if equal(next, owner) {
			break
		}
		owner = next
		centroids = relocate(points, owner, centroids)
	}

	for i, c := range owner {
		groups[c] = append(groups[c], i)
	}
	return groups, nil
}

// seed picks k distinct points: the farthest from the mean, then repeatedly the
// point farthest from every chosen seed.
func seed(points []Point, k int) []Point {
	var mean Point
	for _, p := range points {
		mean.X += p.X
		mean.Y += p.Y
	}
	mean.X /= float64(len(points))
	mean.Y /= float64(len(points))

	nearest := make([]float64, len(points))
	for i, p := range points {
		nearest[i] = dist2(p, mean)
	}
	chosen := make([]bool, len(points))
	centroids := make([]Point, 0, k)
	for len(centroids) < k {
		best := -1
		for i := range points {
			if chosen[i] {
				continue
			}
			if best < 0 || nearest[i] > nearest[best] {
				best = i
			}
		}
		chosen[best] = true
		centroids = append(centroids, points[best])
		for i, p := range points {
			if d := dist2(p, points[best]); d < nearest[i] || len(centroids) == 1 {
				nearest[i] = d
			}
		}
	}
	return centroids
}

type candidate struct {
	point   int
	cluster int
	d       float64
}

// balancedAssign hands points to centroids closest pair first, skipping full clusters.
func balancedAssign(points []Point, centroids []Point, capacity int) []int {
	pairs := make([]candidate, 0, len(points)*len(centroids))
	for i, p := range points {
		for c, ctr := range centroids {
			pairs = append(pairs, candidate{point: i, cluster: c, d: dist2(p, ctr)})
		}
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].d != pairs[b].d {
			return pairs[a].d < pairs[b].d
		}
		if pairs[a].point != pairs[b].point {
			return pairs[a].point < pairs[b].point
		}
		return pairs[a].cluster < pairs[b].cluster
	})

	owner := make([]int, len(points))
	for i := range owner {
		owner[i] = -1
	}
	load := make([]int, len(centroids))
	left := len(points)
	for _, c := range pairs {
		if left == 0 {
			break
		}
		if owner[c.point] >= 0 || load[c.cluster] >= capacity {
			continue
		}
		owner[c.point] = c.cluster
		load[c.cluster]++
		left--
	}
	return owner
}

func relocate(points []Point, owner []int, previous []Point) []Point {
	sums := make([]Point, len(previous))
	counts := make([]int, len(previous))
	for i, c := range owner {
		sums[c].X += points[i].X
		sums[c].Y += points[i].Y
		counts[c]++
	}
	out := make([]Point, len(previous))
	for c := range out {
		if counts[c] == 0 {
			out[c] = previous[c]
			continue
		}
		out[c] = Point{X: sums[c].X / float64(counts[c]), Y: sums[c].Y / float64(counts[c])}
	}
	return out
}

func dist2(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

func equal(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
