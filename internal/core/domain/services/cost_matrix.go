package services

import (
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/domain/services/tsp"
	"routeplanner/internal/pkg/errs"
)

// DistanceOracle answers one-to-many shortest distances. *roadgraph.Graph implements it.
type DistanceOracle interface {
	DistancesFrom(from roadgraph.IntersectionID, targets []roadgraph.IntersectionID) (map[roadgraph.IntersectionID]float64, error)
}

// RoadNetwork is the part of the road graph a CourierRouter needs.
type RoadNetwork interface {
	DistanceOracle
	Route(from, to roadgraph.IntersectionID) (roadgraph.Path, bool, error)
}

// BuildCostMatrix returns the k×k shortest-distance matrix among ids, ids[0] being
// the warehouse. One single-source search runs per row.
//
// Returns:
//   - ErrObjectNotFound (wrapped) for an id missing from the graph
//   - *errs.UnreachablePairError naming the first pair with no directed path
//
// Example:
//
//	m, err := services.BuildCostMatrix(graph, []roadgraph.IntersectionID{"W", "A", "B"})
//	var unreachable *errs.UnreachablePairError
//	if errors.As(err, &unreachable) {
//	    log.Printf("cannot serve %v from %v", unreachable.To, unreachable.From)
//	}
func BuildCostMatrix(oracle DistanceOracle, ids []roadgraph.IntersectionID) (*tsp.Matrix, error) {
	m, err := tsp.NewMatrix(len(ids))
	if err != nil {
		return nil, err
	}

	for i, from := range ids {
		dist, err := oracle.DistancesFrom(from, ids)
		if err != nil {
			return nil, err
		}
		for j, to := range ids {
			if i == j {
				continue
			}
			d, ok := dist[to]
			if !ok {
				return nil, errs.NewUnreachablePairError(string(from), string(to))
			}
			if err := m.Set(i, j, d); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// costsAround returns cost(id → ids[j]) and cost(ids[i] → id) for a node about
// to be appended to the matrix built over ids.
func costsAround(oracle DistanceOracle, id roadgraph.IntersectionID, ids []roadgraph.IntersectionID) (out, in []float64, err error) {
	fromNew, err := oracle.DistancesFrom(id, ids)
	if err != nil {
		return nil, nil, err
	}

	out = make([]float64, len(ids))
	in = make([]float64, len(ids))
	target := []roadgraph.IntersectionID{id}
	for j, other := range ids {
		d, ok := fromNew[other]
		if !ok {
			return nil, nil, errs.NewUnreachablePairError(string(id), string(other))
		}
		out[j] = d

		toNew, err := oracle.DistancesFrom(other, target)
		if err != nil {
			return nil, nil, err
		}
		d, ok = toNew[id]
		if !ok {
			return nil, nil, errs.NewUnreachablePairError(string(other), string(id))
		}
		in[j] = d
	}

	return out, in, nil
}
