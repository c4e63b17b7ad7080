// Package services provides the domain services that turn the road graph and a
// courier's stops into a solved tour.
//
// The package includes:
//   - BuildCostMatrix: the reduced complete graph among a warehouse and its stops
//   - SplitEvenly: the naive, list-order stop assignment
//   - Schedule: arrival-time derivation along a committed stop order
//   - CourierRouter: one courier's live matrix and solver, edited stop by stop
//
// Subpackages tsp and cluster hold the search and the partitioning algorithms.
package services
