// Package tsp solves the closed tour of one courier exactly with a depth-first
// branch-and-bound search over a dense cost matrix.
//
// Index 0 of the matrix is the warehouse. A solution is a permutation of 1..k-1
// framed by 0 at both ends. The search shares one mutable working set across the
// whole recursion tree; every branch restores it through a scoped guard before
// returning.
//
// Bounding, candidate ordering and extension filtering come from a Strategy:
//   - Baseline: zero bound, index order, no filtering. Always exact given time.
//   - Heuristic: admissible min-outgoing-edge bound, nearest-first ordering and a
//     non-crossing filter. The filter is a 2-opt dominance check. It never discards
//     the optimum on symmetric matrices but may do so on asymmetric ones, so
//     Heuristic results on asymmetric matrices are not guaranteed optimal.
//
// The wall-clock budget is checked at the top of every recursive step. When it
// runs out the search unwinds and the best tour found so far is returned with
// Result.Optimal set to false. Exhaustion is never an error.
package tsp
