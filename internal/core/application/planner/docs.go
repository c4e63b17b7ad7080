// Package planner provides the Planner, the stateful coordinator of a delivery
// round: couriers, warehouse, pending delivery requests, and one live
// CourierRouter per courier.
//
// Every structural change (add stop, remove stop, set or clear the warehouse,
// recompute, refine) is prepared completely before it is committed as an Edit on a
// linear undo/redo history. Preparation may fail; committing cannot. Callers
// therefore never observe a partially applied change.
//
// A Planner serializes its operations with a mutex. The road graph it holds is
// immutable and shared with the solves it runs in parallel.
package planner
