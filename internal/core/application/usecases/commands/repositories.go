// Package commands contains operations that modify the round: loading inputs,
// computing and editing tours, history navigation, and saving round snapshots.
// Every command follows the same pattern: constructor validation, a guard checked
// by the handler, then the planner call and, where a round is produced, persistence.
package commands

import (
	"context"
	"time"

	"routeplanner/internal/core/application/planner"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// TourRepoFactory provides access to the tour repository within a transaction.
	TourRepoFactory interface {
		TourRepository() ports.TourRepository
	}

	// TourUoW manages transactions for round snapshots.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   for _, t := range tours {
	//       err = uow.TourRepository().Add(ctx, roundID, t)
	//   }
	//
	//   err = uow.Commit(ctx)
	TourUoW interface {
		TxManager
		TourRepoFactory
	}

	// TourUoWFactory creates new tour unit of work instances.
	TourUoWFactory interface {
		Create() TourUoW
	}
)

// RoundPlanner is the part of planner.Planner the command handlers drive.
type RoundPlanner interface {
	Initialize(courierCount int, graph *roadgraph.Graph) error
	LoadRoadGraph(intersections []roadgraph.Intersection, segments []roadgraph.Segment) error
	LoadRequests(warehouse roadgraph.IntersectionID, deliveries []roadgraph.IntersectionID) error
	ComputeRound(ctx context.Context) error
	ComputeRoundOptimized(ctx context.Context) error
	AddDeliveryPoint(ctx context.Context, courierIndex int, id roadgraph.IntersectionID) error
	RemoveDeliveryPoint(ctx context.Context, courierIndex int, id roadgraph.IntersectionID) error
	SetWarehouse(ctx context.Context, id roadgraph.IntersectionID) error
	ClearWarehouse(ctx context.Context) error
	RefineTimedOut(ctx context.Context, budget time.Duration) (int, error)
	Undo(ctx context.Context) error
	Redo(ctx context.Context) error
	Tours() []planner.CourierTour
}
