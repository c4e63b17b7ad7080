package commands_test

import (
	"context"
	"time"

	"routeplanner/internal/core/application/planner"
	"routeplanner/internal/core/application/usecases/commands"
	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/domain/model/tour"
	"routeplanner/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockPlanner struct{ mock.Mock }

func (m *MockPlanner) Initialize(courierCount int, graph *roadgraph.Graph) error {
	return m.Called(courierCount, graph).Error(0)
}

func (m *MockPlanner) LoadRoadGraph(intersections []roadgraph.Intersection, segments []roadgraph.Segment) error {
	return m.Called(intersections, segments).Error(0)
}

func (m *MockPlanner) LoadRequests(warehouse roadgraph.IntersectionID, deliveries []roadgraph.IntersectionID) error {
	return m.Called(warehouse, deliveries).Error(0)
}

func (m *MockPlanner) ComputeRound(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPlanner) ComputeRoundOptimized(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPlanner) AddDeliveryPoint(ctx context.Context, courierIndex int, id roadgraph.IntersectionID) error {
	return m.Called(ctx, courierIndex, id).Error(0)
}

func (m *MockPlanner) RemoveDeliveryPoint(ctx context.Context, courierIndex int, id roadgraph.IntersectionID) error {
	return m.Called(ctx, courierIndex, id).Error(0)
}

func (m *MockPlanner) SetWarehouse(ctx context.Context, id roadgraph.IntersectionID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPlanner) ClearWarehouse(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPlanner) RefineTimedOut(ctx context.Context, budget time.Duration) (int, error) {
	args := m.Called(ctx, budget)
	return args.Int(0), args.Error(1)
}

func (m *MockPlanner) Undo(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPlanner) Redo(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPlanner) Tours() []planner.CourierTour {
	return m.Called().Get(0).([]planner.CourierTour)
}

type MockTourRepository struct{ mock.Mock }

func (m *MockTourRepository) Add(ctx context.Context, roundID kernel.UUID, t *tour.Tour) error {
	return m.Called(ctx, roundID, t).Error(0)
}

func (m *MockTourRepository) GetByRound(ctx context.Context, roundID kernel.UUID) ([]*tour.Tour, error) {
	args := m.Called(ctx, roundID)
	return args.Get(0).([]*tour.Tour), args.Error(1)
}

func (m *MockTourRepository) GetLatestRoundID(ctx context.Context) (kernel.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type MockTourUoW struct{ mock.Mock }

func (m *MockTourUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTourUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTourUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTourUoW) TourRepository() ports.TourRepository {
	return m.Called().Get(0).(ports.TourRepository)
}

type MockTourUoWFactory struct{ mock.Mock }

func (m *MockTourUoWFactory) Create() commands.TourUoW {
	return m.Called().Get(0).(commands.TourUoW)
}

type MockTourPublisher struct{ mock.Mock }

func (m *MockTourPublisher) PublishRound(ctx context.Context, roundID kernel.UUID, tours []*tour.Tour) error {
	return m.Called(ctx, roundID, tours).Error(0)
}

// idleRound returns count couriers with idle tours and the tours themselves.
func idleRound(count int) ([]planner.CourierTour, []*tour.Tour) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	courierTours := make([]planner.CourierTour, 0, count)
	tours := make([]*tour.Tour, 0, count)
	for i := 0; i < count; i++ {
		t, err := tour.NewIdleTour(kernel.NewUUID(), "W", start)
		if err != nil {
			panic(err)
		}
		courierTours = append(courierTours, planner.CourierTour{Index: i, Tour: t})
		tours = append(tours, t)
	}
	return courierTours, tours
}
