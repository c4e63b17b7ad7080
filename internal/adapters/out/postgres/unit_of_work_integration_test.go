package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "routeplanner/internal/adapters/out/postgres"
	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/domain/model/tour"
	"routeplanner/internal/core/ports"
	"routeplanner/internal/pkg/errs"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE tours, tour_stops, tour_legs, tour_leg_segments").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.TourRepository())
	suite.NotNil(uow2.TourRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RoundCommit() {
	ctx := context.Background()
	uow := suite.factory.Create()
	roundID := kernel.NewUUID()
	first, second := createTestTour(suite.T()), createTestTour(suite.T())

	// Given
	suite.Require().NoError(uow.Begin(ctx))

	// When
	suite.Require().NoError(uow.TourRepository().Add(ctx, roundID, first))
	suite.Require().NoError(uow.TourRepository().Add(ctx, roundID, second))
	suite.Require().NoError(uow.Commit(ctx))

	// Then
	tours, err := suite.factory.Create().TourRepository().GetByRound(ctx, roundID)
	suite.Require().NoError(err)
	suite.Require().Len(tours, 2)
	suite.True(tours[0].CourierID().IsEqual(first.CourierID()))
	suite.True(tours[1].CourierID().IsEqual(second.CourierID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()
	roundID := kernel.NewUUID()

	// Given
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TourRepository().Add(ctx, roundID, createTestTour(suite.T())))

	_, err := uow.TourRepository().GetByRound(ctx, roundID)
	suite.Require().NoError(err, "Tour should be visible inside the transaction")

	// When
	suite.Require().NoError(uow.Rollback(ctx))

	// Then
	_, err = suite.factory.Create().TourRepository().GetByRound(ctx, roundID)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	round1, round2 := kernel.NewUUID(), kernel.NewUUID()

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.TourRepository().Add(ctx, round1, createTestTour(suite.T())))
	suite.Require().NoError(uow2.TourRepository().Add(ctx, round2, createTestTour(suite.T())))

	_, err := uow1.TourRepository().GetByRound(ctx, round2)
	suite.Require().Error(err, "UOW1 should not see round2")
	_, err = uow2.TourRepository().GetByRound(ctx, round1)
	suite.Require().Error(err, "UOW2 should not see round1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	repo := suite.factory.Create().TourRepository()
	_, err = repo.GetByRound(ctx, round1)
	suite.Require().NoError(err, "round1 should persist after commit")
	_, err = repo.GetByRound(ctx, round2)
	suite.Require().Error(err, "round2 should not persist after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	roundID := kernel.NewUUID()

	suite.Require().NoError(uow.TourRepository().Add(ctx, roundID, createTestTour(suite.T())))

	latest, err := suite.factory.Create().TourRepository().GetLatestRoundID(ctx)
	suite.Require().NoError(err)
	suite.True(latest.IsEqual(roundID))
}

// createTestTour builds warehouse W -> A -> W with one segment per leg.
func createTestTour(t *testing.T) *tour.Tour {
	t.Helper()
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	out, err := roadgraph.NewSegment("W", "A", 120, "Main Street")
	require.NoError(t, err)
	back, err := roadgraph.NewSegment("A", "W", 130, "Main Street")
	require.NoError(t, err)

	stops := []tour.Stop{
		{Intersection: "W", Arrival: start, Departure: start},
		{Intersection: "A", Arrival: start.Add(time.Minute), Departure: start.Add(6 * time.Minute)},
		{Intersection: "W", Arrival: start.Add(7 * time.Minute), Departure: start.Add(7 * time.Minute)},
	}
	legs := []tour.Leg{
		{From: "W", To: "A", Path: roadgraph.Path{
			Intersections: []roadgraph.IntersectionID{"W", "A"}, Segments: []roadgraph.Segment{out}, Length: 120}},
		{From: "A", To: "W", Path: roadgraph.Path{
			Intersections: []roadgraph.IntersectionID{"A", "W"}, Segments: []roadgraph.Segment{back}, Length: 130}},
	}

	created, err := tour.NewTour(kernel.NewUUID(), stops, legs, 250, true)
	require.NoError(t, err)
	return created
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
