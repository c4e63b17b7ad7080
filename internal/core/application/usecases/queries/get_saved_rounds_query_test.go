package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "routeplanner/internal/adapters/out/postgres"
	"routeplanner/internal/core/application/usecases/queries"
	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/domain/model/tour"
	"routeplanner/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetSavedRoundsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetSavedRoundsQueryHandler
}

func (suite *GetSavedRoundsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.handler = queries.NewGetSavedRoundsQueryHandler(db)
}

func (suite *GetSavedRoundsQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE tour_leg_segments, tour_legs, tour_stops, tours").Error)
}

func (suite *GetSavedRoundsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetSavedRoundsQueryHandlerTestSuite) TestHandle_EmptyDatabase() {
	query, err := queries.NewGetSavedRoundsQuery(10)
	suite.Require().NoError(err)

	rounds, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(rounds)
}

func (suite *GetSavedRoundsQueryHandlerTestSuite) TestHandle_SummarizesNewestFirst() {
	ctx := context.Background()

	// Given
	older := suite.saveRound(ctx, 250, true, 250, true)
	time.Sleep(10 * time.Millisecond)
	newer := suite.saveRound(ctx, 100, false)

	query, err := queries.NewGetSavedRoundsQuery(10)
	suite.Require().NoError(err)

	// When
	rounds, err := suite.handler.Handle(ctx, query)

	// Then
	suite.Require().NoError(err)
	suite.Require().Len(rounds, 2)

	suite.True(rounds[0].RoundID.IsEqual(newer))
	suite.Equal(1, rounds[0].Tours)
	suite.False(rounds[0].Optimal)

	suite.True(rounds[1].RoundID.IsEqual(older))
	suite.Equal(2, rounds[1].Tours)
	suite.InDelta(500.0, rounds[1].TotalCost, 1e-9)
	suite.True(rounds[1].Optimal)
	suite.False(rounds[1].SavedAt.After(rounds[0].SavedAt))
}

func (suite *GetSavedRoundsQueryHandlerTestSuite) TestHandle_Limit() {
	ctx := context.Background()
	suite.saveRound(ctx, 1, true)
	suite.saveRound(ctx, 2, true)

	query, _ := queries.NewGetSavedRoundsQuery(1)
	rounds, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Len(rounds, 1)

	_, err = queries.NewGetSavedRoundsQuery(0)
	suite.ErrorIs(err, errs.ErrValueIsOutOfRange)
}

// saveRound stores one W -> A -> W tour per (cost, optimal) pair under a new round id.
func (suite *GetSavedRoundsQueryHandlerTestSuite) saveRound(ctx context.Context, costsAndFlags ...any) kernel.UUID {
	roundID := kernel.NewUUID()
	uow := postgres_adapter.NewGormUnitOfWorkFactory(suite.db).Create()
	suite.Require().NoError(uow.Begin(ctx))

	for i := 0; i+1 < len(costsAndFlags); i += 2 {
		cost := float64(costsAndFlags[i].(int))
		optimal := costsAndFlags[i+1].(bool)
		suite.Require().NoError(uow.TourRepository().Add(ctx, roundID, suite.loopTour(cost, optimal)))
	}

	suite.Require().NoError(uow.Commit(ctx))
	return roundID
}

func (suite *GetSavedRoundsQueryHandlerTestSuite) loopTour(cost float64, optimal bool) *tour.Tour {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	out, err := roadgraph.NewSegment("W", "A", cost/2, "")
	suite.Require().NoError(err)
	back, err := roadgraph.NewSegment("A", "W", cost/2, "")
	suite.Require().NoError(err)

	t, err := tour.NewTour(kernel.NewUUID(),
		[]tour.Stop{
			{Intersection: "W", Arrival: start, Departure: start},
			{Intersection: "A", Arrival: start.Add(time.Minute), Departure: start.Add(2 * time.Minute)},
			{Intersection: "W", Arrival: start.Add(3 * time.Minute), Departure: start.Add(3 * time.Minute)},
		},
		[]tour.Leg{
			{From: "W", To: "A", Path: roadgraph.Path{
				Intersections: []roadgraph.IntersectionID{"W", "A"}, Segments: []roadgraph.Segment{out}, Length: cost / 2}},
			{From: "A", To: "W", Path: roadgraph.Path{
				Intersections: []roadgraph.IntersectionID{"A", "W"}, Segments: []roadgraph.Segment{back}, Length: cost / 2}},
		},
		cost, optimal)
	suite.Require().NoError(err)
	return t
}

func TestGetSavedRoundsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetSavedRoundsQueryHandlerTestSuite))
}
