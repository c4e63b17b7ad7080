package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	httpin "routeplanner/internal/adapters/in/http"
	"routeplanner/internal/adapters/in/mapxml"
	"routeplanner/internal/adapters/out/kafka"
	"routeplanner/internal/adapters/out/postgres"
	"routeplanner/internal/core/application/planner"
	"routeplanner/internal/core/application/usecases/commands"
	"routeplanner/internal/core/application/usecases/queries"
	"routeplanner/internal/core/domain/services"
	"routeplanner/internal/core/domain/services/tsp"
	"routeplanner/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  *kafka.TourPublisher
	planner    *planner.Planner
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	p := planner.New(planner.Options{
		Solver: tsp.Options{
			TimeLimit: configs.SolverTimeLimit,
			Strategy:  tsp.Heuristic{},
		},
		Schedule: services.Schedule{
			Start: services.DayStart(time.Now(), configs.DayStartHour, configs.DayStartMinute),
			Dwell: configs.Dwell,
		},
		CourierSpeed: configs.CourierSpeed,
		Workers:      configs.SolverWorkers,
		Logger:       logger,
	})

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  kafka.NewTourPublisher([]string{configs.KafkaHost}, configs.KafkaToursSavedTopic, logger),
		planner:    p,
		logger:     logger,
	}
}

// Bootstrap creates the fleet and, when configured, loads the startup map.
func (c *CompositionRoot) Bootstrap(ctx context.Context) error {
	handler := c.CreateInitializeFleetCommandHandler()
	cmd, err := commands.NewInitializeFleetCommand(c.configs.CourierCount)
	if err != nil {
		return err
	}
	if err = handler.Handle(ctx, cmd); err != nil {
		return err
	}

	if c.configs.MapFile == "" {
		return nil
	}

	f, err := os.Open(c.configs.MapFile)
	if err != nil {
		return fmt.Errorf("open map file: %w", err)
	}
	defer f.Close()

	doc, err := mapxml.ParseMap(f)
	if err != nil {
		return fmt.Errorf("parse map file %s: %w", c.configs.MapFile, err)
	}

	loadMap, err := commands.NewLoadMapCommand(doc.Intersections, doc.Segments)
	if err != nil {
		return err
	}
	return c.CreateLoadMapCommandHandler().Handle(ctx, loadMap)
}

func (c *CompositionRoot) CreateInitializeFleetCommandHandler() commands.InitializeFleetCommandHandler {
	return commands.NewInitializeFleetCommandHandler(c.planner)
}

func (c *CompositionRoot) CreateLoadMapCommandHandler() commands.LoadMapCommandHandler {
	return commands.NewLoadMapCommandHandler(c.planner)
}

func (c *CompositionRoot) CreateLoadRequestsCommandHandler() commands.LoadRequestsCommandHandler {
	return commands.NewLoadRequestsCommandHandler(c.planner)
}

func (c *CompositionRoot) CreateComputeRoundCommandHandler() commands.ComputeRoundCommandHandler {
	return commands.NewComputeRoundCommandHandler(c.planner, c.tourUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateRefineRoundCommandHandler() commands.RefineRoundCommandHandler {
	return commands.NewRefineRoundCommandHandler(c.planner, c.tourUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateChangeStopCommandHandler() commands.ChangeStopCommandHandler {
	return commands.NewChangeStopCommandHandler(c.planner)
}

func (c *CompositionRoot) CreateChangeWarehouseCommandHandler() commands.ChangeWarehouseCommandHandler {
	return commands.NewChangeWarehouseCommandHandler(c.planner)
}

func (c *CompositionRoot) CreateNavigateHistoryCommandHandler() commands.NavigateHistoryCommandHandler {
	return commands.NewNavigateHistoryCommandHandler(c.planner)
}

func (c *CompositionRoot) CreateGetCurrentRoundQueryHandler() queries.GetCurrentRoundQueryHandler {
	return queries.NewGetCurrentRoundQueryHandler(c.planner)
}

func (c *CompositionRoot) CreateGetSavedRoundsQueryHandler() queries.GetSavedRoundsQueryHandler {
	return queries.NewGetSavedRoundsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSavedRoundQueryHandler() queries.GetSavedRoundQueryHandler {
	return queries.NewGetSavedRoundQueryHandler(c.uowFactory.Create().TourRepository())
}

func (c *CompositionRoot) CreateFindNearestIntersectionQueryHandler() queries.FindNearestIntersectionQueryHandler {
	return queries.NewFindNearestIntersectionQueryHandler(c.planner)
}

func (c *CompositionRoot) NewApiServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		InitializeFleet:         c.CreateInitializeFleetCommandHandler(),
		LoadMap:                 c.CreateLoadMapCommandHandler(),
		LoadRequests:            c.CreateLoadRequestsCommandHandler(),
		ComputeRound:            c.CreateComputeRoundCommandHandler(),
		ChangeStop:              c.CreateChangeStopCommandHandler(),
		ChangeWarehouse:         c.CreateChangeWarehouseCommandHandler(),
		NavigateHistory:         c.CreateNavigateHistoryCommandHandler(),
		GetCurrentRound:         c.CreateGetCurrentRoundQueryHandler(),
		GetSavedRounds:          c.CreateGetSavedRoundsQueryHandler(),
		GetSavedRound:           c.CreateGetSavedRoundQueryHandler(),
		FindNearestIntersection: c.CreateFindNearestIntersectionQueryHandler(),
	})
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRefineRoundCommandHandler(),
		c.configs.RefineSchedule,
		c.configs.RefineBudget,
		c.logger,
	)
}

// Close flushes pending tour events.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) tourUoWFactory() commands.TourUoWFactory {
	return FuncTourUoWFactory(func() commands.TourUoW {
		return c.uowFactory.Create()
	})
}

type FuncTourUoWFactory func() commands.TourUoW

func (f FuncTourUoWFactory) Create() commands.TourUoW {
	return f()
}
