package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"routeplanner/cmd"
	httpin "routeplanner/internal/adapters/in/http"
	"routeplanner/internal/adapters/out/postgres"
	"routeplanner/internal/core/domain/model/courier"
	"routeplanner/internal/core/domain/services"
	"routeplanner/internal/core/domain/services/tsp"
	"routeplanner/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer func() {
		if err := app.Close(); err != nil {
			log.Errorf("Failed to close tour publisher: %v", err)
		}
	}()

	if err = app.Bootstrap(ctx); err != nil {
		log.Fatalf("Failed to bootstrap the planner: %v", err)
	}

	jobManager := app.NewJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT", "8080"),
		DBHost:               goDotEnvVariable("DB_HOST", "localhost"),
		DBPort:               goDotEnvVariable("DB_PORT", "5432"),
		DBUser:               goDotEnvVariable("DB_USER", "postgres"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD", ""),
		DBName:               goDotEnvVariable("DB_NAME", "routeplanner"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE", "disable"),
		KafkaHost:            goDotEnvVariable("KAFKA_HOST", "localhost:9092"),
		KafkaToursSavedTopic: goDotEnvVariable("KAFKA_TOURS_SAVED_TOPIC", "tours.saved"),
		MapFile:              goDotEnvVariable("MAP_FILE", ""),
		CourierCount:         intVariable("COURIER_COUNT", 1),
		CourierSpeed:         floatVariable("COURIER_SPEED_KMH", courier.DefaultSpeed),
		DayStartHour:         intVariable("DAY_START_HOUR", 8),
		DayStartMinute:       intVariable("DAY_START_MINUTE", 0),
		Dwell:                durationVariable("DWELL_TIME", services.DefaultDwell),
		SolverTimeLimit:      durationVariable("SOLVER_TIME_LIMIT", tsp.DefaultTimeLimit),
		SolverWorkers:        intVariable("SOLVER_WORKERS", 0),
		RefineSchedule:       goDotEnvVariable("REFINE_SCHEDULE", jobs.DefaultRefineSchedule),
		RefineBudget:         durationVariable("REFINE_BUDGET", time.Minute),
	}
	return config
}

func goDotEnvVariable(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func intVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func floatVariable(key string, fallback float64) float64 {
	raw := goDotEnvVariable(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key, "")
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string) {
	e, err := httpin.NewEcho(app.NewApiServer())
	if err != nil {
		log.Fatalf("Failed to build web server: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
