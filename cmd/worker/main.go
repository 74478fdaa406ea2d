package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/safarino/trip-planner-core/internal/adapters/amqpevents"
	memfacilities "github.com/safarino/trip-planner-core/internal/adapters/memory/facilities"
	memrecommend "github.com/safarino/trip-planner-core/internal/adapters/memory/recommend"
	memtriprepo "github.com/safarino/trip-planner-core/internal/adapters/memory/triprepo"
	memweather "github.com/safarino/trip-planner-core/internal/adapters/memory/weather"
	memwiki "github.com/safarino/trip-planner-core/internal/adapters/memory/wiki"
	"github.com/safarino/trip-planner-core/internal/adapters/postgres"
	pgtriprepo "github.com/safarino/trip-planner-core/internal/adapters/postgres/triprepo"
	"github.com/safarino/trip-planner-core/internal/app/planner"
	platformclock "github.com/safarino/trip-planner-core/internal/platform/clock"
	"github.com/safarino/trip-planner-core/internal/platform/config"
	"github.com/safarino/trip-planner-core/internal/platform/logging"
	triprepoport "github.com/safarino/trip-planner-core/internal/ports/out/triprepo"
)

// The worker consumes external change events and replans affected trips.
// It shares the trip store with the API process, so it normally runs against
// the postgres backend.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required")
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("invalid logging config: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	var (
		tripRepo triprepoport.Repository
		cleanup  func()
	)
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("connect postgres", zap.Error(err))
		}
		cleanup = pool.Close
		tripRepo = pgtriprepo.NewRepo(pool)
	default:
		tripRepo = memtriprepo.NewRepo()
	}
	if cleanup != nil {
		defer cleanup()
	}

	orch := planner.NewOrchestrator(
		memfacilities.NewClient(),
		memweather.NewClient(),
		memwiki.NewClient(),
		memrecommend.NewClient(),
		tripRepo,
		platformclock.NewSystemClock(),
		logger,
	)

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		logger.Fatal("connect amqp", zap.Error(err))
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listener := amqpevents.NewListener(conn, orch, tripRepo, logger)
	if err := listener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("listener stopped", zap.Error(err))
	}
	logger.Info("worker stopped")
}
