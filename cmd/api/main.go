package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/safarino/trip-planner-core/internal/adapters/httpapi"
	memfacilities "github.com/safarino/trip-planner-core/internal/adapters/memory/facilities"
	memrecommend "github.com/safarino/trip-planner-core/internal/adapters/memory/recommend"
	memtriprepo "github.com/safarino/trip-planner-core/internal/adapters/memory/triprepo"
	memweather "github.com/safarino/trip-planner-core/internal/adapters/memory/weather"
	memwiki "github.com/safarino/trip-planner-core/internal/adapters/memory/wiki"
	"github.com/safarino/trip-planner-core/internal/adapters/postgres"
	pgtriprepo "github.com/safarino/trip-planner-core/internal/adapters/postgres/triprepo"
	"github.com/safarino/trip-planner-core/internal/adapters/rediscache"
	"github.com/safarino/trip-planner-core/internal/app/planner"
	platformclock "github.com/safarino/trip-planner-core/internal/platform/clock"
	"github.com/safarino/trip-planner-core/internal/platform/config"
	"github.com/safarino/trip-planner-core/internal/platform/logging"
	triprepoport "github.com/safarino/trip-planner-core/internal/ports/out/triprepo"
	portwiki "github.com/safarino/trip-planner-core/internal/ports/out/wiki"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
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

	var wiki portwiki.Service = memwiki.NewClient()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		wiki = rediscache.NewWikiCache(rdb, wiki, cfg.WikiCacheTTL, logger)
		defer func() { _ = rdb.Close() }()
	}

	orch := planner.NewOrchestrator(
		memfacilities.NewClient(),
		memweather.NewClient(),
		wiki,
		memrecommend.NewClient(),
		tripRepo,
		platformclock.NewSystemClock(),
		logger,
	)

	handler := httpapi.NewRouter(httpapi.NewServer(orch, logger))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("api listening", zap.Int("port", cfg.Port), zap.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
