package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/luminafin/lumina/internal/adapter/collaborator"
	httpAdapter "github.com/luminafin/lumina/internal/adapter/http"
	"github.com/luminafin/lumina/internal/adapter/http/handler"
	"github.com/luminafin/lumina/internal/adapter/idgen"
	"github.com/luminafin/lumina/internal/adapter/repository"
	fileRepo "github.com/luminafin/lumina/internal/adapter/repository/file"
	postgresRepo "github.com/luminafin/lumina/internal/adapter/repository/postgres"
	redisRepo "github.com/luminafin/lumina/internal/adapter/repository/redis"
	"github.com/luminafin/lumina/internal/infrastructure/config"
	"github.com/luminafin/lumina/internal/infrastructure/logger"
	"github.com/luminafin/lumina/internal/infrastructure/metrics"
	"github.com/luminafin/lumina/internal/infrastructure/postgres"
	"github.com/luminafin/lumina/internal/infrastructure/redis"
	"github.com/luminafin/lumina/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Select the snapshot backend.
	var store usecase.SnapshotStore
	switch cfg.SnapshotBackend {
	case config.BackendFile:
		store = fileRepo.NewSnapshotRepository(cfg.SnapshotFile)
		appLogger.Info().Str("path", cfg.SnapshotFile).Msg("using file snapshot store")

	case config.BackendRedis:
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		store = redisRepo.NewSnapshotRepository(client)
		appLogger.Info().Msg("using redis snapshot store")

	case config.BackendPostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		store = postgresRepo.NewSnapshotRepository(pool)
		appLogger.Info().Msg("using postgres snapshot store")

	default:
		log.Fatal().Str("backend", cfg.SnapshotBackend).Msg("unknown snapshot backend")
	}
	store = repository.NewInstrumentedStore(store, m)

	// Initialize use cases
	ledgerUC, err := usecase.NewLedgerUseCase(ctx, store, idgen.NewULIDGenerator(), appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize ledger")
	}
	reportUC := usecase.NewReportUseCase(ledgerUC)

	// Initialize handlers
	var assistantHandler *handler.AssistantHandler
	if cfg.AssistantEnabled() {
		gemini := collaborator.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
		assistantUC := usecase.NewAssistantUseCase(ledgerUC, gemini, gemini)
		assistantHandler = handler.NewAssistantHandler(assistantUC, m)
		appLogger.Info().Str("model", cfg.GeminiModel).Msg("assistant enabled")
	} else {
		appLogger.Info().Msg("assistant disabled: no API key configured")
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		LedgerHandler:    handler.NewLedgerHandler(ledgerUC, m),
		ReportHandler:    handler.NewReportHandler(reportUC),
		SnapshotHandler:  handler.NewSnapshotHandler(ledgerUC, m),
		AssistantHandler: assistantHandler,
		HealthHandler:    handler.NewHealthHandler(store),
		Logger:           appLogger,
		Metrics:          m,
		CORSOrigins:      cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
	appLogger.Info().Msg("server stopped")
}
