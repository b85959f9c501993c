// Copyright (c) 2026 Planora. All rights reserved.

// Command api is the entry point for the Planora HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/planora/planora/internal/api"
	"github.com/planora/planora/internal/platform/config"
	"github.com/planora/planora/internal/platform/constants"
	"github.com/planora/planora/internal/platform/migration"
	pgstore "github.com/planora/planora/internal/platform/postgres"
	redisstore "github.com/planora/planora/internal/platform/redis"
	"github.com/planora/planora/internal/platform/sec"
	"github.com/planora/planora/internal/trips/expense"
	"github.com/planora/planora/internal/trips/marker"
	"github.com/planora/planora/internal/trips/place"
	"github.com/planora/planora/internal/trips/plan"
	"github.com/planora/planora/internal/trips/route"
	"github.com/planora/planora/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "planora"))
	slog.SetDefault(log)

	log.Info("[Planora] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "planora"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application context drives background workers (rate-limit cleanup)
	// and is cancelled when the process begins shutting down.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	signing, err := sec.NewSigningContext(cfg.JWTSecret, constants.AuthIssuer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	must(log, err, "initialize signing context")
	tokenService := sec.NewTokenService(signing)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	refreshStore := auth.NewRefreshTokenStore(rdb)
	authService := auth.NewService(userRepository, refreshStore, tokenService, signing)
	authHandler := auth.NewHandler(authService)

	planRepository := plan.NewPostgresRepository(pool)
	inviteCodes := plan.NewInviteCodeStore(rdb)
	planService := plan.NewService(planRepository, inviteCodes)
	planHandler := plan.NewHandler(planService)

	expenseService := expense.NewService(expense.NewPostgresRepository(pool), planRepository)
	expenseHandler := expense.NewHandler(expenseService)

	markerService := marker.NewService(marker.NewPostgresRepository(pool), planRepository)
	markerHandler := marker.NewHandler(markerService)

	searchClient := place.NewHTTPSearchClient(cfg.PlaceSearchBaseURL, cfg.PlaceSearchAPIKey)
	placeService := place.NewService(place.NewPostgresRepository(pool), searchClient, planRepository)
	placeHandler := place.NewHandler(placeService)

	routeService := route.NewService(route.NewPostgresRepository(pool), planRepository)
	routeHandler := route.NewHandler(routeService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Plan:      planHandler,
		Expense:   expenseHandler,
		Marker:    markerHandler,
		Place:     placeHandler,
		Route:     routeHandler,
	}

	server := api.NewServer(appCtx, cfg, log, tokenService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Stop background workers before draining connections.
	appCancel()

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
