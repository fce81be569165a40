// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

// Command api is the entry point for the MangaVault HTTP API server.
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

	"github.com/hoanganhvu/mangavault/internal/api"
	"github.com/hoanganhvu/mangavault/internal/core/chapter"
	"github.com/hoanganhvu/mangavault/internal/core/manga"
	"github.com/hoanganhvu/mangavault/internal/library/bookmark"
	"github.com/hoanganhvu/mangavault/internal/library/download"
	"github.com/hoanganhvu/mangavault/internal/library/history"
	"github.com/hoanganhvu/mangavault/internal/platform/config"
	"github.com/hoanganhvu/mangavault/internal/platform/constants"
	"github.com/hoanganhvu/mangavault/internal/platform/migration"
	pgstore "github.com/hoanganhvu/mangavault/internal/platform/postgres"
	redisstore "github.com/hoanganhvu/mangavault/internal/platform/redis"
	"github.com/hoanganhvu/mangavault/internal/platform/sec"
	"github.com/hoanganhvu/mangavault/internal/users"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "mangavault"))
	slog.SetDefault(log)

	log.Info("[MangaVault] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "mangavault"))
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
	jwtSvc, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, constants.AccessTokenTTL)
	must(log, err, "initialize jwt service")

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
	userRepository := users.NewUserRepository(pool)
	revokedTokenRepository := users.NewRevokedTokenRepository(rdb)
	userService := users.NewService(userRepository, revokedTokenRepository, jwtSvc)
	userHandler := users.NewHandler(userService)

	mangaRepository := manga.NewMangaRepository(pool)
	mangaService := manga.NewService(mangaRepository)
	mangaHandler := manga.NewHandler(mangaService)

	historyRepository := history.NewHistoryRepository(pool)
	historyService := history.NewService(historyRepository)
	historyHandler := history.NewHandler(historyService)

	chapterRepository := chapter.NewChapterRepository(pool)
	chapterService := chapter.NewService(chapterRepository, historyService)
	chapterHandler := chapter.NewHandler(chapterService)

	bookmarkRepository := bookmark.NewBookmarkRepository(pool)
	bookmarkService := bookmark.NewService(bookmarkRepository)
	bookmarkHandler := bookmark.NewHandler(bookmarkService)

	downloadRepository := download.NewDownloadRepository(pool)
	downloadService := download.NewService(downloadRepository)
	downloadHandler := download.NewHandler(downloadService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Users:     userHandler,
		Manga:     mangaHandler,
		Chapter:   chapterHandler,
		Bookmark:  bookmarkHandler,
		Download:  downloadHandler,
		History:   historyHandler,
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, log, jwtSvc, revokedTokenRepository, handlers)

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
