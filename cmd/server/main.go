// Package main is the entry point for the book-tracker server. It loads
// configuration, connects MongoDB and Redis, wires the router, and runs
// the HTTP server with graceful shutdown.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shelfmark/book-tracker/internal/api"
	"github.com/shelfmark/book-tracker/internal/infrastructure/config"
	mongodb "github.com/shelfmark/book-tracker/internal/infrastructure/db/mongo"
	redisdb "github.com/shelfmark/book-tracker/internal/infrastructure/db/redis"
	"github.com/shelfmark/book-tracker/internal/infrastructure/queue"
	"github.com/shelfmark/book-tracker/pkg/logger"
)

// @title        Book Tracker API
// @version      1.0
// @description  Personal book-tracking service: accounts, catalog search, saved books.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("session_strategy", cfg.SessionStrategy).
		Msg("starting book-tracker")

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	// --- Redis (session store + readiness probe) ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Async audit trail ---
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, mongodb.NewAuthEventRepository(db), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, db, rdb, dispatcher, log)

	// --- Graceful shutdown ---
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("forced shutdown")
		}
	}()

	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
