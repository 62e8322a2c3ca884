package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ozcanmengullu/weather-dashboard/internal/api"
	"github.com/ozcanmengullu/weather-dashboard/internal/persist"
	"github.com/ozcanmengullu/weather-dashboard/internal/session"
	"github.com/ozcanmengullu/weather-dashboard/internal/storage"
	"github.com/ozcanmengullu/weather-dashboard/internal/weather"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file loaded", "err", err)
	}

	apiKey := mustEnv("OPENWEATHER_API_KEY")
	redisURL := mustEnv("REDIS_URL")
	databaseURL := os.Getenv("DATABASE_URL") // optional: enables the search log
	sessionID := getEnv("SESSION_ID", "default")
	port := getEnv("PORT", "8080")

	ctx := context.Background()

	// Connect to Redis for durable session state.
	redisClient, err := persist.Connect(ctx, redisURL)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()

	// Optional Postgres search log.
	var recorder session.SearchRecorder
	var searchLog api.SearchLog
	var dbPinger api.Pinger
	if databaseURL != "" {
		pool, err := storage.Connect(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		if err := storage.RunMigrations(ctx, pool); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		log.Info("migrations applied")

		repo := storage.NewRepository(pool)
		recorder = repo
		searchLog = repo
		dbPinger = pingFunc(pool.Ping)
	}

	// Wire the core engine.
	client := weather.NewClient(apiKey)
	persistStore := persist.NewStore(redisClient, sessionID)
	store, err := session.New(ctx, client, persistStore, recorder, log)
	if err != nil {
		return fmt.Errorf("restoring session state: %w", err)
	}

	handlers := api.NewHandlers(store, searchLog, log)

	router := api.NewRouter(handlers, &redisPingerAdapter{client: redisClient}, dbPinger, log)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable not set", "key", key)
		os.Exit(1)
	}
	return v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// redisPingerAdapter adapts redis.Client to the api health-check interface.
type redisPingerAdapter struct {
	client *redis.Client
}

func (r *redisPingerAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// pingFunc adapts a plain ping function to the api health-check interface.
type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }
