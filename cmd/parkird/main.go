package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"smart-parkir-backend/config"
	"smart-parkir-backend/internal/api"
	"smart-parkir-backend/internal/db"
	"smart-parkir-backend/internal/engine"
	"smart-parkir-backend/internal/notification"
	"smart-parkir-backend/internal/seed"
	"smart-parkir-backend/internal/store"
	"smart-parkir-backend/internal/token"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "parkir-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	loc, err := time.LoadLocation(cfg.Parking.Timezone)
	if err != nil {
		logger.Fatalf("invalid timezone %q: %v", cfg.Parking.Timezone, err)
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Install the fixed spot inventory and directories. Idempotent, so live
	// occupancy survives a restart.
	fixture, err := seed.Load(cfg.Parking.SeedPath)
	if err != nil {
		logger.Fatalf("failed to load seed fixture: %v", err)
	}
	if err := seed.Apply(gormDB, fixture); err != nil {
		logger.Fatalf("failed to seed database: %v", err)
	}
	logger.Printf("seeded %d spots, %d customers, %d guards",
		len(fixture.Spots), len(fixture.Customers), len(fixture.Guards))

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	// Push notifications are optional; the parking core works without them.
	var webpushOptions *webpush.Options
	var engineOpts []engine.Option
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}

		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		pool.Start(ctx)
		engineOpts = append(engineOpts, engine.WithReleaseHook(pool.Dispatch))
		logger.Printf("notification worker pool started with %d workers", cfg.WorkerPool.Size)
	} else {
		logger.Println("VAPID keys not configured; push notifications disabled")
	}

	eng := engine.New(appStore, token.NewGenerator(), engineOpts...)

	// Initialize router
	router := api.NewRouter(appStore, eng, webpushOptions, api.RouterConfig{
		RateLimitPerSec: cfg.Server.RateLimitPerSec,
		RateLimitBurst:  cfg.Server.RateLimitBurst,
		CacheTTL:        time.Duration(cfg.Server.CacheTTLSeconds) * time.Second,
		Timezone:        loc,
	})
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
