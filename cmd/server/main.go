// Package main is the entry point for the market gate service.
// The service answers whether the US equities market is open at an instant
// and authorizes transfers against that decision.
//
// The application follows the same layering throughout:
// - Pure calendar engine in internal/modules/market_hours
// - Dependency injection via DI container
// - Service layer for transfer authorization
// - HTTP handlers for API endpoints
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/marketgate/internal/config"
	"github.com/aristath/marketgate/internal/di"
	"github.com/aristath/marketgate/internal/events"
	"github.com/aristath/marketgate/internal/server"
	"github.com/aristath/marketgate/pkg/logger"
)

// main orchestrates the startup sequence:
// 1. Loads configuration from environment variables (.env supported)
// 2. Initializes logging system
// 3. Wires all dependencies via DI container
// 4. Starts HTTP server and the cron scheduler
// 5. Waits for shutdown signal and performs graceful shutdown
func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting market gate")

	container, jobs, err := di.Wire(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	srv := server.New(server.Config{
		Log:       log,
		Config:    cfg,
		Container: container,
		Jobs:      jobs,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Evaluate once so the first status is available before the first tick
	if err := container.Scheduler.RunNow(jobs.MarketStatus); err != nil {
		log.Error().Err(err).Msg("Initial market status check failed")
	}
	container.Scheduler.Start()

	container.EventManager.Emit(events.SystemStatusChanged, "main", map[string]interface{}{
		"state":     "running",
		"timestamp": time.Now().Format(time.RFC3339),
	})

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	container.EventManager.Emit(events.SystemStatusChanged, "main", map[string]interface{}{
		"state":     "stopping",
		"timestamp": time.Now().Format(time.RFC3339),
	})

	// Stop scheduler first so no job emits during shutdown
	container.Scheduler.Stop()

	// Give in-flight requests up to 10 seconds to finish
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
