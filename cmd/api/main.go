// Command api is the Carefinder API server.
//
// Usage:
//
//	carefinder-api
//	API_PORT=8080 carefinder-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/mgcare/carefinder/internal/api"
	"github.com/mgcare/carefinder/internal/cache"
	"github.com/mgcare/carefinder/internal/config"
	"github.com/mgcare/carefinder/internal/cqc"
	"github.com/mgcare/carefinder/internal/dataset"
	"github.com/mgcare/carefinder/internal/postcode"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Load bundled registers
	snapshot := dataset.Load(cfg.DataDir, logger)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Upstream clients
	cqcClient := cqc.NewClient(cfg.CQCBaseURL, cfg.CQCSubscriptionKey, cfg.CQCRequestsPerMin, cfg.EnrichBatchSize, logger)
	postcodes := postcode.NewClient(cfg.PostcodesBaseURL, appCache, logger)

	// Create router
	router := api.NewRouter(api.Deps{
		Snapshot:  snapshot,
		CQC:       cqcClient,
		Postcodes: postcodes,
		Cache:     appCache,
		Config:    cfg,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Carefinder API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
