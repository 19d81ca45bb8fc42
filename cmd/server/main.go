package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdugdh24/insightsphere-backend/internal/config"
	"github.com/gdugdh24/insightsphere-backend/internal/infrastructure/container"
	"github.com/gdugdh24/insightsphere-backend/internal/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	// Cancelled on SIGINT/SIGTERM; the supervisor tree shuts down with it
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize dependency injection container
	app, err := container.NewContainer(ctx, cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing application")
		}
	}()

	logging.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Str("storage", cfg.Storage.Type).
		Msg("Server starting")

	if err := app.Tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor stopped")
		return
	}

	logging.Info().Msg("Server exited properly")
}
