package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cvmatch/internal/cli"
	"cvmatch/internal/config"
	"cvmatch/internal/errors"
	"cvmatch/internal/observability"
)

func main() {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logging
	logger, err := errors.New(cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Pull the Gemini API key from Vault when configured
	if err := config.ApplyVaultSecrets(cfg, logger); err != nil {
		logger.LogError(err, "Failed to apply Vault secrets")
		os.Exit(1)
	}

	// Set up tracing and metrics
	obsConfig := observability.GetObservabilityConfig(cfg, cli.Version)
	om, err := observability.NewObservabilityManager(obsConfig, cfg)
	if err != nil {
		logger.LogError(err, "Failed to initialize observability")
		os.Exit(1)
	}

	// Log startup
	logger.Info("Starting cvmatch application",
		"version", cli.Version,
		"log_level", cfg.App.LogLevel,
		"ai_provider", cfg.AI.Provider)

	// Execute command with cancellable context
	execErr := cli.Execute(ctx, cfg, logger, om)

	// Flush exporters before exiting
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := om.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Observability shutdown failed", "error", err)
	}

	if execErr != nil {
		logger.LogError(execErr, "Application execution failed")
		os.Exit(1)
	}
}
