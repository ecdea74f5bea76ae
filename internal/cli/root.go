package cli

import (
	"context"
	"fmt"

	"cvmatch/internal/config"
	"cvmatch/internal/errors"
	"cvmatch/internal/observability"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}
type obsKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}
var obsKey = obsKeyType{}

var rootCmd = &cobra.Command{
	Use:   "cvmatch",
	Short: "A CLI tool for extracting resume profiles and ranking job matches",
	Long: `Cvmatch extracts a structured profile (education, skills, experience)
from a resume PDF and ranks a job corpus against it by embedding similarity.
It can also filter a scraped job corpus down to relevant postings.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger, om *observability.ObservabilityManager) error {
	// Attach the config, logger, and observability manager to the context,
	// making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	ctx = context.WithValue(ctx, obsKey, om)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg, nil
	}
	return nil, fmt.Errorf("config not found in context")
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) (*errors.Logger, error) {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger, nil
	}
	return nil, fmt.Errorf("logger not found in context")
}

// getObservabilityFromContext returns the observability manager, which may be
// nil when observability is not configured. Metrics calls tolerate nil.
func getObservabilityFromContext(ctx context.Context) *observability.ObservabilityManager {
	om, _ := ctx.Value(obsKey).(*observability.ObservabilityManager)
	return om
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(versionCmd)
}
