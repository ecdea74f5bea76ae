package cli

import (
	"fmt"
	"strings"

	"cvmatch/internal/ai"

	"github.com/spf13/cobra"
)

var (
	// Version information - can be set during build with ldflags
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionVerbose bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print version information for cvmatch.

With --verbose the command also checks AI model availability and reports
the circuit breaker state of each AI operation.`,
	RunE: runVersion,
}

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "Check AI model availability and circuit breaker health")
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Printf("cvmatch version %s\n", Version)
	fmt.Printf("Git commit: %s\n", GitCommit)
	fmt.Printf("Build date: %s\n", BuildDate)

	if !versionVerbose {
		return nil
	}

	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	aiService, err := ai.NewService(cfg, logger, getObservabilityFromContext(cmd.Context()))
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() {
		if closeErr := aiService.Close(); closeErr != nil {
			logger.Warn("Failed to close AI service", "error", closeErr)
		}
	}()

	info := aiService.GetModelInfo(cmd.Context())
	stats := aiService.GetCircuitBreakerStats()
	fmt.Print(diagnosticsReport(info, stats))
	return nil
}

// diagnosticsReport renders the model availability check and circuit breaker
// state for the verbose version output.
func diagnosticsReport(info *ai.ModelInfo, stats map[string]any) string {
	var output strings.Builder

	output.WriteString("\nAI diagnostics:\n")

	status := "unavailable"
	if info != nil && info.Available {
		status = "available"
	}
	if info != nil {
		fmt.Fprintf(&output, "  Model: %s (%s)\n", info.Name, status)
		if info.Error != "" {
			fmt.Fprintf(&output, "  Model error: %s\n", info.Error)
		}
	}

	health := "degraded"
	if healthy, ok := stats["overall_healthy"].(bool); ok && healthy {
		health = "healthy"
	}
	fmt.Fprintf(&output, "  Circuit breakers: %s\n", health)

	for _, key := range []string{"tag_operations", "embed_operations", "model_operations"} {
		opStats, ok := stats[key].(map[string]any)
		if !ok {
			continue
		}
		state := "disabled"
		if enabled, _ := opStats["enabled"].(bool); enabled {
			state, _ = opStats["state"].(string)
		}
		fmt.Fprintf(&output, "    %s: %s\n", key, state)
	}

	return output.String()
}
