package cli

import (
	"context"
	"fmt"

	"cvmatch/internal/ai"
	"cvmatch/internal/common"
	"cvmatch/internal/document"
	"cvmatch/internal/extract"
	"cvmatch/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-pdf]",
	Short: "Extract a structured profile from a resume PDF",
	Long: `Analyze a resume PDF and extract a structured profile containing
education, skills, and experience. Extraction combines an AI token
classifier with section parsing and keyword fallbacks, so a sparse resume
still yields a fully populated profile.

The extracted profile includes:
- Education line (university and major)
- Deduplicated, display-formatted skill list
- Experience marker sentences
- The caller-supplied preferred location`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var (
	analyzeConfig   common.CommandConfig
	analyzeLocation string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	analyzeCmd.Flags().StringVarP(&analyzeLocation, "location", "l", "", "Preferred work location carried into the profile")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}
	om := getObservabilityFromContext(cmd.Context())

	aiService, err := ai.NewService(cfg, logger, om)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() {
		if closeErr := aiService.Close(); closeErr != nil {
			logger.Warn("Failed to close AI service", "error", closeErr)
		}
	}()

	extractor, err := document.NewPDFExtractor(cmd.Context(), logger)
	if err != nil {
		return fmt.Errorf("failed to create PDF extractor: %w", err)
	}

	analyzer := extract.NewAnalyzer(extractor, aiService.Provider, logger)

	input := types.AnalyzeInput{
		DocumentPath: args[0],
		Location:     analyzeLocation,
	}

	logDetails := func(input types.AnalyzeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume analysis",
			"document", input.DocumentPath,
			"location", input.Location,
			"output_format", cfg.OutputFormat)
	}

	analyzeOperation := func(ctx context.Context, input types.AnalyzeInput) (types.Profile, error) {
		profile, err := analyzer.Analyze(ctx, input.DocumentPath, input.Location)
		if om != nil {
			om.GetMetrics().RecordDocumentAnalyzed(ctx, err == nil, len(profile.Skills), om)
		}
		return profile, err
	}

	err = common.RunDocumentCommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args[0],
		cfg.App.MaxFileSize,
		input,
		analyzeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	logger.Info("Resume analysis completed successfully")
	return nil
}
