package cli

import (
	"context"
	"fmt"
	"time"

	"cvmatch/internal/ai"
	"cvmatch/internal/common"
	"cvmatch/internal/corpus"
	"cvmatch/internal/document"
	"cvmatch/internal/errors"
	"cvmatch/internal/extract"
	"cvmatch/internal/match"
	"cvmatch/internal/observability"
	"cvmatch/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [resume-pdf] [corpus-xlsx]",
	Short: "Rank a job corpus against a resume by embedding similarity",
	Long: `Extract a profile from a resume PDF, embed it alongside every job in
the corpus workbook, and print the top matches by cosine similarity.

The corpus argument is optional when corpus.path is configured. Passing
--location all (or omitting it) disables the location restriction; a
location that matches no job falls back to the unrestricted ranking.
With --watch the command keeps running and re-ranks whenever the corpus
workbook changes on disk.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		if matchTopN == 0 {
			matchTopN = cfg.App.DefaultTopN
		}
		if err := common.ValidateResultCount(matchTopN); err != nil {
			return err
		}
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var (
	matchConfig       common.CommandConfig
	matchLocation     string
	matchTopN         int
	matchRelevantOnly bool
	matchWatch        bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	matchCmd.Flags().StringVarP(&matchLocation, "location", "l", match.LocationAll, "Restrict matches to this location ('all' disables)")
	matchCmd.Flags().IntVarP(&matchTopN, "top", "n", 0, "Number of matches to return (default: app.defaultTopN)")
	matchCmd.Flags().BoolVar(&matchRelevantOnly, "relevant-only", false, "Apply the relevance filter to the corpus before ranking")
	matchCmd.Flags().BoolVar(&matchWatch, "watch", false, "Keep running and re-rank when the corpus file changes")

	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}
	om := getObservabilityFromContext(cmd.Context())

	corpusPath := cfg.Corpus.Path
	if len(args) == 2 {
		corpusPath = args[1]
	}
	if corpusPath == "" {
		return fmt.Errorf("no corpus provided: pass a corpus workbook or set corpus.path")
	}

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
	loader := corpus.NewLoader(cfg.Corpus.Sheet, logger)
	ranker := match.NewRanker(aiService.Provider, logger)

	fileProcessor := common.NewFileProcessor(logger)
	if err := fileProcessor.ValidateDocument(args[0], cfg.App.MaxFileSize); err != nil {
		return err
	}
	if err := fileProcessor.ValidateCorpus(corpusPath); err != nil {
		return err
	}

	logger.Info("Starting job matching",
		"document", args[0],
		"corpus", corpusPath,
		"location", matchLocation,
		"top_n", matchTopN,
		"relevant_only", matchRelevantOnly,
		"output_format", matchConfig.OutputFormat)

	profile, err := analyzer.Analyze(cmd.Context(), args[0], matchLocation)
	if om != nil {
		om.GetMetrics().RecordDocumentAnalyzed(cmd.Context(), err == nil, len(profile.Skills), om)
	}
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	rankAndOutput := func(ctx context.Context, records []types.JobRecord) error {
		if matchRelevantOnly {
			before := len(records)
			records = corpus.FilterRelevant(records)
			workTypeMisses, locationMisses := corpus.AdvisoryMismatches(records)
			logger.Debug("Relevance filter applied",
				"before", before, "after", len(records),
				"off_preference_work_type", workTypeMisses,
				"off_preference_location", locationMisses)
		}

		start := time.Now()
		matches, err := ranker.Rank(ctx, profile, records, matchLocation, matchTopN)
		if om != nil {
			om.GetMetrics().RecordMatchRanked(ctx, err == nil, time.Since(start), om)
		}
		if err != nil {
			return fmt.Errorf("failed to rank corpus: %w", err)
		}

		outputHandler := common.NewOutputHandler(logger)
		return outputHandler.HandleOutput(types.MatchOutput{
			Profile: profile,
			Matches: matches,
		}, matchConfig)
	}

	if matchWatch || cfg.Corpus.Watch {
		return runMatchWatch(cmd.Context(), loader, corpusPath, cfg.Corpus.DebounceDelay, rankAndOutput, logger, om)
	}

	records, err := loader.Load(corpusPath)
	if err != nil {
		return err
	}
	if err := rankAndOutput(cmd.Context(), records); err != nil {
		return err
	}
	logger.Info("Job matching completed successfully")
	return nil
}

// runMatchWatch ranks once up front, then re-ranks on every corpus reload
// until the context is cancelled.
func runMatchWatch(ctx context.Context, loader *corpus.Loader, corpusPath string, debounce time.Duration, rankAndOutput func(context.Context, []types.JobRecord) error, logger *errors.Logger, om *observability.ObservabilityManager) error {
	var watcher *corpus.Watcher

	onReload := func(count int) {
		if om != nil {
			om.GetMetrics().RecordCorpusReload(ctx, count, om)
		}
		if err := rankAndOutput(ctx, watcher.Snapshot()); err != nil {
			logger.LogError(err, "Re-ranking after corpus reload failed")
		}
	}

	watcher, err := corpus.NewWatcher(loader, corpusPath, debounce, onReload, logger)
	if err != nil {
		return err
	}

	if err := rankAndOutput(ctx, watcher.Snapshot()); err != nil {
		return err
	}

	if err := watcher.Start(); err != nil {
		return err
	}
	logger.Info("Watching corpus for changes, press Ctrl+C to stop", "corpus", corpusPath)

	<-ctx.Done()
	return watcher.Stop()
}
