package cli

import (
	"fmt"

	"cvmatch/internal/common"
	"cvmatch/internal/corpus"

	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter [corpus-xlsx]",
	Short: "Filter a job corpus down to relevant postings",
	Long: `Apply the relevance filter to a scraped job corpus and write the
surviving records to a new workbook. A record is kept when its title or
job field matches the inclusion patterns and no exclusion pattern fires;
an exclusion hit is overridden when the title contains the standalone
word "it". Row order is preserved.`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

var filterOutput string

func init() {
	filterCmd.Flags().StringVarP(&filterOutput, "output", "o", "", "Output workbook path (required)")
	_ = filterCmd.MarkFlagRequired("output")
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	fileProcessor := common.NewFileProcessor(logger)
	if err := fileProcessor.ValidateCorpus(args[0]); err != nil {
		return err
	}
	if err := fileProcessor.ValidateOutputFile(filterOutput); err != nil {
		return err
	}

	loader := corpus.NewLoader(cfg.Corpus.Sheet, logger)
	records, err := loader.Load(args[0])
	if err != nil {
		return err
	}

	kept := corpus.FilterRelevant(records)
	workTypeMisses, locationMisses := corpus.AdvisoryMismatches(kept)

	if err := corpus.WriteWorkbook(kept, filterOutput); err != nil {
		return fmt.Errorf("failed to write filtered corpus: %w", err)
	}

	logger.Info("Corpus filtered",
		"input", args[0],
		"output", filterOutput,
		"records_in", len(records),
		"records_kept", len(kept),
		"off_preference_work_type", workTypeMisses,
		"off_preference_location", locationMisses)
	return nil
}
