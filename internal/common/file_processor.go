package common

import (
	"fmt"
	"os"
	"path/filepath"

	"cvmatch/internal/errors"
	"cvmatch/internal/utils"
)

// FileProcessor handles common file operations
type FileProcessor struct {
	logger *errors.Logger
}

// NewFileProcessor creates a new file processor instance
func NewFileProcessor(logger *errors.Logger) *FileProcessor {
	return &FileProcessor{logger: logger}
}

// WriteFile writes content to a file with directory creation
func (fp *FileProcessor) WriteFile(filename, content string) error {
	dir := filepath.Dir(filename)
	if dir != "." {
		err := os.MkdirAll(dir, 0750)
		if err != nil {
			return errors.NewIOError("DIRECTORY_CREATE_FAILED",
				fmt.Sprintf("Cannot create directory: %s", dir), err)
		}
	}

	err := os.WriteFile(filename, []byte(content), 0600)
	if err != nil {
		return errors.NewIOError("FILE_WRITE_FAILED",
			fmt.Sprintf("Cannot write file: %s", filename), err)
	}

	return nil
}

// ValidateDocument validates a resume document path before extraction. The
// size limit guards against feeding arbitrarily large files to the PDF
// parser; zero disables it.
func (fp *FileProcessor) ValidateDocument(filename string, maxSize int64) error {
	if err := utils.ValidateInputFile(filename); err != nil {
		return errors.NewValidationError("INVALID_INPUT_FILE",
			fmt.Sprintf("Invalid file %s", filename), err)
	}

	if err := utils.ValidateFileSize(filename, maxSize); err != nil {
		return errors.NewValidationError("FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds size limit: %s", filename), err)
	}

	// Warn but do not fail on unexpected extensions; the parser decides.
	if !utils.IsPDFFile(filename) {
		if fp.logger != nil {
			fp.logger.Warn("File does not have a .pdf extension",
				"filename", filename)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: %s does not have a .pdf extension\n", filename)
		}
	}

	return nil
}

// ValidateCorpus validates a job corpus workbook path.
func (fp *FileProcessor) ValidateCorpus(filename string) error {
	if err := utils.ValidateInputFile(filename); err != nil {
		return errors.NewValidationError("INVALID_CORPUS_FILE",
			fmt.Sprintf("Invalid corpus file %s", filename), err)
	}

	if !utils.IsSpreadsheetFile(filename) {
		if fp.logger != nil {
			fp.logger.Warn("Corpus file does not have a spreadsheet extension",
				"filename", filename)
		}
	}

	return nil
}

// ValidateOutputFile validates output file path
func (fp *FileProcessor) ValidateOutputFile(filename string) error {
	if filename == "" {
		return nil // stdout is valid
	}

	if err := utils.ValidateOutputFile(filename); err != nil {
		return errors.NewValidationError("INVALID_OUTPUT_FILE",
			fmt.Sprintf("Invalid output file: %s", filename), err)
	}

	return nil
}
