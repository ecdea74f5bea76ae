package common

import (
	"context"

	"cvmatch/internal/errors"
)

// DocumentOperationFunc is the signature shared by the document pipeline
// entry points: a validated document path plus parsed flags in, a
// formattable result out.
type DocumentOperationFunc[Input, Output any] func(context.Context, Input) (Output, error)

// LogDetailsFunc defines how to log the start of an operation.
type LogDetailsFunc[Input any] func(input Input, cfg CommandConfig)

// RunDocumentCommand encapsulates the common logic for commands that take a
// resume document: validate the path, run the pipeline operation, format and
// write the result.
func RunDocumentCommand[Input, Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	documentPath string,
	maxFileSize int64,
	input Input,
	operation DocumentOperationFunc[Input, Output],
	logDetails LogDetailsFunc[Input],
) error {
	fileProcessor := NewFileProcessor(logger)
	outputHandler := NewOutputHandler(logger)

	if err := fileProcessor.ValidateDocument(documentPath, maxFileSize); err != nil {
		return err
	}

	logDetails(input, cmdConfig)

	result, err := operation(ctx, input)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
