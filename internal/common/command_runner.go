package common

import (
	"context"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// DocumentOperationFunc is a generic function signature for any pipeline
// operation that consumes a resume document.
type DocumentOperationFunc[Output any] func(context.Context, types.Document) (Output, error)

// LogDetailsFunc defines how to log the start of an operation.
type LogDetailsFunc func(doc types.Document, cfg CommandConfig)

// RunDocumentCommand encapsulates the common logic for resume-file CLI commands:
// read the document, run the pipeline operation, and write formatted output.
func RunDocumentCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	filename string,
	operation DocumentOperationFunc[Output],
	logDetails LogDetailsFunc,
) error {
	fileProcessor := NewFileProcessor(logger)
	outputHandler := NewOutputHandler(logger)

	doc, err := fileProcessor.ReadDocument(filename)
	if err != nil {
		return err
	}

	if logDetails != nil {
		logDetails(doc, cmdConfig)
	}

	result, err := operation(ctx, doc)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
