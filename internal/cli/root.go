package cli

import (
	"context"

	"resumelens/internal/ai"
	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/extract"
	"resumelens/internal/pipeline"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "resumelens",
	Short: "A CLI tool for analyzing and scoring resumes using AI",
	Long: `Resumelens is a command-line tool that extracts text and structured
fields from PDF and DOCX resumes, scores them against ATS heuristics,
matches them against job descriptions, and generates AI-backed feedback.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// newPipeline builds the extraction/analysis/AI pipeline used by the
// file-based commands. OCR shares the Gemini client with the provider.
func newPipeline(cfg *config.Config, logger *errors.Logger) (*pipeline.Pipeline, error) {
	provider, err := ai.NewProvider(&cfg.AI, logger)
	if err != nil {
		return nil, err
	}

	var ocr extract.PageOCR
	if gemini, ok := provider.(*ai.GeminiProvider); ok {
		ocr = ai.NewGeminiOCR(gemini)
	}

	extractor := extract.NewExtractor(ocr, logger)
	return pipeline.New(extractor, provider, nil, logger), nil
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(roastCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
