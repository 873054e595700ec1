package cli

import (
	"context"
	"fmt"

	"resumelens/internal/common"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [resume-file]",
	Short: "Extract structured fields from a resume",
	Long: `Extract the text of a PDF or DOCX resume and pull out its structured
fields: name, email, phone, education, experience, and skills. Scanned
pages without a text layer fall back to AI-backed OCR.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if extractConfig.OutputFormat == "" {
			extractConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(extractConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runExtract,
}

var extractConfig common.CommandConfig

func init() {
	extractCmd.Flags().StringVarP(&extractConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().StringVar(&extractConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = extractCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	p, err := newPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	logDetails := func(doc types.Document, cfg common.CommandConfig) {
		logger.Info("Starting resume extraction",
			"file", args[0],
			"format", string(doc.Format),
			"size_bytes", len(doc.Content),
			"output_format", cfg.OutputFormat)
	}

	operation := func(ctx context.Context, doc types.Document) (types.ResumeFields, error) {
		return p.ExtractResume(ctx, doc)
	}

	err = common.RunDocumentCommand(
		cmd.Context(),
		logger,
		extractConfig,
		args[0],
		operation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to extract resume: %w", err)
	}
	logger.Info("Resume extraction completed successfully")
	return nil
}
