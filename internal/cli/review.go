package cli

import (
	"context"
	"fmt"

	"resumelens/internal/common"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review [resume-file]",
	Short: "Review a resume with AI-backed feedback",
	Long: `Review a resume on its own: local structure, readability, and length
scores combined into a composite, plus AI-generated readiness feedback and
suggestions. Feedback degrades to fixed sentinel text when the AI service
is unavailable; the scores are always computed.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if reviewConfig.OutputFormat == "" {
			reviewConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(reviewConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runReview,
}

var reviewConfig common.CommandConfig

func init() {
	reviewCmd.Flags().StringVarP(&reviewConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	reviewCmd.Flags().StringVar(&reviewConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = reviewCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	p, err := newPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	logDetails := func(doc types.Document, cfg common.CommandConfig) {
		logger.Info("Starting resume review",
			"file", args[0],
			"format", string(doc.Format),
			"output_format", cfg.OutputFormat)
	}

	operation := func(ctx context.Context, doc types.Document) (*types.ATSReview, error) {
		return p.ReviewResume(ctx, doc)
	}

	err = common.RunDocumentCommand(
		cmd.Context(),
		logger,
		reviewConfig,
		args[0],
		operation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to review resume: %w", err)
	}
	logger.Info("Resume review completed successfully")
	return nil
}
