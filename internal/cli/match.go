package cli

import (
	"context"
	"fmt"

	"resumelens/internal/common"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [resume-file] [job-description-file]",
	Short: "Match a resume against a job description",
	Long: `Match a resume against a job description. The command takes two
arguments: the path to the resume (PDF or DOCX) and the path to the job
description in plain text. The match score combines TF-IDF cosine
similarity and keyword overlap with local structure, readability, and
length scores, and includes AI-generated improvement feedback.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var matchConfig common.CommandConfig

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	p, err := newPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	jobDescription, err := common.NewFileProcessor(logger).ReadFile(args[1])
	if err != nil {
		return err
	}

	logDetails := func(doc types.Document, cfg common.CommandConfig) {
		logger.Info("Starting resume matching",
			"file", args[0],
			"format", string(doc.Format),
			"job_chars", len(jobDescription),
			"output_format", cfg.OutputFormat)
	}

	operation := func(ctx context.Context, doc types.Document) (*types.MatchReview, error) {
		return p.MatchResume(ctx, doc, jobDescription)
	}

	err = common.RunDocumentCommand(
		cmd.Context(),
		logger,
		matchConfig,
		args[0],
		operation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to match resume: %w", err)
	}
	logger.Info("Resume matching completed successfully")
	return nil
}
