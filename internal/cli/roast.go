package cli

import (
	"fmt"

	"resumelens/internal/ai"
	"resumelens/internal/common"

	"github.com/spf13/cobra"
)

var roastCmd = &cobra.Command{
	Use:   "roast [resume-file]",
	Short: "Get a comedic critique of a resume",
	Long: `Roast a resume with a humorous AI-generated critique. The severity
is controlled with --level: mild, spicy, or burnt.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoast,
}

var (
	roastLevel      string
	roastOutputFile string
)

func init() {
	roastCmd.Flags().StringVar(&roastLevel, "level", ai.RoastLevelSpicy, "Roast severity: mild, spicy, or burnt")
	roastCmd.Flags().StringVarP(&roastOutputFile, "output", "o", "", "Output file path (default: stdout)")

	_ = roastCmd.RegisterFlagCompletionFunc("level", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{ai.RoastLevelMild, ai.RoastLevelSpicy, ai.RoastLevelBurnt}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runRoast(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	p, err := newPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	fileProcessor := common.NewFileProcessor(logger)
	doc, err := fileProcessor.ReadDocument(args[0])
	if err != nil {
		return err
	}

	logger.Info("Starting resume roast",
		"file", args[0],
		"level", roastLevel)

	roast := p.Roast(cmd.Context(), doc, roastLevel)

	if roastOutputFile != "" {
		if err := fileProcessor.WriteFile(roastOutputFile, roast+"\n"); err != nil {
			return err
		}
		logger.Info("Roast written successfully", "file", roastOutputFile)
		return nil
	}

	fmt.Println(roast)
	return nil
}
