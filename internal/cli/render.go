package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumelens/internal/common"
	"resumelens/internal/render"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [fields-file]",
	Short: "Render a resume document from structured fields",
	Long: `Render a PDF or DOCX resume from a JSON file of structured fields
(name, email, phone, education, experience, skills), for example the
output of the extract command. Use --template to pick a layout and
--format to choose between pdf and docx output.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var (
	renderTemplate   string
	renderFormat     string
	renderOutputFile string
)

func init() {
	renderCmd.Flags().StringVar(&renderTemplate, "template", "modern", "Resume template name")
	renderCmd.Flags().StringVar(&renderFormat, "doc-format", "pdf", "Document format: pdf or docx")
	renderCmd.Flags().StringVarP(&renderOutputFile, "output", "o", "", "Output file path (required)")
	_ = renderCmd.MarkFlagRequired("output")
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	content, err := fileProcessor.ReadFile(args[0])
	if err != nil {
		return err
	}

	var fields types.ResumeFields
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return fmt.Errorf("failed to parse fields file %s: %w", args[0], err)
	}

	registry := render.NewRegistry(logger)
	logger.Info("Rendering resume",
		"template", renderTemplate,
		"doc_format", renderFormat,
		"output", renderOutputFile)

	document, _, err := registry.Render(types.RenderRequest{
		Fields:   fields,
		Template: renderTemplate,
		Format:   types.DocumentFormat(strings.ToLower(renderFormat)),
	})
	if err != nil {
		return err
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleBinaryOutput(document, renderOutputFile); err != nil {
		return err
	}

	logger.Info("Resume rendering completed successfully")
	return nil
}
