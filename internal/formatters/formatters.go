// Package formatters renders pipeline results as json, text, or
// markdown for CLI output.
package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumelens/internal/types"
)

// GlobalRegistry is the default registry used by CLI output handling
var GlobalRegistry = NewFormatterRegistry()

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a registry with the default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ResumeFields", &FieldsTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeFields", &FieldsMarkdownFormatter{})
	registry.RegisterFormatter("text", "ScoreBreakdown", &ScoreTextFormatter{})
	registry.RegisterFormatter("markdown", "ScoreBreakdown", &ScoreMarkdownFormatter{})
	registry.RegisterFormatter("text", "MatchReview", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchReview", &MatchMarkdownFormatter{})
	registry.RegisterFormatter("text", "ATSReview", &ATSTextFormatter{})
	registry.RegisterFormatter("markdown", "ATSReview", &ATSMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a formatter for a format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ResumeFields:
		return "ResumeFields"
	case types.ScoreBreakdown:
		return "ScoreBreakdown"
	case *types.MatchReview, types.MatchReview:
		return "MatchReview"
	case *types.ATSReview, types.ATSReview:
		return "ATSReview"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// FieldsTextFormatter renders extracted resume fields as plain text
type FieldsTextFormatter struct{}

func (ftf *FieldsTextFormatter) Format(data any) (string, error) {
	fields, ok := data.(types.ResumeFields)
	if !ok {
		return "", fmt.Errorf("expected ResumeFields, got %T", data)
	}

	var output strings.Builder
	output.WriteString("=== EXTRACTED RESUME FIELDS ===\n\n")
	writeField(&output, "Name", fields.Name)
	writeField(&output, "Email", fields.Email)
	writeField(&output, "Phone", fields.Phone)
	writeField(&output, "Education", fields.Education)
	writeField(&output, "Experience", fields.Experience)
	writeField(&output, "Skills", fields.Skills)
	return output.String(), nil
}

func (ftf *FieldsTextFormatter) SupportedType() string {
	return "ResumeFields"
}

func writeField(output *strings.Builder, label, value string) {
	if value == "" {
		value = "(not found)"
	}
	output.WriteString(label)
	output.WriteString(": ")
	output.WriteString(value)
	output.WriteString("\n")
}

// FieldsMarkdownFormatter renders extracted resume fields as markdown
type FieldsMarkdownFormatter struct{}

func (fmf *FieldsMarkdownFormatter) Format(data any) (string, error) {
	fields, ok := data.(types.ResumeFields)
	if !ok {
		return "", fmt.Errorf("expected ResumeFields, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Extracted Resume Fields\n\n")
	for _, section := range []struct{ label, value string }{
		{"Name", fields.Name},
		{"Email", fields.Email},
		{"Phone", fields.Phone},
		{"Education", fields.Education},
		{"Experience", fields.Experience},
		{"Skills", fields.Skills},
	} {
		value := section.value
		if value == "" {
			value = "_not found_"
		}
		output.WriteString("**")
		output.WriteString(section.label)
		output.WriteString(":** ")
		output.WriteString(value)
		output.WriteString("\n\n")
	}
	return output.String(), nil
}

func (fmf *FieldsMarkdownFormatter) SupportedType() string {
	return "ResumeFields"
}

// ScoreTextFormatter renders a score breakdown as plain text
type ScoreTextFormatter struct{}

func (stf *ScoreTextFormatter) Format(data any) (string, error) {
	score, ok := data.(types.ScoreBreakdown)
	if !ok {
		return "", fmt.Errorf("expected ScoreBreakdown, got %T", data)
	}

	var output strings.Builder
	output.WriteString("=== ATS SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Composite: %.2f/100\n\n", score.Composite))
	output.WriteString(fmt.Sprintf("Keyword:     %.2f\n", score.KeywordScore))
	output.WriteString(fmt.Sprintf("Structure:   %.2f\n", score.StructureScore))
	output.WriteString(fmt.Sprintf("Readability: %.2f\n", score.ReadabilityScore))
	output.WriteString(fmt.Sprintf("Length:      %.2f\n", score.LengthScore))
	return output.String(), nil
}

func (stf *ScoreTextFormatter) SupportedType() string {
	return "ScoreBreakdown"
}

// ScoreMarkdownFormatter renders a score breakdown as markdown
type ScoreMarkdownFormatter struct{}

func (smf *ScoreMarkdownFormatter) Format(data any) (string, error) {
	score, ok := data.(types.ScoreBreakdown)
	if !ok {
		return "", fmt.Errorf("expected ScoreBreakdown, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# ATS Score\n\n")
	output.WriteString(fmt.Sprintf("**Composite:** %.2f/100\n\n", score.Composite))
	output.WriteString("| Dimension | Score |\n|---|---|\n")
	output.WriteString(fmt.Sprintf("| Keyword | %.2f |\n", score.KeywordScore))
	output.WriteString(fmt.Sprintf("| Structure | %.2f |\n", score.StructureScore))
	output.WriteString(fmt.Sprintf("| Readability | %.2f |\n", score.ReadabilityScore))
	output.WriteString(fmt.Sprintf("| Length | %.2f |\n", score.LengthScore))
	return output.String(), nil
}

func (smf *ScoreMarkdownFormatter) SupportedType() string {
	return "ScoreBreakdown"
}

// MatchTextFormatter renders a job-match review as plain text
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	review, ok := toMatchReview(data)
	if !ok {
		return "", fmt.Errorf("expected MatchReview, got %T", data)
	}

	var output strings.Builder
	output.WriteString("=== JOB MATCH REVIEW ===\n\n")
	output.WriteString(fmt.Sprintf("Match Score: %d/100 (raw similarity %s)\n\n", review.MatchScore, review.MatchScoreRaw))
	output.WriteString(fmt.Sprintf("Keyword:     %.2f\n", review.Metrics.KeywordScore))
	output.WriteString(fmt.Sprintf("Structure:   %.2f\n", review.Metrics.StructureScore))
	output.WriteString(fmt.Sprintf("Readability: %.2f\n", review.Metrics.ReadabilityScore))
	output.WriteString(fmt.Sprintf("Length:      %.2f\n\n", review.Metrics.LengthScore))

	if len(review.MissingKeywords) > 0 {
		output.WriteString("Missing Keywords: ")
		output.WriteString(strings.Join(review.MissingKeywords, ", "))
		output.WriteString("\n\n")
	}

	output.WriteString("Strengths and Suggestions:\n")
	output.WriteString(review.Feedback.Strengths)
	output.WriteString("\n\n")
	output.WriteString("Overall Quality:\n")
	output.WriteString(review.Feedback.OverallQuality)
	output.WriteString("\n")
	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchReview"
}

// MatchMarkdownFormatter renders a job-match review as markdown
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	review, ok := toMatchReview(data)
	if !ok {
		return "", fmt.Errorf("expected MatchReview, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Job Match Review\n\n")
	output.WriteString(fmt.Sprintf("**Match Score:** %d/100 (raw similarity %s)\n\n", review.MatchScore, review.MatchScoreRaw))

	if len(review.MissingKeywords) > 0 {
		output.WriteString("**Missing Keywords:** ")
		output.WriteString(strings.Join(review.MissingKeywords, ", "))
		output.WriteString("\n\n")
	}

	output.WriteString("## Strengths and Suggestions\n\n")
	output.WriteString(review.Feedback.Strengths)
	output.WriteString("\n\n## Overall Quality\n\n")
	output.WriteString(review.Feedback.OverallQuality)
	output.WriteString("\n")
	return output.String(), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchReview"
}

// ATSTextFormatter renders a standalone review as plain text
type ATSTextFormatter struct{}

func (atf *ATSTextFormatter) Format(data any) (string, error) {
	review, ok := toATSReview(data)
	if !ok {
		return "", fmt.Errorf("expected ATSReview, got %T", data)
	}

	var output strings.Builder
	output.WriteString("=== RESUME REVIEW ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/100 (standalone ATS score %s)\n\n", review.ATSScore, review.ATSScoreRaw))
	output.WriteString("ATS Readiness:\n")
	output.WriteString(review.Feedback.ATSReadiness)
	output.WriteString("\n\n")
	output.WriteString("Suggestions:\n")
	output.WriteString(review.Feedback.Suggestions)
	output.WriteString("\n")
	return output.String(), nil
}

func (atf *ATSTextFormatter) SupportedType() string {
	return "ATSReview"
}

// ATSMarkdownFormatter renders a standalone review as markdown
type ATSMarkdownFormatter struct{}

func (amf *ATSMarkdownFormatter) Format(data any) (string, error) {
	review, ok := toATSReview(data)
	if !ok {
		return "", fmt.Errorf("expected ATSReview, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Resume Review\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100 (standalone ATS score %s)\n\n", review.ATSScore, review.ATSScoreRaw))
	output.WriteString("## ATS Readiness\n\n")
	output.WriteString(review.Feedback.ATSReadiness)
	output.WriteString("\n\n## Suggestions\n\n")
	output.WriteString(review.Feedback.Suggestions)
	output.WriteString("\n")
	return output.String(), nil
}

func (amf *ATSMarkdownFormatter) SupportedType() string {
	return "ATSReview"
}

func toMatchReview(data any) (*types.MatchReview, bool) {
	switch v := data.(type) {
	case *types.MatchReview:
		return v, true
	case types.MatchReview:
		return &v, true
	default:
		return nil, false
	}
}

func toATSReview(data any) (*types.ATSReview, bool) {
	switch v := data.(type) {
	case *types.ATSReview:
		return v, true
	case types.ATSReview:
		return &v, true
	default:
		return nil, false
	}
}
