package types

// DocumentFormat identifies the declared format of an uploaded document.
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"

	// FormatText marks pre-extracted plain text, accepted on the CLI so
	// scoring does not require a rendered document.
	FormatText DocumentFormat = "txt"
)

// Document is an uploaded resume: raw bytes plus the declared format.
// It is immutable once read and consumed exactly once by the text extractor.
type Document struct {
	Content []byte
	Format  DocumentFormat
}

// ResumeFields holds the structured fields pulled out of resume text.
// Absence is always the empty string, never a null, so downstream
// formatting stays uniform.
type ResumeFields struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Education  string `json:"education"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
}

// ScoreBreakdown is the named sub-scores plus the weighted composite.
// All values lie in [0,100].
type ScoreBreakdown struct {
	KeywordScore     float64 `json:"keyword_score"`
	StructureScore   float64 `json:"structure_score"`
	ReadabilityScore float64 `json:"readability_score"`
	LengthScore      float64 `json:"length_score"`
	Composite        float64 `json:"composite"`
}

// MatchResult is a ScoreBreakdown extended with job-description-derived
// fields when a job description was supplied.
type MatchResult struct {
	ScoreBreakdown
	AvgSentenceLength float64  `json:"avg_sentence_length"`
	MissingSections   []string `json:"missing_sections"`

	// Set only on the job-match path.
	MissingKeywords []string `json:"missing_keywords,omitempty"`
	MatchScoreRaw   string   `json:"match_score_raw,omitempty"`
}

// AIFeedback holds the two labeled sections parsed out of a marker-delimited
// LLM response. Both fields are always populated, falling back to fixed
// defaults when a marker is missing.
type AIFeedback struct {
	FieldA string `json:"field_a"`
	FieldB string `json:"field_b"`
}

// SuggestedContent is the parsed output of the content-suggestion operation.
type SuggestedContent struct {
	Education  string `json:"education"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
}

// RenderRequest carries the sanitized field mapping handed to a resume
// template, plus the template and output format selection.
type RenderRequest struct {
	Fields   ResumeFields
	Template string
	Format   DocumentFormat
}
