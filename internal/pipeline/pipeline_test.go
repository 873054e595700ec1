package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"resumelens/internal/ai"
	"resumelens/internal/analysis"
	"resumelens/internal/errors"
	"resumelens/internal/extract"
	"resumelens/internal/types"
)

// fakeProvider returns a canned response or error for every completion.
type fakeProvider struct {
	response   string
	err        error
	operations []string
}

func (f *fakeProvider) Complete(ctx context.Context, operation, systemPrompt, userPrompt string) (string, *ai.TokenUsage, error) {
	f.operations = append(f.operations, operation)
	if f.err != nil {
		return "", nil, f.err
	}
	return f.response, nil, nil
}

func (f *fakeProvider) GetModelInfo(ctx context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Name: "fake", Available: true}
}

func testLogger() *errors.Logger {
	return errors.NewLogger(slog.LevelError)
}

func newTestPipeline(provider ai.Provider) *Pipeline {
	logger := testLogger()
	return New(extract.NewExtractor(nil, logger), provider, nil, logger)
}

// buildDOCX assembles a minimal DOCX archive with one paragraph per entry.
func buildDOCX(t *testing.T, paragraphs ...string) types.Document {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>`)
		body.WriteString(p)
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("failed to create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(body.String())); err != nil {
		t.Fatalf("failed to write document body: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	return types.Document{Content: buf.Bytes(), Format: types.FormatDOCX}
}

func sampleResume(t *testing.T) types.Document {
	return buildDOCX(t,
		"John Smith",
		"john@example.com",
		"+1 555-123-4567",
		"Education",
		"BSc Computer Science",
		"Experience",
		"Experienced python developer. Built sql pipelines for reporting.",
		"Skills",
		"Python, SQL, Docker",
	)
}

func TestExtractResume(t *testing.T) {
	p := newTestPipeline(&fakeProvider{})

	fields, err := p.ExtractResume(context.Background(), sampleResume(t))
	if err != nil {
		t.Fatalf("ExtractResume failed: %v", err)
	}

	if fields.Name != "John Smith" {
		t.Errorf("Name = %q, want %q", fields.Name, "John Smith")
	}
	if fields.Email != "john@example.com" {
		t.Errorf("Email = %q, want %q", fields.Email, "john@example.com")
	}
	if fields.Phone != "+1 555-123-4567" {
		t.Errorf("Phone = %q, want %q", fields.Phone, "+1 555-123-4567")
	}
}

func TestExtractResumeBrokenDocument(t *testing.T) {
	p := newTestPipeline(&fakeProvider{})

	_, err := p.ExtractResume(context.Background(), types.Document{
		Content: []byte("garbage"),
		Format:  types.FormatDOCX,
	})
	if err == nil {
		t.Fatal("expected error for broken document")
	}
}

func TestReviewResume(t *testing.T) {
	provider := &fakeProvider{
		response: "Solid foundation overall. **ATS Readiness:** Headings scan well.\n**Suggestions:** Quantify your impact.",
	}
	p := newTestPipeline(provider)

	review, err := p.ReviewResume(context.Background(), sampleResume(t))
	if err != nil {
		t.Fatalf("ReviewResume failed: %v", err)
	}

	if review.ATSScore < 0 || review.ATSScore > 100 {
		t.Errorf("ATSScore = %d, want within [0,100]", review.ATSScore)
	}
	if !strings.HasSuffix(review.ATSScoreRaw, "%") {
		t.Errorf("ATSScoreRaw = %q, want %% suffix", review.ATSScoreRaw)
	}
	if review.Metrics.KeywordScore != 50 {
		t.Errorf("KeywordScore = %v, want the fixed 50 without a job description", review.Metrics.KeywordScore)
	}
	if review.Feedback.ATSReadiness != "Headings scan well." {
		t.Errorf("ATSReadiness = %q", review.Feedback.ATSReadiness)
	}
	if review.Feedback.Suggestions != "Quantify your impact." {
		t.Errorf("Suggestions = %q", review.Feedback.Suggestions)
	}
	if review.Explanation != "Solid foundation overall." {
		t.Errorf("Explanation = %q", review.Explanation)
	}

	// structure, readability, and the sectioned review
	if len(provider.operations) != 3 {
		t.Errorf("provider called %d times, want 3: %v", len(provider.operations), provider.operations)
	}
}

func TestMatchResume(t *testing.T) {
	provider := &fakeProvider{
		response: "Decent alignment with the role. **Match Quality and Suggestions for Improvement:** Add cloud experience.\n**Overall Quality, Clarity, and Structure:** Clear and readable.",
	}
	p := newTestPipeline(provider)

	review, err := p.MatchResume(context.Background(), sampleResume(t),
		"Looking for a python engineer with sql and kubernetes knowledge")
	if err != nil {
		t.Fatalf("MatchResume failed: %v", err)
	}

	if review.MatchScore < 0 || review.MatchScore > 100 {
		t.Errorf("MatchScore = %d, want within [0,100]", review.MatchScore)
	}
	if !strings.HasSuffix(review.MatchScoreRaw, "%") {
		t.Errorf("MatchScoreRaw = %q, want %% suffix", review.MatchScoreRaw)
	}
	if len(review.MissingKeywords) == 0 {
		t.Error("expected missing keywords for unmatched job terms")
	}
	if slices.Contains(review.MissingKeywords, "python") {
		t.Errorf("python is in the resume but reported missing: %v", review.MissingKeywords)
	}
	if review.Feedback.Strengths != "Add cloud experience." {
		t.Errorf("Strengths = %q", review.Feedback.Strengths)
	}
	if review.Feedback.OverallQuality != "Clear and readable." {
		t.Errorf("OverallQuality = %q", review.Feedback.OverallQuality)
	}
	if review.Metrics.KeywordScore <= 0 {
		t.Errorf("KeywordScore = %v, want positive overlap", review.Metrics.KeywordScore)
	}
}

func TestMatchResultCarriesLocalMetrics(t *testing.T) {
	text := "Engineer with python experience. Strong education in computing. Core skills listed below."

	result := matchResult(text, 20)

	if result.KeywordScore != 20 {
		t.Errorf("KeywordScore = %v, want the supplied 20", result.KeywordScore)
	}
	if len(result.MissingSections) != 0 {
		t.Errorf("MissingSections = %v, want none", result.MissingSections)
	}
	if result.StructureScore != 100 {
		t.Errorf("StructureScore = %v, want 100 with all sections present", result.StructureScore)
	}
	if result.AvgSentenceLength <= 0 {
		t.Errorf("AvgSentenceLength = %v, want positive", result.AvgSentenceLength)
	}
	recomputed := analysis.MatchComposite(result.KeywordScore, result.StructureScore,
		result.ReadabilityScore, result.LengthScore)
	if result.Composite != recomputed {
		t.Errorf("Composite = %v, want %v recomputed from sub-scores", result.Composite, recomputed)
	}

	bare := matchResult("plain words only", 0)
	if len(bare.MissingSections) != 3 {
		t.Errorf("MissingSections = %v, want all three", bare.MissingSections)
	}
}

func TestMatchResumeMissingKeywordsCapped(t *testing.T) {
	provider := &fakeProvider{response: "ok"}
	p := newTestPipeline(provider)

	var terms []string
	for i := range 15 {
		terms = append(terms, fmt.Sprintf("zzqword%c", 'a'+rune(i)))
	}
	review, err := p.MatchResume(context.Background(), sampleResume(t), strings.Join(terms, " "))
	if err != nil {
		t.Fatalf("MatchResume failed: %v", err)
	}
	if len(review.MissingKeywords) > 10 {
		t.Errorf("MissingKeywords has %d entries, want at most 10", len(review.MissingKeywords))
	}
}

func TestReviewDegradesToRateLimitSentinel(t *testing.T) {
	provider := &fakeProvider{
		err: errors.NewAIError(errors.ErrCodeAIRateLimited, "Rate limited by AI provider", nil),
	}
	p := newTestPipeline(provider)

	review, err := p.ReviewResume(context.Background(), sampleResume(t))
	if err != nil {
		t.Fatalf("ReviewResume failed: %v", err)
	}

	if review.StructureFeedback != SentinelRateLimited {
		t.Errorf("StructureFeedback = %q, want %q", review.StructureFeedback, SentinelRateLimited)
	}
	if review.ReadabilityFeedback != SentinelRateLimited {
		t.Errorf("ReadabilityFeedback = %q, want %q", review.ReadabilityFeedback, SentinelRateLimited)
	}
	// The sentinel has no markers, so the sectioned fields fall back.
	if review.Feedback.ATSReadiness != "No ATS readiness feedback provided." {
		t.Errorf("ATSReadiness = %q, want the default", review.Feedback.ATSReadiness)
	}
	// Local scores survive provider failure.
	if review.ATSScore < 0 || review.ATSScore > 100 {
		t.Errorf("ATSScore = %d, want within [0,100]", review.ATSScore)
	}
}

func TestReviewDegradesToFailureSentinel(t *testing.T) {
	provider := &fakeProvider{
		err: errors.NewAIError(errors.ErrCodeAIServiceFailed, "model exploded", nil),
	}
	p := newTestPipeline(provider)

	review, err := p.ReviewResume(context.Background(), sampleResume(t))
	if err != nil {
		t.Fatalf("ReviewResume failed: %v", err)
	}
	if review.StructureFeedback != SentinelAIFailed {
		t.Errorf("StructureFeedback = %q, want %q", review.StructureFeedback, SentinelAIFailed)
	}
}

func TestATSPreview(t *testing.T) {
	p := newTestPipeline(&fakeProvider{})

	breakdown := p.ATSPreview(types.ResumeFields{
		Name:       "Jane Doe",
		Education:  "BSc education",
		Experience: "python experience",
		Skills:     "sql skills",
	})

	// python, sql, skills, experience, education are vocabulary hits.
	if breakdown.KeywordScore != 50 {
		t.Errorf("KeywordScore = %v, want 50", breakdown.KeywordScore)
	}
	if breakdown.StructureScore != 100 {
		t.Errorf("StructureScore = %v, want 100 with all sections named", breakdown.StructureScore)
	}
	if breakdown.Composite < 0 || breakdown.Composite > 100 {
		t.Errorf("Composite = %v outside [0,100]", breakdown.Composite)
	}
}
