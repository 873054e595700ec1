// Package pipeline orchestrates document extraction, local scoring, and
// LLM-backed feedback into the operations exposed by the CLI and server.
package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"resumelens/internal/ai"
	"resumelens/internal/analysis"
	"resumelens/internal/errors"
	"resumelens/internal/extract"
	"resumelens/internal/types"
)

// Sentinel feedback strings returned in place of LLM output when the
// provider is unavailable. Scores are always computed locally, so a
// degraded review still carries its full metric set.
const (
	SentinelRateLimited = "Rate limit exceeded."
	SentinelAIFailed    = "Error generating suggestion."
	fallbackExplanation = "No explanation provided."
	blankResumeRoast    = "A blank resume? Wow, you're really letting your *nothingness* shine!"
	brokenResumeRoast   = "This resume broke me—guess it's *that* tragic!"
	missingKeywordLimit = 10
)

// OperationRecorder receives timing and outcome signals for business metrics.
type OperationRecorder interface {
	RecordOperation(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Pipeline wires the extraction, analysis, and AI layers together.
type Pipeline struct {
	extractor *extract.Extractor
	fields    *analysis.FieldExtractor
	provider  ai.Provider
	recorder  OperationRecorder
	logger    *errors.Logger
}

// New creates a pipeline. The recorder may be nil when observability
// is disabled.
func New(extractor *extract.Extractor, provider ai.Provider, recorder OperationRecorder, logger *errors.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		fields:    analysis.NewFieldExtractor(logger),
		provider:  provider,
		recorder:  recorder,
		logger:    logger,
	}
}

func (p *Pipeline) record(ctx context.Context, operation string, success bool, started time.Time) {
	if p.recorder != nil {
		p.recorder.RecordOperation(ctx, operation, success, time.Since(started))
	}
}

// ExtractResume pulls the text out of an uploaded document and extracts
// its structured fields.
func (p *Pipeline) ExtractResume(ctx context.Context, doc types.Document) (types.ResumeFields, error) {
	started := time.Now()

	text, err := p.extractor.Extract(ctx, doc)
	if err != nil {
		p.record(ctx, "extract_resume", false, started)
		return types.ResumeFields{}, err
	}

	fields := p.fields.Extract(text)
	p.record(ctx, "extract_resume", true, started)
	return fields, nil
}

// ATSPreview scores the text assembled from structured resume fields.
func (p *Pipeline) ATSPreview(fields types.ResumeFields) types.ScoreBreakdown {
	text := fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n%s",
		fields.Name, fields.Email, fields.Phone,
		fields.Education, fields.Experience, fields.Skills)
	return analysis.ScoreResume(text)
}

// Score runs the standalone scorer over raw resume text.
func (p *Pipeline) Score(text string) types.ScoreBreakdown {
	return analysis.ScoreResume(text)
}

// ScoreDocument extracts the document text and runs the standalone scorer.
func (p *Pipeline) ScoreDocument(ctx context.Context, doc types.Document) (types.ScoreBreakdown, error) {
	text, err := p.extractor.Extract(ctx, doc)
	if err != nil {
		return types.ScoreBreakdown{}, err
	}
	return analysis.ScoreResume(text), nil
}

// MatchResume reviews a resume against a job description: local TF-IDF
// similarity and metric scores plus LLM feedback sections.
func (p *Pipeline) MatchResume(ctx context.Context, doc types.Document, jobDescription string) (*types.MatchReview, error) {
	started := time.Now()

	text, err := p.extractor.Extract(ctx, doc)
	if err != nil {
		p.record(ctx, "match_resume", false, started)
		return nil, err
	}
	if text == "" {
		p.record(ctx, "match_resume", false, started)
		return nil, errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"No text found in the resume document", nil)
	}

	resumeTerms := analysis.Preprocess(text)
	jobTerms := analysis.Preprocess(jobDescription)
	comparison := analysis.CompareKeywords(resumeTerms, jobTerms)
	matchScore := analysis.CosineSimilarity(resumeTerms, jobTerms)

	result := matchResult(text, comparison.OverlapScore())
	result.MissingKeywords = analysis.TruncateKeywords(comparison.MissingKeywords, missingKeywordLimit)
	result.MatchScoreRaw = fmt.Sprintf("%.2f%%", matchScore)

	structureFeedback := p.suggest(ctx, "structure_review",
		ai.StructureReviewPrompt(text, true))
	readabilityFeedback := p.suggest(ctx, "readability_review",
		ai.ReadabilityReviewPrompt(text, result.AvgSentenceLength, true))
	reviewText := p.suggest(ctx, "match_review",
		ai.MatchReviewPrompt(text, jobDescription))

	feedback := analysis.ParseSectionedFeedback(reviewText, analysis.MatchReviewMarkers)

	p.record(ctx, "match_resume", true, started)
	return &types.MatchReview{
		MatchScore:          int(result.Composite),
		MatchScoreRaw:       result.MatchScoreRaw,
		MissingKeywords:     result.MissingKeywords,
		Explanation:         analysis.FirstSentence(reviewText, fallbackExplanation),
		StructureFeedback:   structureFeedback,
		ReadabilityFeedback: readabilityFeedback,
		Metrics:             reviewMetrics(result),
		Feedback: types.MatchFeedback{
			Strengths:      feedback.FieldA,
			OverallQuality: feedback.FieldB,
		},
	}, nil
}

// matchResult computes the local match-strategy metrics shared by the
// job-match and standalone review paths. The keyword score is supplied
// by the caller since only the job-match path has terms to compare.
func matchResult(text string, keywordScore float64) types.MatchResult {
	missingSections := analysis.MissingSections(text)
	structureScore := analysis.StructureScoreMatch(len(missingSections))
	avgSentenceLength := analysis.AvgSentenceLength(text)
	readabilityScore := analysis.ReadabilityScoreMatch(avgSentenceLength)
	lengthScore := analysis.LengthScoreMatch(analysis.WordCount(text))

	return types.MatchResult{
		ScoreBreakdown: types.ScoreBreakdown{
			KeywordScore:     keywordScore,
			StructureScore:   structureScore,
			ReadabilityScore: readabilityScore,
			LengthScore:      lengthScore,
			Composite:        analysis.MatchComposite(keywordScore, structureScore, readabilityScore, lengthScore),
		},
		AvgSentenceLength: avgSentenceLength,
		MissingSections:   missingSections,
	}
}

func reviewMetrics(result types.MatchResult) types.ReviewMetrics {
	return types.ReviewMetrics{
		KeywordScore:      result.KeywordScore,
		StructureScore:    result.StructureScore,
		ReadabilityScore:  result.ReadabilityScore,
		LengthScore:       result.LengthScore,
		AvgSentenceLength: result.AvgSentenceLength,
	}
}

// ReviewResume reviews a resume on its own: the composite uses a fixed
// keyword score, and the raw ATS score from the standalone scorer is
// included for reference.
func (p *Pipeline) ReviewResume(ctx context.Context, doc types.Document) (*types.ATSReview, error) {
	started := time.Now()

	text, err := p.extractor.Extract(ctx, doc)
	if err != nil {
		p.record(ctx, "review_resume", false, started)
		return nil, err
	}
	if text == "" {
		p.record(ctx, "review_resume", false, started)
		return nil, errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"No text found in the resume document", nil)
	}

	// Without a job description there is no overlap to measure.
	result := matchResult(text, 50.0)
	atsScore := analysis.ScoreResume(text).Composite

	structureFeedback := p.suggest(ctx, "structure_review",
		ai.StructureReviewPrompt(text, false))
	readabilityFeedback := p.suggest(ctx, "readability_review",
		ai.ReadabilityReviewPrompt(text, result.AvgSentenceLength, false))
	reviewText := p.suggest(ctx, "ats_review", ai.ATSReviewPrompt(text))

	feedback := analysis.ParseSectionedFeedback(reviewText, analysis.ATSReviewMarkers)

	p.record(ctx, "review_resume", true, started)
	return &types.ATSReview{
		ATSScore:            int(result.Composite),
		ATSScoreRaw:         strconv.FormatFloat(atsScore, 'f', -1, 64) + "%",
		Explanation:         analysis.FirstSentence(reviewText, fallbackExplanation),
		StructureFeedback:   structureFeedback,
		ReadabilityFeedback: readabilityFeedback,
		Metrics:             reviewMetrics(result),
		Feedback: types.ATSFeedback{
			ATSReadiness: feedback.FieldA,
			Suggestions:  feedback.FieldB,
		},
	}, nil
}

// suggest runs an LLM feedback operation, degrading to a sentinel string
// instead of failing. Local scores never depend on its outcome.
func (p *Pipeline) suggest(ctx context.Context, operation, prompt string) string {
	text, _, err := p.provider.Complete(ctx, operation, ai.SystemPrompt, prompt)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) && appErr.Code == errors.ErrCodeAIRateLimited {
			return SentinelRateLimited
		}
		p.logger.Warn("AI feedback degraded to sentinel",
			"operation", operation,
			"error", err.Error())
		return SentinelAIFailed
	}
	return analysis.Sanitize(text)
}
