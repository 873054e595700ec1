package analysis

import (
	"math"

	"resumelens/internal/types"
)

// commonResumeTerms is the fixed vocabulary behind the ATS-only keyword
// sub-score: the hit rate against these ten terms, scaled to 0-100.
var commonResumeTerms = map[string]struct{}{
	"python": {}, "java": {}, "sql": {}, "team": {}, "project": {},
	"management": {}, "skills": {}, "experience": {}, "education": {}, "certified": {},
}

// The two scoring strategies carry different weights and penalty constants.
// They drifted apart across rewrites of the original service and both are
// still consumed, so they stay distinct rather than being unified.

// FixedKeywordScore is the ATS-strategy keyword sub-score: distinct document
// tokens are checked against the fixed vocabulary, ten points per hit.
func FixedKeywordScore(text string) float64 {
	hits := 0
	for tok := range UniqueTokens(text) {
		if _, ok := commonResumeTerms[tok]; ok {
			hits++
		}
	}
	return min(float64(hits)/10*100, 100)
}

// StructureScoreATS penalizes 33 points per missing canonical section.
func StructureScoreATS(missingCount int) float64 {
	return math.Max(0, 100-float64(missingCount)*33)
}

// StructureScoreMatch penalizes 20 points per missing canonical section.
func StructureScoreMatch(missingCount int) float64 {
	return math.Max(0, 100-float64(missingCount)*20)
}

// ReadabilityScoreATS gives full marks below 20 words per sentence, then
// decays 5 points per extra word.
func ReadabilityScoreATS(avgSentenceLength float64) float64 {
	if avgSentenceLength < 20 {
		return 100
	}
	return math.Max(0, 100-(avgSentenceLength-20)*5)
}

// ReadabilityScoreMatch uses a 15-word threshold with the same 5-point
// decay, clamped to [0,100].
func ReadabilityScoreMatch(avgSentenceLength float64) float64 {
	return clamp(100 - (avgSentenceLength-15)*5)
}

// LengthScoreATS buckets the word count: 100 for [150,500], 50 for
// [100,150) and (500,700], 25 otherwise.
func LengthScoreATS(wordCount int) float64 {
	switch {
	case wordCount >= 150 && wordCount <= 500:
		return 100
	case (wordCount >= 100 && wordCount < 150) || (wordCount > 500 && wordCount <= 700):
		return 50
	default:
		return 25
	}
}

// LengthScoreMatch applies a continuous penalty away from the 500-word
// sweet spot, clamped to [0,100].
func LengthScoreMatch(wordCount int) float64 {
	return clamp(100 - 0.2*math.Abs(float64(wordCount)-500))
}

// ATSComposite blends the ATS-strategy sub-scores with fixed weights
// 0.3/0.3/0.2/0.2, rounded to two decimal places.
func ATSComposite(keyword, structure, readability, length float64) float64 {
	raw := 0.3*keyword + 0.3*structure + 0.2*readability + 0.2*length
	return math.Round(raw*100) / 100
}

// MatchComposite blends the job-match sub-scores with fixed weights
// 0.4/0.3/0.2/0.1, truncated to an integer.
func MatchComposite(keyword, structure, readability, length float64) float64 {
	raw := 0.4*keyword + 0.3*structure + 0.2*readability + 0.1*length
	return math.Trunc(raw)
}

// ScoreResume runs the full ATS-only strategy over extracted resume text.
// The word count here is the distinct alphabetic token count, matching the
// behavior the score has always had.
func ScoreResume(text string) types.ScoreBreakdown {
	keyword := FixedKeywordScore(text)
	structure := StructureScoreATS(len(MissingSections(text)))
	readability := ReadabilityScoreATS(AvgSentenceLength(text))
	length := LengthScoreATS(len(UniqueTokens(text)))

	return types.ScoreBreakdown{
		KeywordScore:     keyword,
		StructureScore:   structure,
		ReadabilityScore: readability,
		LengthScore:      length,
		Composite:        ATSComposite(keyword, structure, readability, length),
	}
}

func clamp(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
