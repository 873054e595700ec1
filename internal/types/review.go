package types

// ReviewMetrics carries the per-dimension scores included in review responses.
type ReviewMetrics struct {
	KeywordScore      float64 `json:"keyword_score"`
	StructureScore    float64 `json:"structure_score"`
	ReadabilityScore  float64 `json:"readability_score"`
	LengthScore       float64 `json:"length_score"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
}

// MatchFeedback holds the two labeled sections of a job-match review.
type MatchFeedback struct {
	Strengths      string `json:"strengths"`
	OverallQuality string `json:"overall_quality"`
}

// ATSFeedback holds the two labeled sections of a standalone ATS review.
type ATSFeedback struct {
	ATSReadiness string `json:"ats_readiness"`
	Suggestions  string `json:"suggestions"`
}

// MatchReview is the full response of a resume review against a job
// description. Scores are computed locally; the feedback strings come
// from the LLM and degrade to fixed sentinels when it is unavailable.
type MatchReview struct {
	MatchScore          int           `json:"match_score"`
	MatchScoreRaw       string        `json:"match_score_raw"`
	MissingKeywords     []string      `json:"missing_keywords"`
	Explanation         string        `json:"explanation"`
	StructureFeedback   string        `json:"structure_feedback"`
	ReadabilityFeedback string        `json:"readability_feedback"`
	Metrics             ReviewMetrics `json:"metrics"`
	Feedback            MatchFeedback `json:"ai_feedback"`
}

// ATSReview is the full response of a standalone resume review.
type ATSReview struct {
	ATSScore            int           `json:"ats_score"`
	ATSScoreRaw         string        `json:"ats_score_raw"`
	Explanation         string        `json:"explanation"`
	StructureFeedback   string        `json:"structure_feedback"`
	ReadabilityFeedback string        `json:"readability_feedback"`
	Metrics             ReviewMetrics `json:"metrics"`
	Feedback            ATSFeedback   `json:"ai_feedback"`
}
