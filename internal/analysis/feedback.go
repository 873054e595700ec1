package analysis

import (
	"strings"

	"resumelens/internal/types"
)

// MarkerPair describes the two literal marker substrings an LLM response is
// split around, plus the fixed defaults substituted when a marker is absent.
type MarkerPair struct {
	MarkerA  string
	MarkerB  string
	DefaultA string
	DefaultB string
}

// Marker pairs for the two review prompt shapes.
var (
	ATSReviewMarkers = MarkerPair{
		MarkerA:  "**ATS Readiness:**",
		MarkerB:  "**Suggestions:**",
		DefaultA: "No ATS readiness feedback provided.",
		DefaultB: "No specific suggestions provided.",
	}
	MatchReviewMarkers = MarkerPair{
		MarkerA:  "**Match Quality and Suggestions for Improvement:**",
		MarkerB:  "**Overall Quality, Clarity, and Structure:**",
		DefaultA: "No strengths identified.",
		DefaultB: "No overall quality feedback provided.",
	}
)

// ParseSectionedFeedback splits free-form LLM text around the marker pair
// and returns the two labeled sections. This is best-effort string
// splitting against an unstructured response: a missing marker yields that
// field's default, and the function never fails. The narrow signature
// exists so the heuristic can later be swapped for a structured-output
// contract without touching callers.
func ParseSectionedFeedback(text string, markers MarkerPair) types.AIFeedback {
	fb := types.AIFeedback{
		FieldA: markers.DefaultA,
		FieldB: markers.DefaultB,
	}

	_, afterA, foundA := strings.Cut(text, markers.MarkerA)
	if !foundA {
		return fb
	}

	if before, afterB, foundB := strings.Cut(afterA, markers.MarkerB); foundB {
		fb.FieldA = strings.TrimSpace(before)
		fb.FieldB = strings.TrimSpace(afterB)
	} else {
		fb.FieldA = strings.TrimSpace(afterA)
	}
	return fb
}

// FirstSentence returns the leading sentence of text, used as a one-line
// explanation in responses. Empty text yields the fallback. Text without a
// period gains one, so the explanation always reads as a sentence.
func FirstSentence(text, fallback string) string {
	if text == "" {
		return fallback
	}
	head, _, _ := strings.Cut(text, ".")
	return head + "."
}
