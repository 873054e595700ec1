package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"resumelens/internal/types"
)

func TestFormatJSONHandlesAnyType(t *testing.T) {
	registry := NewFormatterRegistry()

	fields := types.ResumeFields{Name: "Jane Doe", Email: "jane@example.com"}
	out, err := registry.Format(fields, "json")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	var decoded types.ResumeFields
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", decoded.Name, "Jane Doe")
	}

	// Arbitrary types fall through to the "any" formatter.
	if _, err := registry.Format(map[string]int{"a": 1}, "json"); err != nil {
		t.Errorf("Format(map) error: %v", err)
	}
}

func TestFormatFieldsText(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(types.ResumeFields{Name: "Jane Doe"}, "text")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if !strings.Contains(out, "Name: Jane Doe") {
		t.Errorf("output missing name line:\n%s", out)
	}
	if !strings.Contains(out, "Email: (not found)") {
		t.Errorf("empty fields should render as (not found):\n%s", out)
	}
}

func TestFormatScoreBreakdown(t *testing.T) {
	registry := NewFormatterRegistry()
	score := types.ScoreBreakdown{
		KeywordScore:     30,
		StructureScore:   67,
		ReadabilityScore: 100,
		LengthScore:      25,
		Composite:        54.1,
	}

	text, err := registry.Format(score, "text")
	if err != nil {
		t.Fatalf("Format(text) error: %v", err)
	}
	if !strings.Contains(text, "Composite: 54.10/100") {
		t.Errorf("text output missing composite:\n%s", text)
	}

	md, err := registry.Format(score, "markdown")
	if err != nil {
		t.Fatalf("Format(markdown) error: %v", err)
	}
	if !strings.Contains(md, "| Keyword | 30.00 |") {
		t.Errorf("markdown output missing keyword row:\n%s", md)
	}
}

func TestFormatMatchReviewPointerAndValue(t *testing.T) {
	registry := NewFormatterRegistry()
	review := types.MatchReview{
		MatchScore:      63,
		MatchScoreRaw:   "41.27%",
		MissingKeywords: []string{"kubernetes", "terraform"},
		Feedback: types.MatchFeedback{
			Strengths:      "Strong backend experience.",
			OverallQuality: "Solid overall.",
		},
	}

	for _, data := range []any{review, &review} {
		out, err := registry.Format(data, "text")
		if err != nil {
			t.Fatalf("Format(%T) error: %v", data, err)
		}
		if !strings.Contains(out, "Match Score: 63/100") {
			t.Errorf("output missing match score:\n%s", out)
		}
		if !strings.Contains(out, "kubernetes, terraform") {
			t.Errorf("output missing keyword list:\n%s", out)
		}
	}
}

func TestFormatATSReviewMarkdown(t *testing.T) {
	registry := NewFormatterRegistry()
	review := &types.ATSReview{
		ATSScore:    54,
		ATSScoreRaw: "54.1%",
		Feedback: types.ATSFeedback{
			ATSReadiness: "Mostly parseable.",
			Suggestions:  "Add a skills section.",
		},
	}

	out, err := registry.Format(review, "markdown")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	for _, want := range []string{"# Resume Review", "**Score:** 54/100", "Mostly parseable.", "Add a skills section."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()

	_, err := registry.Format(types.ResumeFields{}, "yaml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "yaml") {
		t.Errorf("error should name the format: %v", err)
	}
}
