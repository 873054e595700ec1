package analysis

import (
	"math"
	"reflect"
	"slices"
	"testing"
)

func TestPreprocessDropsStopwordsAndStems(t *testing.T) {
	got := Preprocess("The tests are running")

	if slices.Contains(got, "the") || slices.Contains(got, "are") {
		t.Errorf("stop-words survived preprocessing: %v", got)
	}
	if !slices.Contains(got, "test") {
		t.Errorf("expected stemmed token 'test' in %v", got)
	}
	if !slices.Contains(got, "run") {
		t.Errorf("expected stemmed token 'run' in %v", got)
	}
}

func TestPreprocessEmptyText(t *testing.T) {
	if got := Preprocess(""); len(got) != 0 {
		t.Errorf("Preprocess(\"\") = %v, want empty", got)
	}
}

func TestCompareKeywords(t *testing.T) {
	resume := []string{"python", "sql", "docker"}
	job := []string{"python", "kubernetes", "sql", "kubernetes", "terraform"}

	cmp := CompareKeywords(resume, job)

	if cmp.OverlapCount != 2 {
		t.Errorf("OverlapCount = %d, want 2", cmp.OverlapCount)
	}
	if want := []string{"kubernetes", "terraform"}; !reflect.DeepEqual(cmp.MissingKeywords, want) {
		t.Errorf("MissingKeywords = %v, want %v", cmp.MissingKeywords, want)
	}
	if got := cmp.OverlapScore(); got != 20 {
		t.Errorf("OverlapScore = %v, want 20", got)
	}
}

func TestOverlapScoreCapped(t *testing.T) {
	kc := KeywordComparison{OverlapCount: 15}
	if got := kc.OverlapScore(); got != 100 {
		t.Errorf("OverlapScore = %v, want 100", got)
	}
}

func TestTruncateKeywords(t *testing.T) {
	keywords := []string{"a", "b", "c", "d"}

	if got := TruncateKeywords(keywords, 2); len(got) != 2 {
		t.Errorf("TruncateKeywords limit 2 returned %d items", len(got))
	}
	if got := TruncateKeywords(keywords, 10); len(got) != 4 {
		t.Errorf("TruncateKeywords with room returned %d items", len(got))
	}
	if got := TruncateKeywords(nil, 10); got != nil {
		t.Errorf("TruncateKeywords(nil) = %v, want nil", got)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		docA     []string
		docB     []string
		expected float64
	}{
		{
			name:     "identical documents",
			docA:     []string{"go", "rust", "go"},
			docB:     []string{"go", "rust", "go"},
			expected: 100,
		},
		{
			name:     "disjoint documents",
			docA:     []string{"apples"},
			docB:     []string{"oranges"},
			expected: 0,
		},
		{
			name:     "empty document",
			docA:     nil,
			docB:     []string{"go"},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.docA, tt.docB)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCosineSimilarityPartialOverlapBounds(t *testing.T) {
	got := CosineSimilarity(
		[]string{"go", "sql", "team"},
		[]string{"go", "kubernetes"},
	)
	if got <= 0 || got >= 100 {
		t.Errorf("partial overlap similarity %v, want strictly between 0 and 100", got)
	}
}
