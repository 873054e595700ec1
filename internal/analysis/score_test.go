package analysis

import (
	"math"
	"testing"
)

func TestFixedKeywordScore(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{
			name:     "three vocabulary hits",
			text:     "Python Java SQL developer",
			expected: 30,
		},
		{
			name:     "repeated terms count once",
			text:     "python python python",
			expected: 10,
		},
		{
			name:     "no hits",
			text:     "haiku about clouds",
			expected: 0,
		},
		{
			name:     "all ten terms",
			text:     "python java sql team project management skills experience education certified",
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixedKeywordScore(tt.text); got != tt.expected {
				t.Errorf("FixedKeywordScore(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestStructureScores(t *testing.T) {
	tests := []struct {
		missing   int
		wantATS   float64
		wantMatch float64
	}{
		{0, 100, 100},
		{1, 67, 80},
		{2, 34, 60},
		{3, 1, 40},
		{4, 0, 20},
	}

	for _, tt := range tests {
		if got := StructureScoreATS(tt.missing); got != tt.wantATS {
			t.Errorf("StructureScoreATS(%d) = %v, want %v", tt.missing, got, tt.wantATS)
		}
		if got := StructureScoreMatch(tt.missing); got != tt.wantMatch {
			t.Errorf("StructureScoreMatch(%d) = %v, want %v", tt.missing, got, tt.wantMatch)
		}
	}
}

func TestReadabilityScores(t *testing.T) {
	tests := []struct {
		avg       float64
		wantATS   float64
		wantMatch float64
	}{
		{10, 100, 100},
		{19.9, 100, 75.5},
		{20, 100, 75},
		{25, 75, 50},
		{45, 0, 0},
		{0, 100, 100},
	}

	for _, tt := range tests {
		if got := ReadabilityScoreATS(tt.avg); math.Abs(got-tt.wantATS) > 1e-9 {
			t.Errorf("ReadabilityScoreATS(%v) = %v, want %v", tt.avg, got, tt.wantATS)
		}
		if got := ReadabilityScoreMatch(tt.avg); math.Abs(got-tt.wantMatch) > 1e-9 {
			t.Errorf("ReadabilityScoreMatch(%v) = %v, want %v", tt.avg, got, tt.wantMatch)
		}
	}
}

func TestLengthScoreATSBuckets(t *testing.T) {
	tests := []struct {
		words    int
		expected float64
	}{
		{150, 100},
		{500, 100},
		{300, 100},
		{149, 50},
		{100, 50},
		{501, 50},
		{700, 50},
		{99, 25},
		{701, 25},
		{0, 25},
	}

	for _, tt := range tests {
		if got := LengthScoreATS(tt.words); got != tt.expected {
			t.Errorf("LengthScoreATS(%d) = %v, want %v", tt.words, got, tt.expected)
		}
	}
}

func TestLengthScoreMatch(t *testing.T) {
	tests := []struct {
		words    int
		expected float64
	}{
		{500, 100},
		{450, 90},
		{550, 90},
		{250, 50},
		{0, 0},
		{1100, 0},
	}

	for _, tt := range tests {
		if got := LengthScoreMatch(tt.words); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("LengthScoreMatch(%d) = %v, want %v", tt.words, got, tt.expected)
		}
	}
}

func TestATSComposite(t *testing.T) {
	if got := ATSComposite(100, 100, 100, 100); got != 100 {
		t.Errorf("ATSComposite(100,100,100,100) = %v, want 100", got)
	}
	// 0.3*30 + 0.3*67 + 0.2*100 + 0.2*25 = 54.1
	if got := ATSComposite(30, 67, 100, 25); got != 54.1 {
		t.Errorf("ATSComposite(30,67,100,25) = %v, want 54.1", got)
	}
}

func TestMatchCompositeTruncates(t *testing.T) {
	// 0.4*55 + 0.3*60 + 0.2*75 + 0.1*85 = 63.5, truncated to 63
	if got := MatchComposite(55, 60, 75, 85); got != 63 {
		t.Errorf("MatchComposite(55,60,75,85) = %v, want 63", got)
	}
	if got := MatchComposite(100, 100, 100, 100); got != 100 {
		t.Errorf("MatchComposite(100,100,100,100) = %v, want 100", got)
	}
}

func TestScoreResumeCompositeMatchesParts(t *testing.T) {
	text := "Jane Doe. Experienced Python developer. Education in computer science. Skills include SQL and teamwork. Experience leading a project."

	breakdown := ScoreResume(text)

	want := ATSComposite(
		breakdown.KeywordScore,
		breakdown.StructureScore,
		breakdown.ReadabilityScore,
		breakdown.LengthScore,
	)
	if breakdown.Composite != want {
		t.Errorf("Composite = %v, want %v from its own parts", breakdown.Composite, want)
	}

	for name, v := range map[string]float64{
		"keyword":     breakdown.KeywordScore,
		"structure":   breakdown.StructureScore,
		"readability": breakdown.ReadabilityScore,
		"length":      breakdown.LengthScore,
		"composite":   breakdown.Composite,
	} {
		if v < 0 || v > 100 {
			t.Errorf("%s score %v outside [0,100]", name, v)
		}
	}
}

func TestScoreResumeAllSectionsPresent(t *testing.T) {
	text := "experience education skills"
	breakdown := ScoreResume(text)
	if breakdown.StructureScore != 100 {
		t.Errorf("StructureScore = %v, want 100 when all sections present", breakdown.StructureScore)
	}
}
