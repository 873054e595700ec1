package analysis

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "punctuation and case folding",
			text:     "Python, python3 SQL!",
			expected: []string{"python", "python", "sql"},
		},
		{
			name:     "digits split tokens",
			text:     "go1.24 release",
			expected: []string{"go", "release"},
		},
		{
			name:     "empty text",
			text:     "",
			expected: []string{},
		},
		{
			name:     "only separators",
			text:     "123 !?- 456",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestUniqueTokens(t *testing.T) {
	set := UniqueTokens("Go go GO gopher")
	if len(set) != 2 {
		t.Fatalf("expected 2 unique tokens, got %d: %v", len(set), set)
	}
	if _, ok := set["go"]; !ok {
		t.Error("expected token 'go' in set")
	}
	if _, ok := set["gopher"]; !ok {
		t.Error("expected token 'gopher' in set")
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"two sentences", "Hello world. Nice day!", 2},
		{"trailing terminators produce no empty sentences", "Done.?! ", 1},
		{"no terminator is one sentence", "no terminator here", 1},
		{"empty text", "", 0},
		{"only terminators", "...", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitSentences(tt.text); len(got) != tt.expected {
				t.Errorf("SplitSentences(%q) returned %d sentences, want %d", tt.text, len(got), tt.expected)
			}
		})
	}
}

func TestAvgSentenceLength(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{"mixed lengths", "One two three. Four five.", 2.5},
		{"empty text", "", 0},
		{"single word", "Hi.", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AvgSentenceLength(tt.text); got != tt.expected {
				t.Errorf("AvgSentenceLength(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("a b  c\nd\t"); got != 4 {
		t.Errorf("WordCount = %d, want 4", got)
	}
	if got := WordCount(""); got != 0 {
		t.Errorf("WordCount of empty text = %d, want 0", got)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips null bytes", "a\x00b", "ab"},
		{"keeps tabs and newlines", "a\tb\nc\r", "a\tb\nc\r"},
		{"strips other control characters", "a\x01\x02b\x1f", "ab"},
		{"plain text unchanged", "Jane Doe", "Jane Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.expected {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
