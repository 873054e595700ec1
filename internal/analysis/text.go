package analysis

import (
	"strings"
	"unicode"
)

// Sanitize strips control characters below code point 32, keeping tab,
// newline and carriage return so multi-line section bodies survive.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 32 || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}

// Tokenize splits text into lowercased alphabetic tokens. Runs of
// non-letter characters act as separators, so "python," and "Python"
// produce the same token.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// UniqueTokens returns the set of distinct alphabetic tokens in text.
func UniqueTokens(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}

// SplitSentences segments text on sentence terminators. Fragments that
// contain no tokens are dropped.
func SplitSentences(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
