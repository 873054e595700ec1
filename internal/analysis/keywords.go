package analysis

import (
	"strings"

	"github.com/kljensen/snowball"
)

// englishStopwords is the stop-word list applied before vectorization.
// Tokens in this set carry no signal for resume/job matching.
var englishStopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`a about above after again against all am an and any are as at be because
been before being below between both but by can could did do does doing down during each few for from further
had has have having he her here hers herself him himself his how i if in into is it its itself just me more
most my myself no nor not now of off on once only or other our ours ourselves out over own same she should so
some such than that the their theirs them themselves then there these they this those through to too under
until up very was we were what when where which while who whom why will with would you your yours yourself
yourselves`) {
		englishStopwords[w] = struct{}{}
	}
}

// Preprocess lowercases text, keeps alphabetic tokens, drops stop-words and
// stems the remainder. Stemming stands in for lemmatization; close enough
// for overlap and TF-IDF purposes on this kind of text.
func Preprocess(text string) []string {
	tokens := Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stop := englishStopwords[tok]; stop {
			continue
		}
		stemmed, err := snowball.Stem(tok, "english", true)
		if err != nil || stemmed == "" {
			// Unstemmable tokens pass through untouched.
			stemmed = tok
		}
		out = append(out, stemmed)
	}
	return out
}

// KeywordComparison holds the term-overlap view of a resume against a job
// description. Terms are preprocessed (stemmed, stop-words removed).
type KeywordComparison struct {
	ResumeTerms     []string
	JobTerms        []string
	MissingKeywords []string
	OverlapCount    int
}

// CompareKeywords derives the missing-keyword set and overlap count between
// preprocessed resume and job-description terms. MissingKeywords is the job
// term set minus the resume term set; ordering follows first occurrence in
// the job description.
func CompareKeywords(resumeTerms, jobTerms []string) KeywordComparison {
	resumeSet := toSet(resumeTerms)
	jobSet := toSet(jobTerms)

	overlap := 0
	for term := range jobSet {
		if _, ok := resumeSet[term]; ok {
			overlap++
		}
	}

	var missing []string
	seen := make(map[string]struct{})
	for _, term := range jobTerms {
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		if _, ok := resumeSet[term]; !ok {
			missing = append(missing, term)
		}
	}

	return KeywordComparison{
		ResumeTerms:     resumeTerms,
		JobTerms:        jobTerms,
		MissingKeywords: missing,
		OverlapCount:    overlap,
	}
}

// OverlapScore is the crude keyword sub-score used in the job-match
// composite: ten points per shared term, capped at 100. Distinct from the
// cosine-similarity percentage, which is reported separately.
func (kc KeywordComparison) OverlapScore() float64 {
	return min(100, float64(kc.OverlapCount)*10)
}

// TruncateKeywords caps a keyword list for display.
func TruncateKeywords(keywords []string, limit int) []string {
	if len(keywords) <= limit {
		return keywords
	}
	return keywords[:limit]
}

func toSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}
