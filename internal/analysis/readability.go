package analysis

// AvgSentenceLength returns the average token count per sentence, or 0 when
// the text has no sentences.
func AvgSentenceLength(text string) float64 {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return 0
	}

	total := 0
	for _, s := range sentences {
		total += WordCount(s)
	}
	return float64(total) / float64(len(sentences))
}
