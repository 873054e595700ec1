package analysis

import "math"

// CosineSimilarity computes the TF-IDF cosine similarity between two
// tokenized documents, scaled to a 0-100 percentage.
//
// The vectorizer fits on exactly these two documents: term frequency is the
// raw in-document count, the inverse document frequency uses the smoothed
// form ln((1+n)/(1+df))+1 with n=2, and each vector is L2-normalized. IDF
// values are only meaningful relative to this pair, which is an accepted
// approximation for single-request matching.
func CosineSimilarity(docA, docB []string) float64 {
	if len(docA) == 0 || len(docB) == 0 {
		return 0
	}

	tfA := termCounts(docA)
	tfB := termCounts(docB)

	vocab := make(map[string]struct{}, len(tfA)+len(tfB))
	for t := range tfA {
		vocab[t] = struct{}{}
	}
	for t := range tfB {
		vocab[t] = struct{}{}
	}

	const nDocs = 2.0
	var dot, normA, normB float64
	for term := range vocab {
		df := 0.0
		if tfA[term] > 0 {
			df++
		}
		if tfB[term] > 0 {
			df++
		}
		idf := math.Log((1+nDocs)/(1+df)) + 1

		wa := float64(tfA[term]) * idf
		wb := float64(tfB[term]) * idf
		dot += wa * wb
		normA += wa * wa
		normB += wb * wb
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)) * 100
}

func termCounts(doc []string) map[string]int {
	counts := make(map[string]int, len(doc))
	for _, t := range doc {
		counts[t]++
	}
	return counts
}
