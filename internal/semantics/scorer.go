// Package semantics scores meaning preservation between two texts using
// TF-IDF weighted bag-of-words vectors and cosine similarity.
package semantics

import (
	"math"
	"regexp"
	"strings"
)

// nonWord splits text into word tokens (letters and digits).
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}']+`)

// Similarity returns the cosine similarity between a and b in [0,1].
//
// Vectors are term frequencies over content words (stopwords filtered),
// weighted by smoothed inverse document frequency over the two-document
// corpus {a, b}. Symmetric by construction. Both empty is defined as 1.0
// (trivially identical); one empty is 0.0. When filtering leaves either
// side without content words, the raw token vectors are compared instead.
func Similarity(a, b string) float64 {
	ta := tokenize(a)
	tb := tokenize(b)

	switch {
	case len(ta) == 0 && len(tb) == 0:
		return 1.0
	case len(ta) == 0 || len(tb) == 0:
		return 0.0
	}

	ca := contentWords(ta)
	cb := contentWords(tb)
	if len(ca) > 0 && len(cb) > 0 {
		ta, tb = ca, cb
	}

	tfA := termFrequencies(ta)
	tfB := termFrequencies(tb)

	// Smoothed IDF over N=2 documents: 1 + ln((1+N)/(1+df)).
	// Terms present in both documents keep weight 1; unique terms weigh more.
	idf := func(term string) float64 {
		df := 0.0
		if _, ok := tfA[term]; ok {
			df++
		}
		if _, ok := tfB[term]; ok {
			df++
		}
		return 1 + math.Log(3/(1+df))
	}

	var dot, normA, normB float64
	for term, fa := range tfA {
		w := idf(term)
		wa := fa * w
		normA += wa * wa
		if fb, ok := tfB[term]; ok {
			dot += wa * fb * w
		}
	}
	for term, fb := range tfB {
		wb := fb * idf(term)
		normB += wb * wb
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	score := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return clamp01(score)
}

// Overlap returns the Jaccard word overlap between a and b in [0,1].
// Cheaper than Similarity; used for near-duplicate sentence detection.
func Overlap(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)

	if len(wa) == 0 || len(wb) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			intersection++
		}
	}
	union := len(wa) + len(wb) - intersection
	return float64(intersection) / float64(union)
}

func tokenize(text string) []string {
	var tokens []string
	for _, tok := range nonWord.Split(strings.ToLower(text), -1) {
		tok = strings.Trim(tok, "'")
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func contentWords(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if !isStopword(tok) {
			out = append(out, tok)
		}
	}
	return out
}

func termFrequencies(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	for term := range tf {
		tf[term] /= float64(len(tokens))
	}
	return tf
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
