package classifier

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Vectorizer turns text into a feature vector using a vocabulary fixed at training time.
type Vectorizer interface {
	Transform(text string) (FeatureVector, error)
}

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize splits text into word tokens, lowercasing first when asked to.
func Tokenize(text string, lowercase bool) []string {
	if lowercase {
		text = strings.ToLower(text)
	}
	return tokenPattern.FindAllString(text, -1)
}

// TfidfVectorizer is a fitted TF-IDF transform with l2 normalisation.
// It is never mutated after construction and is safe for concurrent use.
type TfidfVectorizer struct {
	vocabulary map[string]int
	idf        []float64
	lowercase  bool
}

// NewTfidfVectorizer builds a vectorizer from a vocabulary (term -> column)
// and per-column idf weights. Both are copied.
func NewTfidfVectorizer(vocabulary map[string]int, idf []float64, lowercase bool) (*TfidfVectorizer, error) {
	if len(vocabulary) != len(idf) {
		return nil, fmt.Errorf("%w: vocabulary has %d terms but idf has %d weights", ErrInvalidArtifact, len(vocabulary), len(idf))
	}

	seen := make([]bool, len(idf))
	vocab := make(map[string]int, len(vocabulary))
	for term, idx := range vocabulary {
		if idx < 0 || idx >= len(idf) {
			return nil, fmt.Errorf("%w: term %q has out of range index %d", ErrInvalidArtifact, term, idx)
		}
		if seen[idx] {
			return nil, fmt.Errorf("%w: index %d assigned to more than one term", ErrInvalidArtifact, idx)
		}
		seen[idx] = true
		vocab[term] = idx
	}
	for i, w := range idf {
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return nil, fmt.Errorf("%w: idf[%d] = %v", ErrInvalidArtifact, i, w)
		}
	}

	return &TfidfVectorizer{
		vocabulary: vocab,
		idf:        append([]float64(nil), idf...),
		lowercase:  lowercase,
	}, nil
}

// Dim returns the number of feature columns.
func (v *TfidfVectorizer) Dim() int {
	return len(v.idf)
}

// Transform counts known terms, weights them by idf and l2-normalises the result.
// Text with no known terms yields an all-zero vector.
func (v *TfidfVectorizer) Transform(text string) (FeatureVector, error) {
	counts := make(map[int]float64)
	for _, tok := range Tokenize(text, v.lowercase) {
		if idx, ok := v.vocabulary[tok]; ok {
			counts[idx]++
		}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	var sumSq float64
	for k, idx := range indices {
		values[k] = counts[idx] * v.idf[idx]
		sumSq += values[k] * values[k]
	}
	if sumSq > 0 {
		norm := math.Sqrt(sumSq)
		for k := range values {
			values[k] /= norm
		}
	}

	return FeatureVector{Dim: len(v.idf), Indices: indices, Values: values}, nil
}
