package training

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"newscheck/internal/classifier"
)

// ErrEmptyVocabulary is returned when every term was filtered out.
var ErrEmptyVocabulary = errors.New("empty vocabulary after filtering")

// TfidfOptions controls vocabulary selection.
type TfidfOptions struct {
	// MaxDF drops terms that appear in more than this fraction of documents.
	MaxDF float64
	// StopWords are never added to the vocabulary.
	StopWords map[string]struct{}
}

// FitTfidf learns a lowercase vocabulary and smoothed idf weights from docs.
// Columns are assigned in lexical term order.
func FitTfidf(docs []string, opts TfidfOptions) (*classifier.TfidfVectorizer, error) {
	if len(docs) == 0 {
		return nil, errors.New("no documents")
	}
	if opts.MaxDF <= 0 || opts.MaxDF > 1 {
		return nil, fmt.Errorf("max df must be in (0, 1], got %v", opts.MaxDF)
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range classifier.Tokenize(doc, true) {
			if _, stop := opts.StopWords[tok]; stop {
				continue
			}
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	n := float64(len(docs))
	maxCount := opts.MaxDF * n
	terms := make([]string, 0, len(df))
	for term, count := range df {
		if float64(count) > maxCount {
			continue
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return nil, ErrEmptyVocabulary
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		vocab[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return classifier.NewTfidfVectorizer(vocab, idf, true)
}
