// Package detector implements the hybrid decision policy: trust the local
// classifier when it is confident, otherwise fall back to a live news search.
package detector

import (
	"context"
	"fmt"
	"time"

	"newscheck/internal/classifier"
	"newscheck/internal/logging"
	"newscheck/internal/models"
	"newscheck/internal/newsapi"
)

// Output strings of the fallback branch.
const (
	fallbackPrefix  = "UNCERTAIN → Using NewsAPI:\n\n"
	fallbackNothing = "UNCERTAIN → No reliable information found."
)

// Predictor is the local classifier.
type Predictor interface {
	Predict(text string, threshold float64) (models.ClassificationResult, error)
}

// Searcher is the remote news lookup.
type Searcher interface {
	Search(ctx context.Context, query string) (*models.NewsLookupResult, error)
}

// Verdict is the full record of one decision. Output is what the user sees;
// the error fields keep the causes that Output deliberately hides.
type Verdict struct {
	Decision       string
	Classification models.ClassificationResult
	PredictErr     error
	Lookup         string // lookup outcome, one of models.Lookup*
	LookupText     string
	LookupErr      error
	LookupDuration time.Duration
	Output         string
}

// Service sequences the predictor and the lookup. It keeps no state between
// calls and is safe for concurrent use.
type Service struct {
	predictor Predictor
	searcher  Searcher
	threshold float64
}

// NewService creates a new decision service.
func NewService(predictor Predictor, searcher Searcher, threshold float64) *Service {
	return &Service{predictor: predictor, searcher: searcher, threshold: threshold}
}

// Threshold returns the confidence threshold in use.
func (s *Service) Threshold() float64 {
	return s.threshold
}

// FinalOutput returns the user-facing answer for text. It never fails.
func (s *Service) FinalOutput(ctx context.Context, text string) string {
	return s.Decide(ctx, text).Output
}

// Decide runs the policy once: classifier first, lookup only when the
// classifier reports uncertain.
func (s *Service) Decide(ctx context.Context, text string) Verdict {
	logger := logging.FromContext(ctx)

	result, err := s.predictor.Predict(text, s.threshold)
	v := Verdict{Classification: result, PredictErr: err, Lookup: models.LookupSkipped}
	if err != nil {
		logger.Warn("prediction failed, treating as uncertain",
			"kind", string(classifier.KindOf(err)),
			"error", err,
		)
	}

	if !result.IsUncertain() {
		v.Decision = models.DecisionTrustModel
		v.Output = formatLabel(result)
		return v
	}

	v.Decision = models.DecisionFallback
	start := time.Now()
	found, lookupErr := s.searcher.Search(ctx, text)
	v.LookupDuration = time.Since(start)
	v.Lookup = newsapi.Outcome(found, lookupErr)
	v.LookupErr = lookupErr
	v.LookupText = newsapi.Report(ctx, found, lookupErr)

	if v.LookupText != newsapi.NotFound {
		v.Output = fallbackPrefix + v.LookupText
	} else {
		v.Output = fallbackNothing
	}
	return v
}

func formatLabel(r models.ClassificationResult) string {
	label := "FAKE NEWS ✗"
	if r.Label == models.LabelReal {
		label = "REAL NEWS ✓"
	}
	return fmt.Sprintf("%s\nConfidence: %.2f", label, r.Confidence)
}
