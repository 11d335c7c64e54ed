// Package classifier holds the local headline classifier: a frozen TF-IDF
// vectorizer, a linear model and the thresholding Predictor on top of them.
package classifier

import (
	"fmt"
	"math"
	"unicode/utf8"

	"newscheck/internal/models"
)

// DefaultThreshold is the confidence below which predictions are reported as uncertain.
const DefaultThreshold = 0.6

// Predictor combines a vectorizer and a model into confidence-scored labels.
// Both collaborators are read-only, so one Predictor serves all requests.
type Predictor struct {
	vectorizer Vectorizer
	model      Model
}

// NewPredictor creates a new predictor.
func NewPredictor(vectorizer Vectorizer, model Model) *Predictor {
	return &Predictor{vectorizer: vectorizer, model: model}
}

// Classify labels text, returning a *PredictError if any stage fails.
// Confidence is the magnitude of the decision score; below threshold the
// model's own class is discarded and the label is uncertain.
func (p *Predictor) Classify(text string, threshold float64) (models.ClassificationResult, error) {
	if !utf8.ValidString(text) {
		return models.ClassificationResult{}, &PredictError{Kind: KindInput, Err: ErrMalformedInput}
	}

	x, err := p.vectorizer.Transform(text)
	if err != nil {
		return models.ClassificationResult{}, &PredictError{Kind: KindTransform, Err: err}
	}

	score, err := p.model.DecisionFunction(x)
	if err != nil {
		return models.ClassificationResult{}, &PredictError{Kind: KindModel, Err: err}
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return models.ClassificationResult{}, &PredictError{Kind: KindModel, Err: ErrNonFiniteScore}
	}

	confidence := math.Abs(score)
	if confidence < threshold {
		return models.ClassificationResult{Label: models.LabelUncertain, Confidence: confidence}, nil
	}

	class, err := p.model.Predict(x)
	if err != nil {
		return models.ClassificationResult{}, &PredictError{Kind: KindModel, Err: err}
	}
	label, err := models.LabelForClass(class)
	if err != nil {
		return models.ClassificationResult{}, &PredictError{Kind: KindModel, Err: fmt.Errorf("model returned %w", err)}
	}

	return models.ClassificationResult{Label: label, Confidence: confidence}, nil
}

// Predict is the never-failing form of Classify. On error the result is
// uncertain with zero confidence, which callers cannot tell apart from a
// genuinely low-confidence prediction; the error is returned alongside
// only so it can be logged and counted.
func (p *Predictor) Predict(text string, threshold float64) (models.ClassificationResult, error) {
	result, err := p.Classify(text, threshold)
	if err != nil {
		return Failed(), err
	}
	return result, nil
}

// Failed is the result reported for any inference failure.
func Failed() models.ClassificationResult {
	return models.ClassificationResult{Label: models.LabelUncertain, Confidence: 0.0}
}
