package classifier

import (
	"fmt"
	"math"

	"newscheck/internal/models"
)

// Model is a fitted binary classifier.
type Model interface {
	// DecisionFunction returns the signed distance from the decision boundary.
	DecisionFunction(x FeatureVector) (float64, error)
	// Predict returns the class id: 1 = real, 0 = fake.
	Predict(x FeatureVector) (int, error)
}

// LinearModel scores a vector as coef·x + intercept. Positive scores map to
// Classes[1], everything else to Classes[0].
type LinearModel struct {
	coef      []float64
	intercept float64
	classes   [2]int
}

// NewLinearModel validates and copies the fitted parameters.
func NewLinearModel(coef []float64, intercept float64, classes [2]int) (*LinearModel, error) {
	if len(coef) == 0 {
		return nil, fmt.Errorf("%w: empty coefficient vector", ErrInvalidArtifact)
	}
	for i, w := range coef {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: coef[%d] = %v", ErrInvalidArtifact, i, w)
		}
	}
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return nil, fmt.Errorf("%w: intercept = %v", ErrInvalidArtifact, intercept)
	}
	for _, c := range classes {
		if _, err := models.LabelForClass(c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
		}
	}
	if classes[0] == classes[1] {
		return nil, fmt.Errorf("%w: duplicate class %d", ErrInvalidArtifact, classes[0])
	}

	return &LinearModel{
		coef:      append([]float64(nil), coef...),
		intercept: intercept,
		classes:   classes,
	}, nil
}

// Dim returns the number of coefficients.
func (m *LinearModel) Dim() int {
	return len(m.coef)
}

// DecisionFunction computes coef·x + intercept.
func (m *LinearModel) DecisionFunction(x FeatureVector) (float64, error) {
	if x.Dim != len(m.coef) {
		return 0, fmt.Errorf("%w: vector has %d features, model expects %d", ErrDimensionMismatch, x.Dim, len(m.coef))
	}
	if len(x.Indices) != len(x.Values) {
		return 0, fmt.Errorf("%w: %d indices but %d values", ErrDimensionMismatch, len(x.Indices), len(x.Values))
	}

	score := m.intercept
	for k, idx := range x.Indices {
		if idx < 0 || idx >= len(m.coef) {
			return 0, fmt.Errorf("%w: index %d out of range", ErrDimensionMismatch, idx)
		}
		score += m.coef[idx] * x.Values[k]
	}
	return score, nil
}

// Predict returns the class on the side of the boundary x falls on.
func (m *LinearModel) Predict(x FeatureVector) (int, error) {
	score, err := m.DecisionFunction(x)
	if err != nil {
		return 0, err
	}
	if score > 0 {
		return m.classes[1], nil
	}
	return m.classes[0], nil
}
