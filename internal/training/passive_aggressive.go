package training

import (
	"errors"
	"fmt"
	"math/rand"

	"newscheck/internal/classifier"
	"newscheck/internal/models"
)

// PAOptions controls the passive-aggressive fit.
type PAOptions struct {
	C       float64 // aggressiveness cap on each step
	MaxIter int     // epochs over the training set
	Seed    int64   // per-epoch shuffle seed
}

// FitResult reports how training went.
type FitResult struct {
	Model  *classifier.LinearModel
	Epochs int
	// Converged is true when the last epoch made no update.
	Converged bool
}

// FitPassiveAggressive trains a PA-I classifier with hinge loss. The
// intercept is learned as the weight of a constant feature.
func FitPassiveAggressive(x []classifier.FeatureVector, y []int, opts PAOptions) (FitResult, error) {
	if len(x) == 0 {
		return FitResult{}, errors.New("no training samples")
	}
	if len(x) != len(y) {
		return FitResult{}, fmt.Errorf("%d samples but %d labels", len(x), len(y))
	}
	if opts.C <= 0 {
		return FitResult{}, fmt.Errorf("C must be positive, got %v", opts.C)
	}
	if opts.MaxIter <= 0 {
		return FitResult{}, fmt.Errorf("max iter must be positive, got %d", opts.MaxIter)
	}

	dim := x[0].Dim
	sign := make([]float64, len(y))
	for i, label := range y {
		if x[i].Dim != dim {
			return FitResult{}, fmt.Errorf("sample %d: %w", i, classifier.ErrDimensionMismatch)
		}
		switch label {
		case models.ClassReal:
			sign[i] = 1
		case models.ClassFake:
			sign[i] = -1
		default:
			return FitResult{}, fmt.Errorf("sample %d: unknown label %d", i, label)
		}
	}

	w := make([]float64, dim)
	var b float64
	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	res := FitResult{}
	for epoch := 1; epoch <= opts.MaxIter; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		updates := 0
		for _, i := range order {
			xi := x[i]
			score := b
			sqNorm := 1.0
			for k, idx := range xi.Indices {
				score += w[idx] * xi.Values[k]
				sqNorm += xi.Values[k] * xi.Values[k]
			}

			loss := 1 - sign[i]*score
			if loss <= 0 {
				continue
			}
			tau := min(opts.C, loss/sqNorm)
			for k, idx := range xi.Indices {
				w[idx] += tau * sign[i] * xi.Values[k]
			}
			b += tau * sign[i]
			updates++
		}

		res.Epochs = epoch
		if updates == 0 {
			res.Converged = true
			break
		}
	}

	model, err := classifier.NewLinearModel(w, b, [2]int{models.ClassFake, models.ClassReal})
	if err != nil {
		return FitResult{}, err
	}
	res.Model = model
	return res, nil
}

// Accuracy returns the fraction of samples the model labels correctly.
func Accuracy(model classifier.Model, x []classifier.FeatureVector, y []int) (float64, error) {
	if len(x) == 0 {
		return 0, errors.New("no samples")
	}
	correct := 0
	for i := range x {
		got, err := model.Predict(x[i])
		if err != nil {
			return 0, err
		}
		if got == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(x)), nil
}

// TransformAll vectorizes every text.
func TransformAll(v classifier.Vectorizer, texts []string) ([]classifier.FeatureVector, error) {
	out := make([]classifier.FeatureVector, len(texts))
	for i, t := range texts {
		vec, err := v.Transform(t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}
