package classifier

import (
	"errors"
)

// stubVectorizer returns a fixed vector or error.
type stubVectorizer struct {
	vec FeatureVector
	err error
}

func (s *stubVectorizer) Transform(string) (FeatureVector, error) {
	return s.vec, s.err
}

// stubModel returns a fixed score and class.
type stubModel struct {
	score      float64
	class      int
	scoreErr   error
	predictErr error
}

func (s *stubModel) DecisionFunction(FeatureVector) (float64, error) {
	return s.score, s.scoreErr
}

func (s *stubModel) Predict(FeatureVector) (int, error) {
	return s.class, s.predictErr
}

var errBoom = errors.New("boom")

// newTestPair builds a small fitted pair:
// "senate" and "report" push towards real, "shocking" and "aliens" towards fake.
func newTestPair() (*TfidfVectorizer, *LinearModel) {
	vec, err := NewTfidfVectorizer(map[string]int{
		"senate":   0,
		"report":   1,
		"shocking": 2,
		"aliens":   3,
	}, []float64{1.5, 1.2, 1.8, 2.0}, true)
	if err != nil {
		panic(err)
	}
	model, err := NewLinearModel([]float64{2.0, 1.0, -1.5, -2.5}, 0.1, [2]int{0, 1})
	if err != nil {
		panic(err)
	}
	return vec, model
}
