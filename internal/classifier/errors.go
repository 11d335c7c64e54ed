package classifier

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput means the text could not be processed at all.
	ErrMalformedInput = errors.New("malformed input text")

	// ErrDimensionMismatch means a vector does not fit the model.
	ErrDimensionMismatch = errors.New("feature dimension mismatch")

	// ErrNonFiniteScore means the model produced NaN or Inf.
	ErrNonFiniteScore = errors.New("non-finite decision score")

	// ErrInvalidArtifact means a persisted vectorizer or model failed validation.
	ErrInvalidArtifact = errors.New("invalid model artifact")
)

// ErrorKind identifies which stage of a prediction failed.
type ErrorKind string

const (
	KindInput     ErrorKind = "input"
	KindTransform ErrorKind = "transform"
	KindModel     ErrorKind = "model"
)

// PredictError is returned by Classify when any stage of inference fails.
type PredictError struct {
	Kind ErrorKind
	Err  error
}

func (e *PredictError) Error() string {
	return fmt.Sprintf("predict failed (%s): %v", e.Kind, e.Err)
}

func (e *PredictError) Unwrap() error { return e.Err }

// KindOf returns the failure kind of err, or "" if err is not a PredictError.
func KindOf(err error) ErrorKind {
	var pe *PredictError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
