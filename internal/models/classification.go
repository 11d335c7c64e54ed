package models

import "fmt"

// Label is the user-facing verdict of the local classifier.
type Label string

// Classification labels. LabelUncertain is never produced by the model itself;
// it comes from thresholding or from a failed prediction.
const (
	LabelReal      Label = "real"
	LabelFake      Label = "fake"
	LabelUncertain Label = "uncertain"
)

// Class ids emitted by the trained model.
const (
	ClassFake = 0
	ClassReal = 1
)

// ClassificationResult is the confidence-scored output of the local predictor.
type ClassificationResult struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
}

// IsUncertain reports whether the caller should fall back to the lookup.
func (r ClassificationResult) IsUncertain() bool {
	return r.Label == LabelUncertain
}

// LabelForClass maps a model class id to its label.
func LabelForClass(class int) (Label, error) {
	switch class {
	case ClassReal:
		return LabelReal, nil
	case ClassFake:
		return LabelFake, nil
	default:
		return "", fmt.Errorf("unknown class id %d", class)
	}
}
