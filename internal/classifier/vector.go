package classifier

// FeatureVector is a sparse numeric representation of a text sample.
// Indices are strictly increasing and all lie in [0, Dim).
type FeatureVector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// NNZ returns the number of stored entries.
func (v FeatureVector) NNZ() int {
	return len(v.Indices)
}

// Get returns the value at index i, or 0 if it is not stored.
func (v FeatureVector) Get(i int) float64 {
	for k, idx := range v.Indices {
		if idx == i {
			return v.Values[k]
		}
		if idx > i {
			break
		}
	}
	return 0
}
