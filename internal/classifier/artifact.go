package classifier

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Artifact format version written by SaveArtifacts.
const artifactVersion = 1

// VectorizerArtifact is the persisted form of a TfidfVectorizer.
type VectorizerArtifact struct {
	Version    int            `json:"version"`
	Kind       string         `json:"kind"`
	Lowercase  bool           `json:"lowercase"`
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// ModelArtifact is the persisted form of a LinearModel.
type ModelArtifact struct {
	Version   int       `json:"version"`
	Kind      string    `json:"kind"`
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
	Classes   []int     `json:"classes"`
}

const (
	kindTfidf  = "tfidf"
	kindLinear = "linear"
)

// Artifact returns the persisted form of v.
func (v *TfidfVectorizer) Artifact() VectorizerArtifact {
	vocab := make(map[string]int, len(v.vocabulary))
	for term, idx := range v.vocabulary {
		vocab[term] = idx
	}
	return VectorizerArtifact{
		Version:    artifactVersion,
		Kind:       kindTfidf,
		Lowercase:  v.lowercase,
		Vocabulary: vocab,
		IDF:        append([]float64(nil), v.idf...),
	}
}

// Artifact returns the persisted form of m.
func (m *LinearModel) Artifact() ModelArtifact {
	return ModelArtifact{
		Version:   artifactVersion,
		Kind:      kindLinear,
		Coef:      append([]float64(nil), m.coef...),
		Intercept: m.intercept,
		Classes:   []int{m.classes[0], m.classes[1]},
	}
}

// LoadArtifacts reads and validates a vectorizer/model pair. Any failure is
// fatal for the caller: the service must not start with a broken model.
func LoadArtifacts(vectorizerPath, modelPath string) (*TfidfVectorizer, *LinearModel, error) {
	var va VectorizerArtifact
	if err := readJSON(vectorizerPath, &va); err != nil {
		return nil, nil, fmt.Errorf("failed to load vectorizer: %w", err)
	}
	if va.Kind != kindTfidf {
		return nil, nil, fmt.Errorf("failed to load vectorizer: %w: unexpected kind %q", ErrInvalidArtifact, va.Kind)
	}
	vec, err := NewTfidfVectorizer(va.Vocabulary, va.IDF, va.Lowercase)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load vectorizer: %w", err)
	}

	var ma ModelArtifact
	if err := readJSON(modelPath, &ma); err != nil {
		return nil, nil, fmt.Errorf("failed to load model: %w", err)
	}
	if ma.Kind != kindLinear {
		return nil, nil, fmt.Errorf("failed to load model: %w: unexpected kind %q", ErrInvalidArtifact, ma.Kind)
	}
	if len(ma.Classes) != 2 {
		return nil, nil, fmt.Errorf("failed to load model: %w: expected 2 classes, got %d", ErrInvalidArtifact, len(ma.Classes))
	}
	model, err := NewLinearModel(ma.Coef, ma.Intercept, [2]int{ma.Classes[0], ma.Classes[1]})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load model: %w", err)
	}

	if vec.Dim() != model.Dim() {
		return nil, nil, fmt.Errorf("%w: vectorizer has %d features, model expects %d", ErrInvalidArtifact, vec.Dim(), model.Dim())
	}

	return vec, model, nil
}

// SaveArtifacts writes the pair as JSON. Paths ending in ".gz" are gzip-compressed.
func SaveArtifacts(vec *TfidfVectorizer, model *LinearModel, vectorizerPath, modelPath string) error {
	if err := writeJSON(vectorizerPath, vec.Artifact()); err != nil {
		return fmt.Errorf("failed to save vectorizer: %w", err)
	}
	if err := writeJSON(modelPath, model.Artifact()); err != nil {
		return fmt.Errorf("failed to save model: %w", err)
	}
	return nil
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
		}
		defer gz.Close()
		r = gz
	}

	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	var w io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		f.Close()
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
