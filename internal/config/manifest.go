package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ModelManifest describes the artifacts produced by the trainer.
// It is optional; without it the default file names in ModelDir are used.
type ModelManifest struct {
	Vectorizer string   `yaml:"vectorizer"`
	Model      string   `yaml:"model"`
	Threshold  *float64 `yaml:"threshold,omitempty"`
	Accuracy   float64  `yaml:"accuracy,omitempty"`
	TrainedAt  string   `yaml:"trained_at,omitempty"`
}

// Default artifact file names.
const (
	DefaultVectorizerFile = "vectorizer.json"
	DefaultModelFile      = "model.json"
)

// LoadManifest loads the YAML model manifest.
// Returns nil without error if the file doesn't exist.
func LoadManifest(path string) (*ModelManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Manifest is optional
			return nil, nil
		}
		return nil, err
	}

	var m ModelManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return &m, nil
}

// WriteManifest saves the manifest as YAML.
func WriteManifest(path string, m *ModelManifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ArtifactPaths resolves the vectorizer and model paths relative to dir.
func (m *ModelManifest) ArtifactPaths(dir string) (vectorizer, model string) {
	vectorizer, model = DefaultVectorizerFile, DefaultModelFile
	if m != nil {
		if m.Vectorizer != "" {
			vectorizer = m.Vectorizer
		}
		if m.Model != "" {
			model = m.Model
		}
	}
	if !filepath.IsAbs(vectorizer) {
		vectorizer = filepath.Join(dir, vectorizer)
	}
	if !filepath.IsAbs(model) {
		model = filepath.Join(dir, model)
	}
	return vectorizer, model
}
