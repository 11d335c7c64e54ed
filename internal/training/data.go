// Package training fits the artifacts the classifier package loads: a
// TF-IDF vocabulary and a passive-aggressive linear model.
package training

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"newscheck/internal/models"
)

// TextColumn is the CSV column holding the headline.
const TextColumn = "title"

// Sample is one labelled headline.
type Sample struct {
	Text  string
	Label int // models.ClassFake or models.ClassReal
}

// LoadCSV reads every row of path as a sample with the given label.
// Rows with an empty title are skipped.
func LoadCSV(path string, label int) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	samples, err := ReadSamples(f, label)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// ReadSamples reads CSV rows from r. The first row must be a header
// containing a title column.
func ReadSamples(r io.Reader, label int) ([]Sample, error) {
	if label != models.ClassFake && label != models.ClassReal {
		return nil, fmt.Errorf("unknown label %d", label)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file")
		}
		return nil, err
	}

	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), TextColumn) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("no %q column in header", TextColumn)
	}

	var samples []Sample
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if col >= len(record) {
			continue
		}
		text := strings.TrimSpace(record[col])
		if text == "" {
			continue
		}
		samples = append(samples, Sample{Text: text, Label: label})
	}
	return samples, nil
}

// Split shuffles samples with seed and holds out testSize of them.
// The input slice is not modified.
func Split(samples []Sample, testSize float64, seed int64) (train, test []Sample, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("test size must be in (0, 1), got %v", testSize)
	}

	shuffled := append([]Sample(nil), samples...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nTest := int(float64(len(shuffled))*testSize + 0.5)
	if nTest == 0 || nTest == len(shuffled) {
		return nil, nil, fmt.Errorf("not enough samples (%d) for a %.2f split", len(shuffled), testSize)
	}
	return shuffled[nTest:], shuffled[:nTest], nil
}

// Texts returns the text of each sample.
func Texts(samples []Sample) []string {
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = s.Text
	}
	return out
}

// Labels returns the label of each sample.
func Labels(samples []Sample) []int {
	out := make([]int, len(samples))
	for i, s := range samples {
		out[i] = s.Label
	}
	return out
}
