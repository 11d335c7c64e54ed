// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"newscheck/internal/classifier"
	"newscheck/internal/config"
	"newscheck/internal/db"
	"newscheck/internal/detector"
	"newscheck/internal/newsapi"
)

// TestDB creates a test database connection and returns a cleanup function.
// Skips the test unless TEST_DATABASE_URL is set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Clean before test
	database.Pool.Exec(ctx, "DELETE FROM outcome_counts")

	cleanup := func() {
		database.Pool.Exec(ctx, "DELETE FROM outcome_counts")
		database.Close()
	}

	return database, cleanup
}

// TestConfig returns a config suitable for handler tests. Paths are relative
// to a package two levels below the module root.
func TestConfig() *config.Config {
	return &config.Config{
		Env:           "test",
		ServerAddr:    ":0",
		BaseURL:       "http://localhost:3000",
		Threshold:     classifier.DefaultThreshold,
		NewsAPIKey:    "test-key",
		RateLimitMax:  1000,
		MaxTextLength: 200,
		ViewsDir:      "../../views",
		StaticDir:     "../../static",
		SiteTitle:     "Headline Check",
		SiteTagline:   "test",
	}
}

// fixedVectorizer maps every text to the same one-feature vector.
type fixedVectorizer struct{}

func (fixedVectorizer) Transform(string) (classifier.FeatureVector, error) {
	return classifier.FeatureVector{Dim: 1, Indices: []int{0}, Values: []float64{1}}, nil
}

// NewFixedPredictor returns a predictor whose decision score is always score
// and whose sign decides the class (positive = real).
func NewFixedPredictor(t *testing.T, score float64) *classifier.Predictor {
	t.Helper()
	model, err := classifier.NewLinearModel([]float64{score}, 0, [2]int{0, 1})
	if err != nil {
		t.Fatalf("failed to build test model: %v", err)
	}
	return classifier.NewPredictor(fixedVectorizer{}, model)
}

// NewsServer starts a fake news search endpoint that always answers with body.
func NewsServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// NewService wires a decision service around a fixed score and a fake news server.
func NewService(t *testing.T, score float64, newsBody string) *detector.Service {
	t.Helper()
	srv := NewsServer(t, http.StatusOK, newsBody)
	client := newsapi.NewClient(srv.URL, "test-key", time.Second)
	return detector.NewService(NewFixedPredictor(t, score), client, classifier.DefaultThreshold)
}
