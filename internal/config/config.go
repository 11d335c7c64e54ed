package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"newscheck/internal/classifier"
	"newscheck/internal/validation"
)

// DefaultThreshold is the confidence below which the classifier's label is discarded.
const DefaultThreshold = classifier.DefaultThreshold

// ErrMissingAPIKey is returned by Validate when no news-search key is configured.
var ErrMissingAPIKey = errors.New("NEWSAPI_KEY is required")

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Model artifacts
	ModelDir      string
	ModelManifest string  // env: MODEL_MANIFEST, optional YAML manifest
	Threshold     float64 // env: CONFIDENCE_THRESHOLD, default: 0.6

	// News search fallback
	NewsAPIKey      string // deployment secret, never committed
	NewsAPIURL      string
	NewsAPILanguage string
	NewsAPITimeout  time.Duration

	// Optional outcome counters
	DatabaseURL string

	// Optional shared rate-limit storage
	RedisURL     string
	RateLimitMax int // requests per minute per IP

	// Background upstream reachability checks, 0 disables
	UpstreamCheckInterval time.Duration

	// Input limits
	MaxTextLength int

	// Assets
	ViewsDir  string
	StaticDir string

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Headline Check"
	SiteTagline string // env: SITE_TAGLINE

	// parseErr collects env values that were set but could not be parsed.
	parseErr error
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	var errs []error
	modelDir := getEnv("MODEL_DIR", "model")
	cfg := &Config{
		Env:        getEnv("ENV", "development"),
		ServerAddr: getEnv("SERVER_ADDR", ":3000"),
		BaseURL:    getEnv("BASE_URL", "http://localhost:3000"),

		ModelDir:      modelDir,
		ModelManifest: getEnv("MODEL_MANIFEST", filepath.Join(modelDir, "manifest.yaml")),
		Threshold:     getEnvFloat("CONFIDENCE_THRESHOLD", DefaultThreshold, &errs),

		NewsAPIKey:      getEnv("NEWSAPI_KEY", ""),
		NewsAPIURL:      getEnv("NEWSAPI_URL", "https://newsapi.org"),
		NewsAPILanguage: getEnv("NEWSAPI_LANGUAGE", "en"),
		NewsAPITimeout:  getEnvDuration("NEWSAPI_TIMEOUT", 10*time.Second, &errs),

		DatabaseURL:  getEnv("DATABASE_URL", ""),
		RedisURL:     getEnv("REDIS_URL", ""),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 60, &errs),

		UpstreamCheckInterval: getEnvDuration("UPSTREAM_CHECK_INTERVAL", 5*time.Minute, &errs),
		MaxTextLength:         getEnvInt("MAX_TEXT_LENGTH", 1000, &errs),

		ViewsDir:  getEnv("VIEWS_DIR", "./views"),
		StaticDir: getEnv("STATIC_DIR", "./static"),

		SiteTitle:   getEnv("SITE_TITLE", "Headline Check"),
		SiteTagline: getEnv("SITE_TAGLINE", "Machine learning predicts first; live news search fills the gaps."),
	}
	cfg.parseErr = errors.Join(errs...)
	return cfg
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.parseErr != nil {
		return c.parseErr
	}
	if c.NewsAPIKey == "" {
		return ErrMissingAPIKey
	}
	if math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) || c.Threshold < 0 {
		return fmt.Errorf("CONFIDENCE_THRESHOLD must be a non-negative number, got %v", c.Threshold)
	}
	if ok, msg := validation.ValidateURL(c.NewsAPIURL); !ok {
		return fmt.Errorf("NEWSAPI_URL: %s", msg)
	}
	if c.MaxTextLength <= 0 {
		return fmt.Errorf("MAX_TEXT_LENGTH must be positive, got %d", c.MaxTextLength)
	}
	return nil
}

// ApplyManifest fills in values from the model manifest that were not set
// through the environment.
func (c *Config) ApplyManifest(m *ModelManifest) {
	if m == nil {
		return
	}
	if m.Threshold != nil && os.Getenv("CONFIDENCE_THRESHOLD") == "" {
		c.Threshold = *m.Threshold
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	if value := os.Getenv(key); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, value))
			return fallback
		}
		return n
	}
	return fallback
}

func getEnvFloat(key string, fallback float64, errs *[]error) float64 {
	if value := os.Getenv(key); value != "" {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("%s: invalid number %q", key, value))
			return fallback
		}
		return f
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, value))
			return fallback
		}
		return d
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// HasDatabase returns true if outcome counters should be persisted.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}
