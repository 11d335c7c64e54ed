package newsapi

import (
	"errors"
	"fmt"

	"newscheck/internal/models"
)

var (
	// ErrTransport means the request never produced an HTTP response.
	ErrTransport = errors.New("news search request failed")

	// ErrDecode means the response body did not have the expected JSON shape.
	ErrDecode = errors.New("unexpected news search response")

	// ErrNoArticles means totalResults was positive but no article was returned.
	ErrNoArticles = errors.New("news search reported results but returned no articles")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code    int
	Message string // upstream "message" field, when present
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("news search returned HTTP %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("news search returned HTTP %d", e.Code)
}

// Outcome classifies a search result for metrics and logs.
func Outcome(result *models.NewsLookupResult, err error) string {
	switch {
	case err != nil:
		return models.LookupFailed
	case result == nil || !result.Found:
		return models.LookupNotFound
	default:
		return models.LookupFound
	}
}
