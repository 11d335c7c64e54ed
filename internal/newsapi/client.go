// Package newsapi is the fallback lookup against a NewsAPI-compatible
// /v2/everything endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"newscheck/internal/logging"
	"newscheck/internal/models"
)

// Sentinel strings returned by Lookup.
const (
	NotFound     = "No news articles found."
	LookupFailed = "NewsAPI lookup failed."
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client queries the news search endpoint. It holds no per-request state and
// is safe for concurrent use.
type Client struct {
	baseURL  string
	apiKey   string
	language string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLanguage scopes searches to a language other than English.
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

// NewClient creates a new news search client.
func NewClient(baseURL, apiKey string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		language: "en",
		http:     &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// everythingResponse is the subset of the /v2/everything payload we read.
type everythingResponse struct {
	Status       string     `json:"status"`
	Message      string     `json:"message"`
	TotalResults *int       `json:"totalResults"`
	Articles     []*article `json:"articles"`
}

type article struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Search performs one GET for query. The first article is taken as the most
// relevant one; upstream ordering is not re-ranked. A missing totalResults is
// treated as zero.
func (c *Client) Search(ctx context.Context, query string) (*models.NewsLookupResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "newscheck/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Code: resp.StatusCode}
		var parsed everythingResponse
		if json.Unmarshal(body, &parsed) == nil {
			statusErr.Message = parsed.Message
		}
		return nil, statusErr
	}

	var parsed *everythingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if parsed == nil {
		return nil, fmt.Errorf("%w: null response body", ErrDecode)
	}

	if parsed.TotalResults == nil || *parsed.TotalResults == 0 {
		return &models.NewsLookupResult{Found: false}, nil
	}
	if len(parsed.Articles) == 0 {
		return nil, ErrNoArticles
	}

	top := parsed.Articles[0]
	if top == nil {
		return nil, fmt.Errorf("%w: null article", ErrDecode)
	}
	result := &models.NewsLookupResult{
		Found:       true,
		Title:       models.DefaultArticleTitle,
		Description: models.DefaultArticleDescription,
	}
	if top.Title != nil {
		result.Title = *top.Title
	}
	if top.Description != nil {
		result.Description = *top.Description
	}
	return result, nil
}

// Lookup is the standalone string contract: a display string or one of the
// NotFound / LookupFailed sentinels, never an error.
func (c *Client) Lookup(ctx context.Context, query string) string {
	result, err := c.Search(ctx, query)
	return Report(ctx, result, err)
}

// Report logs a failed search with the request logger and returns what
// Summarize renders for it.
func Report(ctx context.Context, result *models.NewsLookupResult, err error) string {
	if err != nil {
		logging.FromContext(ctx).Warn("news lookup failed", "error", err)
	}
	return Summarize(result, err)
}

// Summarize renders a search outcome the way Lookup reports it.
func Summarize(result *models.NewsLookupResult, err error) string {
	if err != nil {
		return LookupFailed
	}
	if result == nil || !result.Found {
		return NotFound
	}
	return fmt.Sprintf("Title: %s\n\nDescription: %s", result.Title, result.Description)
}

func (c *Client) searchURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("apiKey", c.apiKey)
	params.Set("language", c.language)
	return c.baseURL + "/v2/everything?" + params.Encode()
}
