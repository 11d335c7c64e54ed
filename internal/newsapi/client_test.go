package newsapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newscheck/internal/models"
)

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var captured http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestSearch_RequestShape(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{"status":"ok","totalResults":0,"articles":[]}`)
	client := NewClient(srv.URL+"/", "secret-key", time.Second)

	_, err := client.Search(context.Background(), "moon landing & hoax?")
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "/v2/everything", captured.URL.Path)
	q := captured.URL.Query()
	assert.Equal(t, "moon landing & hoax?", q.Get("q"))
	assert.Equal(t, "secret-key", q.Get("apiKey"))
	assert.Equal(t, "en", q.Get("language"))
}

func TestSearch_Language(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{"totalResults":0}`)
	client := NewClient(srv.URL, "k", time.Second, WithLanguage("de"))

	_, err := client.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "de", captured.URL.Query().Get("language"))
}

func TestSearch_Responses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    *models.NewsLookupResult
		wantErr error
	}{
		{
			name:   "top article",
			status: http.StatusOK,
			body:   `{"status":"ok","totalResults":2,"articles":[{"title":"X","description":"Y"},{"title":"Z","description":"W"}]}`,
			want:   &models.NewsLookupResult{Found: true, Title: "X", Description: "Y"},
		},
		{
			name:   "missing fields use defaults",
			status: http.StatusOK,
			body:   `{"totalResults":1,"articles":[{}]}`,
			want:   &models.NewsLookupResult{Found: true, Title: models.DefaultArticleTitle, Description: models.DefaultArticleDescription},
		},
		{
			name:   "null fields use defaults",
			status: http.StatusOK,
			body:   `{"totalResults":1,"articles":[{"title":null,"description":null}]}`,
			want:   &models.NewsLookupResult{Found: true, Title: models.DefaultArticleTitle, Description: models.DefaultArticleDescription},
		},
		{
			name:   "empty strings are kept",
			status: http.StatusOK,
			body:   `{"totalResults":1,"articles":[{"title":"","description":""}]}`,
			want:   &models.NewsLookupResult{Found: true, Title: "", Description: ""},
		},
		{
			name:   "zero results",
			status: http.StatusOK,
			body:   `{"status":"ok","totalResults":0,"articles":[]}`,
			want:   &models.NewsLookupResult{Found: false},
		},
		{
			name:   "missing totalResults",
			status: http.StatusOK,
			body:   `{"status":"ok"}`,
			want:   &models.NewsLookupResult{Found: false},
		},
		{
			name:    "results without articles",
			status:  http.StatusOK,
			body:    `{"totalResults":3,"articles":[]}`,
			wantErr: ErrNoArticles,
		},
		{
			name:    "not json",
			status:  http.StatusOK,
			body:    `<html>gateway</html>`,
			wantErr: ErrDecode,
		},
		{
			name:    "wrong totalResults type",
			status:  http.StatusOK,
			body:    `{"totalResults":"many","articles":[]}`,
			wantErr: ErrDecode,
		},
		{
			name:    "null body",
			status:  http.StatusOK,
			body:    `null`,
			wantErr: ErrDecode,
		},
		{
			name:    "null top article",
			status:  http.StatusOK,
			body:    `{"totalResults":1,"articles":[null]}`,
			wantErr: ErrDecode,
		},
		{
			name:    "wrong articles type",
			status:  http.StatusOK,
			body:    `{"totalResults":1,"articles":{"title":"X"}}`,
			wantErr: ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)
			client := NewClient(srv.URL, "k", time.Second)

			got, err := client.Search(context.Background(), "query")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearch_StatusError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusUnauthorized, `{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid."}`)
	client := NewClient(srv.URL, "bad", time.Second)

	_, err := client.Search(context.Background(), "query")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Equal(t, "Your API key is invalid.", statusErr.Message)
	assert.Contains(t, err.Error(), "401")
}

func TestSearch_ConnectionRefused(t *testing.T) {
	client := NewClient(closedServerURL(t), "k", time.Second)

	_, err := client.Search(context.Background(), "query")
	require.ErrorIs(t, err, ErrTransport)
}

func TestSearch_ContextCanceled(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"totalResults":0}`)
	client := NewClient(srv.URL, "k", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, "query")
	require.ErrorIs(t, err, ErrTransport)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"found", http.StatusOK, `{"totalResults":1,"articles":[{"title":"X","description":"Y"}]}`, "Title: X\n\nDescription: Y"},
		{"defaults", http.StatusOK, `{"totalResults":1,"articles":[{"title":"X"}]}`, "Title: X\n\nDescription: No description available"},
		{"zero results", http.StatusOK, `{"totalResults":0,"articles":[]}`, NotFound},
		{"server error", http.StatusInternalServerError, `oops`, LookupFailed},
		{"rate limited", http.StatusTooManyRequests, `{"status":"error"}`, LookupFailed},
		{"bad json", http.StatusOK, `{`, LookupFailed},
		{"null body", http.StatusOK, `null`, LookupFailed},
		{"null article", http.StatusOK, `{"totalResults":1,"articles":[null]}`, LookupFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)
			client := NewClient(srv.URL, "k", time.Second)
			assert.Equal(t, tt.want, client.Lookup(context.Background(), "query"))
		})
	}
}

func TestNewClient_WithHTTPClient(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"totalResults":0}`)

	var used bool
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		used = true
		return http.DefaultTransport.RoundTrip(r)
	})}
	client := NewClient(srv.URL, "k", time.Second, WithHTTPClient(hc))

	assert.Equal(t, NotFound, client.Lookup(context.Background(), "query"))
	assert.True(t, used, "custom http client was not used")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestLookup_ConnectionRefused(t *testing.T) {
	client := NewClient(closedServerURL(t), "k", time.Second)
	assert.Equal(t, "NewsAPI lookup failed.", client.Lookup(context.Background(), "query"))
}

func TestLookup_ZeroResultsSentinel(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"totalResults":0}`)
	client := NewClient(srv.URL, "k", time.Second)
	assert.Equal(t, "No news articles found.", client.Lookup(context.Background(), "query"))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, models.LookupFailed, Outcome(nil, ErrDecode))
	assert.Equal(t, models.LookupNotFound, Outcome(&models.NewsLookupResult{}, nil))
	assert.Equal(t, models.LookupNotFound, Outcome(nil, nil))
	assert.Equal(t, models.LookupFound, Outcome(&models.NewsLookupResult{Found: true}, nil))
}

// closedServerURL returns the address of a listener that has been closed,
// so connections to it are refused.
func closedServerURL(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return "http://" + addr
}
