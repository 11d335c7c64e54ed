package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/template/html/v3"

	"newscheck/internal/testutil"
)

const foundBody = `{"status":"ok","totalResults":2,"articles":[{"title":"Budget passes","description":null}]}`

func newTestApp(t *testing.T, score float64) *fiber.App {
	t.Helper()
	cfg := testutil.TestConfig()
	app := fiber.New(fiber.Config{
		Views:       html.New(cfg.ViewsDir, ".html"),
		ViewsLayout: "layouts/main",
	})
	h := NewCheckHandler(testutil.NewService(t, score, foundBody), cfg)
	app.Get("/", h.Index)
	app.Post("/check", h.Check)
	return app
}

func postForm(t *testing.T, app *fiber.App, text string, htmx bool) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/check", strings.NewReader(url.Values{"text": {text}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestCheckHandler_Check(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		text       string
		htmx       bool
		wantStatus int
		want       string
	}{
		{
			name:       "trusted label",
			score:      0.8,
			text:       "Senate passes budget",
			wantStatus: http.StatusOK,
			want:       "REAL NEWS ✓\nConfidence: 0.80",
		},
		{
			name:       "fallback with missing description",
			score:      -0.2,
			text:       "Budget passes",
			wantStatus: http.StatusOK,
			want:       "Description: No description available",
		},
		{
			name:       "text is trimmed and kept in the form",
			score:      0.8,
			text:       "  Senate passes budget  ",
			wantStatus: http.StatusOK,
			want:       ">Senate passes budget</textarea>",
		},
		{
			name:       "empty text",
			score:      0.8,
			text:       "",
			wantStatus: http.StatusUnprocessableEntity,
			want:       "Please enter a headline",
		},
		{
			name:       "too long",
			score:      0.8,
			text:       strings.Repeat("a", 201),
			wantStatus: http.StatusUnprocessableEntity,
			want:       "Text is too long",
		},
		{
			name:       "htmx validation error still swaps",
			score:      0.8,
			text:       " ",
			htmx:       true,
			wantStatus: http.StatusOK,
			want:       `<div class="result result-error">Please enter a headline</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, tt.score)
			status, body := postForm(t, app, tt.text, tt.htmx)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if !strings.Contains(body, tt.want) {
				t.Errorf("body does not contain %q:\n%s", tt.want, body)
			}
		})
	}
}

func TestCheckHandler_IndexShowsLimit(t *testing.T) {
	app := newTestApp(t, 0.8)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), `maxlength="200"`) {
		t.Errorf("expected maxlength from config:\n%s", body)
	}
}
