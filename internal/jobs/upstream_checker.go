package jobs

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"
)

// UpstreamChecker periodically checks that the news search host answers.
// Requests carry no API key, so they never consume quota; any HTTP response
// counts as reachable.
type UpstreamChecker struct {
	url      string
	interval time.Duration
	report   func(up bool)
	client   *http.Client
}

// NewUpstreamChecker creates a new upstream checker. report receives the
// result of every check.
func NewUpstreamChecker(url string, interval time.Duration, report func(up bool)) *UpstreamChecker {
	return &UpstreamChecker{
		url:      url,
		interval: interval,
		report:   report,
		client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
	}
}

// Start begins the background check loop and blocks until ctx is done.
func (u *UpstreamChecker) Start(ctx context.Context) {
	log.Printf("Upstream checker started (interval: %v)", u.interval)

	// Run immediately on start
	u.report(u.Check(ctx))

	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Upstream checker stopped")
			return
		case <-ticker.C:
			u.report(u.Check(ctx))
		}
	}
}

// Check performs a single HEAD request against the upstream.
func (u *UpstreamChecker) Check(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.url, nil)
	if err != nil {
		log.Printf("Upstream checker: invalid URL %q: %v", u.url, err)
		return false
	}
	req.Header.Set("User-Agent", "newscheck-upstream/1.0")

	resp, err := u.client.Do(req)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("Upstream checker: %s unreachable: %v", u.url, err)
		}
		return false
	}
	defer resp.Body.Close()

	return true
}
