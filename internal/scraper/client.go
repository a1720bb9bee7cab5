package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrBlocked marks an anti-bot response (403/429/999 or an auth-redirect
// landing page). The source is unavailable this cycle; adapters stop
// requesting it and return whatever they already collected.
var ErrBlocked = errors.New("source blocked the request")

// Realistic browser identities rotated across outbound requests so that no
// single fingerprint hammers a source.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:122.0) Gecko/20100101 Firefox/122.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_2) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
}

// Client is the HTTP client shared by all source adapters. The rotation
// counter is advisory state: races on it only change which user agent a
// request happens to carry.
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
	uaCounter  atomic.Uint32
}

func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 8,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

func (c *Client) nextUserAgent() string {
	n := c.uaCounter.Add(1)
	return userAgents[int(n)%len(userAgents)]
}

// headers returns a browser-like header set with the next user agent.
// Extra headers override the defaults.
func (c *Client) headers(extra map[string]string) http.Header {
	h := http.Header{}
	h.Set("User-Agent", c.nextUserAgent())
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("Upgrade-Insecure-Requests", "1")
	for k, v := range extra {
		h.Set(k, v)
	}
	return h
}

// get fetches a URL and returns the response body. 403, 429 and 999
// responses map to ErrBlocked; any other non-2xx status is an error.
func (c *Client) get(ctx context.Context, rawURL string, extra map[string]string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, rawURL, "", nil, extra)
}

// post sends a request body (used by API-style sources).
func (c *Client) post(ctx context.Context, rawURL, contentType string, body io.Reader, extra map[string]string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, rawURL, contentType, body, extra)
}

func (c *Client) do(ctx context.Context, method, rawURL, contentType string, body io.Reader, extra map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header = c.headers(extra)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusForbidden, http.StatusTooManyRequests, 999:
		c.logger.Debug("source blocked request",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode),
		)
		return nil, ErrBlocked
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body %s: %w", rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	return data, nil
}

// clean collapses whitespace runs to single spaces and trims.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// absURL resolves href against the source's base origin when it is not
// already absolute.
func absURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

// pause sleeps between requests to the same source unless the context is done.
func pause(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
