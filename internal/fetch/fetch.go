// Package fetch captures page snapshots for auditing. The primary path
// renders the page in a headless browser (browser.go); a plain HTTP fetch is
// available for deployments without Chrome.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Snakegate/ux-wcag-agent/internal/types"
)

// DefaultTimeout bounds a single page fetch, browser launch included.
const DefaultTimeout = 60 * time.Second

// DefaultSettleDelay is how long the browser waits after load for
// JavaScript-rendered content to appear.
const DefaultSettleDelay = 3 * time.Second

// DefaultUserAgent is the user agent string for plain HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; AuditAgent/1.0)"

// Error represents a page fetch failure: unreachable URL, navigation
// timeout, browser startup failure, or a non-success document status.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures fetch behavior.
type Options struct {
	Timeout     time.Duration
	SettleDelay time.Duration
	UserAgent   string
	Verbose     bool
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:     DefaultTimeout,
		SettleDelay: DefaultSettleDelay,
		UserAgent:   DefaultUserAgent,
	}
}

// Plain retrieves a page over HTTP without a browser. The resulting snapshot
// has no screenshot and no element boxes, so screenshot annotation is
// unavailable; the analyzer and evaluator still work on the raw HTML.
func Plain(ctx context.Context, urlStr string, opts *Options) (*types.PageSnapshot, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	snap := &types.PageSnapshot{
		URL:        urlStr,
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		HTML:       string(bodyBytes),
		FetchedAt:  time.Now().UTC(),
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return snap, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	return snap, nil
}
