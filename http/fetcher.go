// Package http implements webchunk services over HTTP: Client posts scrape
// requests to the extraction service and Fetcher downloads pages for the
// local mock target.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/webchunk"
)

// DefaultFetchTimeout is the default timeout for page downloads.
const DefaultFetchTimeout = 10 * time.Second

// userAgent identifies page downloads made by the local mock target.
const userAgent = "webchunk/1.0 (+https://github.com/fwojciec/webchunk)"

// Ensure Fetcher implements webchunk.Fetcher at compile time.
var _ webchunk.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML pages with plain HTTP GET requests.
// It does not execute JavaScript; see rod.Fetcher for rendered pages.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for page downloads.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML at url. Non-HTML content types and non-2xx
// statuses are errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", webchunk.Errorf(webchunk.EINVALID, "invalid url %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", webchunk.Errorf(webchunk.ECANCELED, "fetch %s: %v", url, context.Cause(ctx))
		}
		return "", webchunk.Errorf(webchunk.ETRANSPORT, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return "", webchunk.StatusErrorf(webchunk.ENOTFOUND, resp.StatusCode, "page not found: %s", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", webchunk.StatusErrorf(webchunk.ESTATUS, resp.StatusCode, "HTTP %d for %s", resp.StatusCode, url)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") && !strings.HasPrefix(ct, "text/") {
		return "", webchunk.Errorf(webchunk.EINVALID, "unsupported content type %q for %s", ct, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, DefaultMaxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
