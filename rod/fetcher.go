// Package rod implements webchunk.Fetcher with a headless Chrome browser,
// for pages that build their content with JavaScript.
package rod

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fwojciec/webchunk"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 20 * time.Second

// Ensure Fetcher implements webchunk.Fetcher at compile time.
var _ webchunk.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration

	closeOnce sync.Once
	closeErr  error
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout sets the maximum time spent rendering one page.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, webchunk.Errorf(webchunk.EINTERNAL, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, webchunk.Errorf(webchunk.EINTERNAL, "connecting to browser: %v", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to the URL and returns the HTML after the load event.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", webchunk.Errorf(webchunk.ECANCELED, "fetch %s: %v", url, err)
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", webchunk.Errorf(webchunk.EINTERNAL, "open page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", fetchError(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fetchError(ctx, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fetchError(ctx, url, err)
	}
	return html, nil
}

// Close releases browser resources and stops the browser process.
// Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.closeOnce.Do(func() {
		f.closeErr = f.browser.Close()
		f.launcher.Kill()
	})
	return f.closeErr
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}

func fetchError(ctx context.Context, url string, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return webchunk.Errorf(webchunk.ECANCELED, "fetch %s: %v", url, err)
	case errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil:
		return webchunk.Errorf(webchunk.ETRANSPORT, "fetch %s: timed out", url)
	}
	return webchunk.Errorf(webchunk.ETRANSPORT, "fetch %s: %v", url, err)
}
