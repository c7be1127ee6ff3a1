package local

import (
	"context"
	"time"

	"github.com/fwojciec/webchunk"
)

// DefaultRetryDelays returns the backoff delays for page fetch retries.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{250 * time.Millisecond, 500 * time.Millisecond}
}

// fetchWithRetry fetches url, retrying transient failures after each delay
// in turn. Client errors (4xx, invalid content) are returned at once.
func fetchWithRetry(ctx context.Context, fetcher webchunk.Fetcher, url string, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt == len(delays) || !transient(err) {
			break
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", webchunk.Errorf(webchunk.ECANCELED, "fetch %s: %v", url, context.Cause(ctx))
		case <-timer.C:
		}
	}
	return "", lastErr
}

func transient(err error) bool {
	switch webchunk.ErrorCode(err) {
	case webchunk.ETRANSPORT:
		return true
	case webchunk.ESTATUS:
		return webchunk.ErrorStatus(err) >= 500 || webchunk.ErrorStatus(err) == 429
	}
	return false
}
