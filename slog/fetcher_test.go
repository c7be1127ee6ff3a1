package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/webchunk"
	"github.com/fwojciec/webchunk/mock"
	wcslog "github.com/fwojciec/webchunk/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs page size and duration", func(t *testing.T) {
		t.Parallel()

		page := "<html><body><p>Plans start at $10 per month.</p></body></html>"
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return page, nil
			},
		}

		fetcher := wcslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://example.com/pricing")

		require.NoError(t, err)
		assert.Equal(t, page, html)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://example.com/pricing")
		assert.Contains(t, output, "bytes=62")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "err=")
	})

	t.Run("logs code and status of a missing page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", webchunk.StatusErrorf(webchunk.ENOTFOUND, 404, "page not found: %s", url)
			},
		}

		fetcher := wcslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/missing")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "bytes=0")
		assert.Contains(t, output, "code=not_found")
		assert.Contains(t, output, "status=404")
		assert.Contains(t, output, "page not found: https://example.com/missing")
	})

	t.Run("logs unclassified errors as internal", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := wcslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "code=internal")
		assert.Contains(t, output, `err="network error"`)
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	fetcher := wcslog.NewLoggingFetcher(inner, slog.New(slog.DiscardHandler))

	require.NoError(t, fetcher.Close())
	assert.True(t, closed)
}
