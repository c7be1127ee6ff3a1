package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/webchunk"
	"github.com/google/uuid"
)

// DefaultMaxResponseBytes bounds how much of a response body is read.
const DefaultMaxResponseBytes = 16 << 20

// Ensure Client implements webchunk.ScrapeClient at compile time.
var _ webchunk.ScrapeClient = (*Client)(nil)

// Client posts scrape requests to the extraction service.
// Transport failures and non-2xx statuses are retried with linear backoff:
// the n-th retry waits n times the retry delay. Each attempt is bounded by
// the client timeout.
type Client struct {
	baseURL       string
	client        *http.Client
	timeout       time.Duration
	retryAttempts int
	retryDelay    time.Duration
	maxBody       int64
	logger        *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithClientTimeout bounds each individual attempt.
// Defaults to webchunk.DefaultTimeout (30s).
func WithClientTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetryAttempts sets how many times a failed call is retried.
// Defaults to webchunk.DefaultRetryAttempts (3).
func WithRetryAttempts(n int) ClientOption {
	return func(c *Client) {
		c.retryAttempts = n
	}
}

// WithRetryDelay sets the backoff unit.
// Defaults to webchunk.DefaultRetryDelay (1s).
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithTransport sets the round tripper used for outbound calls.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.client = &http.Client{Transport: rt}
	}
}

// WithMaxResponseBytes caps the size of a response body. Larger bodies
// fail without a retry. Defaults to DefaultMaxResponseBytes (16MiB).
func WithMaxResponseBytes(n int64) ClientOption {
	return func(c *Client) {
		c.maxBody = n
	}
}

// WithLogger enables a log line for every retry.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the service at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		client:        &http.Client{},
		timeout:       webchunk.DefaultTimeout,
		retryAttempts: webchunk.DefaultRetryAttempts,
		retryDelay:    webchunk.DefaultRetryDelay,
		maxBody:       DefaultMaxResponseBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig creates a Client using the network settings of cfg.
func NewClientFromConfig(cfg webchunk.Config, opts ...ClientOption) *Client {
	base := []ClientOption{
		WithClientTimeout(cfg.Timeout),
		WithRetryAttempts(cfg.RetryAttempts),
		WithRetryDelay(cfg.RetryDelay),
	}
	return NewClient(cfg.BaseURL, append(base, opts...)...)
}

// Post sends req to endpoint, retrying retryable failures.
func (c *Client) Post(ctx context.Context, endpoint string, req *webchunk.ScrapeRequest) (*webchunk.ScrapeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, webchunk.Errorf(webchunk.EINVALID, "encoding request: %v", err)
	}

	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	requestID := uuid.NewString()

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, canceled(ctx)
		}

		resp, err := c.attempt(ctx, target, body, requestID)
		if err == nil {
			return resp, nil
		}

		if !retryable(err) || attempt >= c.retryAttempts {
			return nil, err
		}

		delay := c.retryDelay * time.Duration(attempt+1)
		if c.logger != nil {
			c.logger.Warn("retry scrape",
				"url", target,
				"request_id", requestID,
				"attempt", attempt+2,
				"delay", delay,
				"err", webchunk.ErrorMessage(err),
			)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, canceled(ctx)
		case <-timer.C:
		}
	}
}

// attempt performs a single bounded call.
func (c *Client) attempt(ctx context.Context, target string, body []byte, requestID string) (*webchunk.ScrapeResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, webchunk.Errorf(webchunk.EINVALID, "building request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	if int64(len(data)) > c.maxBody {
		return nil, webchunk.StatusErrorf(webchunk.EINTERNAL, resp.StatusCode, "response body exceeds %d bytes", c.maxBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := "HTTP " + http.StatusText(resp.StatusCode)
		if detail := errorDetail(data); detail != "" {
			msg += ": " + detail
		}
		return nil, webchunk.StatusErrorf(webchunk.ESTATUS, resp.StatusCode, "%s (status %d)", msg, resp.StatusCode)
	}

	return decodeResponse(data)
}

// transportError classifies a failed round trip. A done parent context
// means the caller canceled; anything else, including the attempt timeout,
// is a retryable transport failure.
func (c *Client) transportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return canceled(ctx)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return webchunk.Errorf(webchunk.ETRANSPORT, "request timed out after %s", c.timeout)
	}
	return webchunk.Errorf(webchunk.ETRANSPORT, "%v", err)
}

func canceled(ctx context.Context) error {
	return webchunk.Errorf(webchunk.ECANCELED, "request canceled: %v", context.Cause(ctx))
}

func retryable(err error) bool {
	switch webchunk.ErrorCode(err) {
	case webchunk.ETRANSPORT, webchunk.ESTATUS:
		return true
	}
	return false
}
