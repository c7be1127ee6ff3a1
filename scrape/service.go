// Package scrape implements webchunk.ScrapeService: it serves repeated
// requests from a bounded TTL cache and sends misses to a ScrapeClient.
package scrape

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/fwojciec/webchunk"
	"github.com/fwojciec/webchunk/cache"
)

// ErrCanceledAll is the cancellation cause recorded by CancelAll.
var ErrCanceledAll = errors.New("all requests canceled")

// Ensure Service implements webchunk.ScrapeService at compile time.
var _ webchunk.ScrapeService = (*Service)(nil)

// Service orchestrates cache lookups, remote calls and cancellation.
//
// Every Scrape call runs under the cancellation handle current at the time
// of the call. CancelAll cancels that handle and installs a fresh one, so
// calls started afterwards are unaffected.
type Service struct {
	client    webchunk.ScrapeClient
	endpoints webchunk.Endpoints
	cache     *cache.Cache[*webchunk.ScrapeResponse]
	logger    *slog.Logger

	mu     sync.Mutex
	handle context.Context
	cancel context.CancelCauseFunc
}

// Option configures a Service.
type Option func(*Service)

// WithLogger logs cache hits at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithCache replaces the cache created by the constructor.
func WithCache(c *cache.Cache[*webchunk.ScrapeResponse]) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// NewService creates a Service that sends requests through client using the
// endpoint paths and cache limits of cfg.
func NewService(client webchunk.ScrapeClient, cfg webchunk.Config, opts ...Option) *Service {
	s := &Service{
		client:    client,
		endpoints: cfg.Endpoints,
		cache:     cache.New[*webchunk.ScrapeResponse](cfg.CacheTTL, cfg.CacheMaxSize),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.handle, s.cancel = context.WithCancelCause(context.Background())
	return s
}

// CacheKey derives the cache key for a request in a mode. Values are quoted
// so that distinct inputs never share a key; an empty query and an absent
// query are the same.
func CacheKey(req *webchunk.ScrapeRequest, mode webchunk.Mode) string {
	return string(mode) + "-" + strconv.Quote(req.URL) + "-" + strconv.Quote(req.Query)
}

// Scrape returns the chunks for req. A cached response short-circuits the
// remote call. Only successful responses are cached.
func (s *Service) Scrape(ctx context.Context, req *webchunk.ScrapeRequest, mode webchunk.Mode) (*webchunk.ScrapeResponse, error) {
	if req == nil {
		return nil, webchunk.Errorf(webchunk.EINVALID, "request required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	mode, err := webchunk.ParseMode(string(mode))
	if err != nil {
		return nil, err
	}

	key := CacheKey(req, mode)
	if resp, ok := s.cache.Get(key); ok {
		if s.logger != nil {
			s.logger.Debug("cache hit", "key", key)
		}
		return resp.Clone(), nil
	}

	handle := s.currentHandle()
	if handle.Err() != nil {
		return nil, webchunk.Errorf(webchunk.ECANCELED, "request canceled: %v", context.Cause(handle))
	}
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	stop := context.AfterFunc(handle, func() {
		cancel(context.Cause(handle))
	})
	defer stop()

	resp, err := s.client.Post(ctx, s.endpoints.For(mode), req)
	if err != nil {
		return nil, err
	}

	// A response that raced with cancellation belongs to a superseded request.
	if handle.Err() != nil || ctx.Err() != nil {
		cause := context.Cause(handle)
		if cause == nil {
			cause = context.Cause(ctx)
		}
		return nil, webchunk.Errorf(webchunk.ECANCELED, "request canceled: %v", cause)
	}

	s.cache.Set(key, resp.Clone())
	return resp, nil
}

// CancelAll cancels every in-flight Scrape call and issues a fresh handle
// for future calls.
func (s *Service) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancel(ErrCanceledAll)
	s.handle, s.cancel = context.WithCancelCause(context.Background())
}

// ClearCache drops every cached response.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// Close cancels in-flight calls. The Service must not be used afterwards.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel(ErrCanceledAll)
	return nil
}

func (s *Service) currentHandle() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle
}
