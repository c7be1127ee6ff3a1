package mock

import (
	"context"

	"github.com/fwojciec/webchunk"
)

var _ webchunk.ScrapeClient = (*ScrapeClient)(nil)

// ScrapeClient is a mock implementation of webchunk.ScrapeClient.
type ScrapeClient struct {
	PostFn func(ctx context.Context, endpoint string, req *webchunk.ScrapeRequest) (*webchunk.ScrapeResponse, error)
}

func (c *ScrapeClient) Post(ctx context.Context, endpoint string, req *webchunk.ScrapeRequest) (*webchunk.ScrapeResponse, error) {
	return c.PostFn(ctx, endpoint, req)
}

var _ webchunk.ScrapeService = (*ScrapeService)(nil)

// ScrapeService is a mock implementation of webchunk.ScrapeService.
type ScrapeService struct {
	ScrapeFn     func(ctx context.Context, req *webchunk.ScrapeRequest, mode webchunk.Mode) (*webchunk.ScrapeResponse, error)
	CancelAllFn  func()
	ClearCacheFn func()
}

func (s *ScrapeService) Scrape(ctx context.Context, req *webchunk.ScrapeRequest, mode webchunk.Mode) (*webchunk.ScrapeResponse, error) {
	return s.ScrapeFn(ctx, req, mode)
}

func (s *ScrapeService) CancelAll() {
	s.CancelAllFn()
}

func (s *ScrapeService) ClearCache() {
	s.ClearCacheFn()
}
