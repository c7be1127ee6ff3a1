package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webchunk"
)

// Ensure LoggingScrapeClient implements webchunk.ScrapeClient.
var _ webchunk.ScrapeClient = (*LoggingScrapeClient)(nil)

// LoggingScrapeClient wraps a ScrapeClient with logging.
type LoggingScrapeClient struct {
	next   webchunk.ScrapeClient
	logger *slog.Logger
}

// NewLoggingScrapeClient creates a new LoggingScrapeClient.
func NewLoggingScrapeClient(next webchunk.ScrapeClient, logger *slog.Logger) *LoggingScrapeClient {
	return &LoggingScrapeClient{next: next, logger: logger}
}

// Post delegates to the wrapped client and logs the round trip.
func (c *LoggingScrapeClient) Post(ctx context.Context, endpoint string, req *webchunk.ScrapeRequest) (resp *webchunk.ScrapeResponse, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"endpoint", endpoint,
			"url", req.URL,
			"chunks", chunkCount(resp),
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", webchunk.ErrorCode(err), "status", webchunk.ErrorStatus(err), "err", err)
		}
		c.logger.Info("post", attrs...)
	}(time.Now())
	return c.next.Post(ctx, endpoint, req)
}

// Ensure LoggingScrapeService implements webchunk.ScrapeService.
var _ webchunk.ScrapeService = (*LoggingScrapeService)(nil)

// LoggingScrapeService wraps a ScrapeService with logging.
type LoggingScrapeService struct {
	next   webchunk.ScrapeService
	logger *slog.Logger
}

// NewLoggingScrapeService creates a new LoggingScrapeService.
func NewLoggingScrapeService(next webchunk.ScrapeService, logger *slog.Logger) *LoggingScrapeService {
	return &LoggingScrapeService{next: next, logger: logger}
}

// Scrape delegates to the wrapped service and logs the operation.
func (s *LoggingScrapeService) Scrape(ctx context.Context, req *webchunk.ScrapeRequest, mode webchunk.Mode) (resp *webchunk.ScrapeResponse, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"mode", mode,
			"chunks", chunkCount(resp),
			"duration", time.Since(begin),
		}
		if req != nil {
			attrs = append(attrs, "url", req.URL, "query", req.Query)
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		s.logger.Info("scrape", attrs...)
	}(time.Now())
	return s.next.Scrape(ctx, req, mode)
}

// CancelAll delegates to the wrapped service.
func (s *LoggingScrapeService) CancelAll() {
	s.logger.Info("cancel all")
	s.next.CancelAll()
}

// ClearCache delegates to the wrapped service.
func (s *LoggingScrapeService) ClearCache() {
	s.logger.Info("clear cache")
	s.next.ClearCache()
}

func chunkCount(resp *webchunk.ScrapeResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Chunks)
}
