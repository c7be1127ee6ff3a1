// Package local serves the mock scrape endpoint in-process. It fetches the
// requested page, splits it into chunks and scores them against the query,
// so the client can run without the extraction service.
package local

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/webchunk"
)

// maxRequestBytes bounds the decoded request body.
const maxRequestBytes = 1 << 20

var _ http.RoundTripper = (*Transport)(nil)

// Transport answers POST requests to Path from fetched pages and passes
// every other request to Next.
type Transport struct {
	Next        http.RoundTripper
	Path        string
	Fetcher     webchunk.Fetcher
	RateLimiter webchunk.DomainLimiter
	Chunker     webchunk.Chunker

	// Extractor and Converter produce chunks for pages without content
	// elements. Converter is optional; without it the extracted plain text
	// is used.
	Extractor webchunk.Extractor
	Converter webchunk.Converter

	MaxResults  int
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

type chunkBody struct {
	ID      int     `json:"id"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type replyBody struct {
	Chunks []chunkBody `json:"chunks"`
}

type detailBody struct {
	Detail string `json:"detail"`
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodPost || req.URL.Path != t.Path {
		next := t.Next
		if next == nil {
			next = http.DefaultTransport
		}
		return next.RoundTrip(req)
	}
	if req.Body != nil {
		defer req.Body.Close()
	}

	ctx := req.Context()
	status, body, err := t.serve(ctx, req.Body)
	if err != nil {
		return nil, err
	}
	return reply(req, status, body)
}

// serve returns the status and body for a scrape request. An error is
// returned only when ctx ends, so the caller sees a transport failure.
func (t *Transport) serve(ctx context.Context, r io.Reader) (int, any, error) {
	var sreq webchunk.ScrapeRequest
	if r == nil {
		return http.StatusBadRequest, detailBody{Detail: "request body required"}, nil
	}
	if err := json.NewDecoder(io.LimitReader(r, maxRequestBytes)).Decode(&sreq); err != nil {
		return http.StatusBadRequest, detailBody{Detail: fmt.Sprintf("invalid request body: %v", err)}, nil
	}
	if err := sreq.Validate(); err != nil {
		return http.StatusBadRequest, detailBody{Detail: webchunk.ErrorMessage(err)}, nil
	}

	u, _ := url.Parse(sreq.URL)
	if t.RateLimiter != nil {
		if err := t.RateLimiter.Wait(ctx, u.Host); err != nil {
			return 0, nil, err
		}
	}

	delays := t.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := fetchWithRetry(ctx, t.Fetcher, sreq.URL, delays)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, context.Cause(ctx)
		}
		status := http.StatusBadGateway
		if webchunk.ErrorCode(err) == webchunk.ENOTFOUND {
			status = http.StatusNotFound
		}
		return status, detailBody{Detail: fmt.Sprintf("fetch %s: %s", sreq.URL, webchunk.ErrorMessage(err))}, nil
	}

	texts, err := t.texts(html, sreq.URL)
	if err != nil {
		return http.StatusUnprocessableEntity, detailBody{Detail: webchunk.ErrorMessage(err)}, nil
	}

	limit := t.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	ranked := Rank(texts, sreq.Query, limit)

	out := replyBody{Chunks: make([]chunkBody, len(ranked))}
	for i, c := range ranked {
		out.Chunks[i] = chunkBody{ID: c.ID, Content: c.Content, Score: c.Score}
	}
	return http.StatusOK, out, nil
}

// texts returns the chunk texts of a page in document order.
func (t *Transport) texts(html, pageURL string) ([]string, error) {
	texts, err := t.Chunker.Chunk(html)
	if err != nil {
		return nil, err
	}
	if len(texts) > 0 || t.Extractor == nil {
		return texts, nil
	}

	extracted, err := t.Extractor.Extract(html, pageURL)
	if err != nil {
		return nil, err
	}
	body := extracted.Text
	if t.Converter != nil && strings.TrimSpace(extracted.ContentHTML) != "" {
		if body, err = t.Converter.Convert(extracted.ContentHTML); err != nil {
			return nil, err
		}
	}
	if t.Logger != nil {
		t.Logger.Debug("chunk fallback", "url", pageURL, "bytes", len(body))
	}

	for _, p := range paragraphs(body) {
		texts = append(texts, webchunk.SplitWords(p, webchunk.MaxWordsPerChunk)...)
	}
	return texts, nil
}

// paragraphs splits text into blank-line separated blocks. Empty blocks
// are dropped.
func paragraphs(text string) []string {
	var out []string
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			out = append(out, block)
		}
	}
	return out
}

func reply(req *http.Request, status int, v any) (*http.Response, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{"Content-Type": []string{"application/json"}},
		Body:          io.NopCloser(bytes.NewReader(b)),
		ContentLength: int64(len(b)),
		Request:       req,
	}, nil
}
