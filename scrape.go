package webchunk

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"net/url"

	"github.com/cespare/xxhash/v2"
)

// Mode selects the extraction target a request is sent to.
type Mode string

// Supported modes.
const (
	ModeLive Mode = "live"
	ModeMock Mode = "mock"
)

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLive, ModeMock:
		return Mode(s), nil
	case "":
		return ModeLive, nil
	}
	return "", Errorf(EINVALID, "unknown mode %q", s)
}

// ScrapeRequest asks the extraction service for chunks of a page.
type ScrapeRequest struct {
	URL   string `json:"url"`
	Query string `json:"query,omitempty"`
}

// Validate returns an error if the request contains invalid fields.
func (r *ScrapeRequest) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "url required")
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return Errorf(EINVALID, "invalid url %q: %v", r.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "url %q must use http or https", r.URL)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "url %q has no host", r.URL)
	}
	return nil
}

// ContentChunk is a fragment of extracted page text with its relevance score.
type ContentChunk struct {
	ID      int     `json:"id"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`

	// Hash is the hex xxHash64 of Content.
	Hash string `json:"hash,omitempty"`
}

// ScrapeResponse is the normalized chunk list returned for a request.
type ScrapeResponse struct {
	Chunks []ContentChunk `json:"chunks"`
}

// Clone returns a copy of the response that shares no chunk storage with r.
func (r *ScrapeResponse) Clone() *ScrapeResponse {
	if r == nil {
		return nil
	}
	chunks := make([]ContentChunk, len(r.Chunks))
	copy(chunks, r.Chunks)
	return &ScrapeResponse{Chunks: chunks}
}

// HashContent computes the xxHash of content and returns it as a hex string.
func HashContent(content string) string {
	h := xxhash.Sum64String(content)
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, h))
}

// ScrapeClient sends a single scrape request to an endpoint of the
// extraction service. Implementations own retry and timeout policy.
type ScrapeClient interface {
	// Post sends req to endpoint and returns the normalized chunk list.
	// Errors are *Error values carrying a code and a status.
	Post(ctx context.Context, endpoint string, req *ScrapeRequest) (*ScrapeResponse, error)
}

// ScrapeService is the single entry point used by the presentation layer.
type ScrapeService interface {
	// Scrape returns the chunks for req, served from cache when possible.
	Scrape(ctx context.Context, req *ScrapeRequest, mode Mode) (*ScrapeResponse, error)

	// CancelAll aborts every in-flight Scrape call. Later calls are unaffected.
	CancelAll()

	// ClearCache drops every cached response.
	ClearCache()
}
