// Package trafilatura implements webchunk.Extractor with go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/webchunk"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements webchunk.Extractor at compile time.
var _ webchunk.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	favorPrecision bool
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithFavorPrecision makes extraction drop borderline text such as
// teasers and link lists.
func WithFavorPrecision() ExtractorOption {
	return func(e *Extractor) {
		e.favorPrecision = true
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content without comments.
func (e *Extractor) Extract(rawHTML, pageURL string) (*webchunk.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webchunk.Errorf(webchunk.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		FavorPrecision:  e.favorPrecision,
	}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, webchunk.Errorf(webchunk.EINVALID, "invalid page URL %q: %v", pageURL, err)
		}
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, webchunk.Errorf(webchunk.EINTERNAL, "extract content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, webchunk.Errorf(webchunk.EINTERNAL, "render content: %v", err)
		}
	}

	return &webchunk.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		Text:        strings.TrimSpace(result.ContentText),
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
