// Package readability implements webchunk.Extractor with go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/webchunk"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements webchunk.Extractor at compile time.
var _ webchunk.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main article content.
// Relative links in the content are resolved against pageURL.
func (e *Extractor) Extract(rawHTML, pageURL string) (*webchunk.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webchunk.Errorf(webchunk.EINVALID, "empty HTML input")
	}

	var u *url.URL
	if pageURL != "" {
		var err error
		if u, err = url.Parse(pageURL); err != nil {
			return nil, webchunk.Errorf(webchunk.EINVALID, "invalid page URL %q: %v", pageURL, err)
		}
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, webchunk.Errorf(webchunk.EINTERNAL, "extract article: %v", err)
	}

	return &webchunk.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		Text:        strings.TrimSpace(article.TextContent),
	}, nil
}
