// Package goquery implements webchunk.Chunker with CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webchunk"
	"github.com/fwojciec/webchunk/bloom"
)

// DefaultSelector matches the elements whose text becomes chunks.
const DefaultSelector = "p, h1, h2, h3, li"

// Ensure Chunker implements webchunk.Chunker at compile time.
var _ webchunk.Chunker = (*Chunker)(nil)

// Chunker splits a page into chunks taken from content elements.
// Repeated text is dropped after its first occurrence.
type Chunker struct {
	selector string
	maxWords int
}

// ChunkerOption configures a Chunker.
type ChunkerOption func(*Chunker)

// WithSelector overrides DefaultSelector.
func WithSelector(selector string) ChunkerOption {
	return func(c *Chunker) {
		c.selector = selector
	}
}

// WithMaxWords overrides webchunk.MaxWordsPerChunk.
func WithMaxWords(n int) ChunkerOption {
	return func(c *Chunker) {
		c.maxWords = n
	}
}

// NewChunker creates a new Chunker.
func NewChunker(opts ...ChunkerOption) *Chunker {
	c := &Chunker{
		selector: DefaultSelector,
		maxWords: webchunk.MaxWordsPerChunk,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk returns the text of matching elements in document order. Elements
// nested in another match (an li inside an li) contribute only through
// their outermost match.
func (c *Chunker) Chunk(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, webchunk.Errorf(webchunk.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("script, style, noscript, template").Remove()

	matches := doc.Find(c.selector)
	seen := bloom.NewFilter(uint(max(matches.Length()*2, 64)), 0.001)
	chunks := []string{}

	matches.Each(func(_ int, sel *goquery.Selection) {
		if sel.ParentsFiltered(c.selector).Length() > 0 {
			return
		}
		for _, part := range webchunk.SplitWords(sel.Text(), c.maxWords) {
			if seen.TestAndAdd(part) {
				continue
			}
			chunks = append(chunks, part)
		}
	})

	return chunks, nil
}
