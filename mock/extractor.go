package mock

import "github.com/fwojciec/webchunk"

var _ webchunk.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webchunk.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML, pageURL string) (*webchunk.ExtractResult, error)
}

func (e *Extractor) Extract(rawHTML, pageURL string) (*webchunk.ExtractResult, error) {
	return e.ExtractFn(rawHTML, pageURL)
}

var _ webchunk.Converter = (*Converter)(nil)

// Converter is a mock implementation of webchunk.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ webchunk.Chunker = (*Chunker)(nil)

// Chunker is a mock implementation of webchunk.Chunker.
type Chunker struct {
	ChunkFn func(html string) ([]string, error)
}

func (c *Chunker) Chunk(html string) ([]string, error) {
	return c.ChunkFn(html)
}
