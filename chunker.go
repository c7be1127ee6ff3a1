package webchunk

import "strings"

// MaxWordsPerChunk bounds the length of a single chunk produced locally.
const MaxWordsPerChunk = 200

// Chunker splits an HTML page into text chunks.
type Chunker interface {
	// Chunk returns the text of content elements in document order.
	// It returns an empty slice when the page has no such elements.
	Chunk(html string) ([]string, error)
}

// SplitWords splits text into pieces of at most max words each.
// Whitespace inside each piece is normalized to single spaces.
func SplitWords(text string, max int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if max <= 0 {
		max = MaxWordsPerChunk
	}

	parts := make([]string, 0, (len(words)+max-1)/max)
	for i := 0; i < len(words); i += max {
		end := min(i+max, len(words))
		parts = append(parts, strings.Join(words[i:end], " "))
	}
	return parts
}
