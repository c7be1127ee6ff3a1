package local

import (
	"slices"
	"strings"
	"unicode"

	"github.com/fwojciec/webchunk"
)

// DefaultMaxResults is the number of chunks returned per page.
const DefaultMaxResults = 10

// terms returns the distinct lower-cased words of s in first-seen order.
func terms(s string) []string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	seen := make(map[string]struct{}, len(words))
	out := words[:0]
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Score returns the fraction of distinct query terms that occur in text,
// in the range [0, 1]. An empty query scores 0.
func Score(text, query string) float64 {
	q := terms(query)
	if len(q) == 0 {
		return 0
	}
	have := make(map[string]struct{})
	for _, w := range terms(text) {
		have[w] = struct{}{}
	}
	var hits int
	for _, w := range q {
		if _, ok := have[w]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(q))
}

// Rank scores texts against query and returns at most limit chunks,
// highest score first. Chunk IDs are document positions; equal scores keep
// document order.
func Rank(texts []string, query string, limit int) []webchunk.ContentChunk {
	chunks := make([]webchunk.ContentChunk, len(texts))
	for i, text := range texts {
		chunks[i] = webchunk.ContentChunk{
			ID:      i,
			Content: text,
			Score:   Score(text, query),
		}
	}
	slices.SortStableFunc(chunks, func(a, b webchunk.ContentChunk) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	if limit > 0 && len(chunks) > limit {
		chunks = chunks[:limit]
	}
	return chunks
}
