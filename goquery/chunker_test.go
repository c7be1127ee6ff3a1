package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/webchunk/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunker_Chunk(t *testing.T) {
	t.Parallel()

	t.Run("returns content elements in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<h1>Pricing</h1>
			<p>Plans start at   $10
			per month.</p>
			<ul><li>Free tier</li><li>Pro tier</li></ul>
			<div>not a chunk</div>
		</body></html>`

		chunks, err := goquery.NewChunker().Chunk(html)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"Pricing",
			"Plans start at $10 per month.",
			"Free tier",
			"Pro tier",
		}, chunks)
	})

	t.Run("ignores script and style text", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><style>p { color: red }</style></head><body>
			<p>Visible<script>var hidden = 1;</script></p>
		</body></html>`

		chunks, err := goquery.NewChunker().Chunk(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"Visible"}, chunks)
	})

	t.Run("drops repeated text", func(t *testing.T) {
		t.Parallel()

		html := `<p>Subscribe now</p><p>Body text</p><p>Subscribe now</p>`

		chunks, err := goquery.NewChunker().Chunk(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"Subscribe now", "Body text"}, chunks)
	})

	t.Run("skips empty elements", func(t *testing.T) {
		t.Parallel()

		chunks, err := goquery.NewChunker().Chunk(`<p>   </p><h2></h2><p>text</p>`)

		require.NoError(t, err)
		assert.Equal(t, []string{"text"}, chunks)
	})

	t.Run("nested matches count once", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>Outer <ul><li>inner</li></ul></li></ul>`

		chunks, err := goquery.NewChunker().Chunk(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"Outer inner"}, chunks)
	})

	t.Run("splits long elements by word count", func(t *testing.T) {
		t.Parallel()

		words := make([]string, 450)
		for i := range words {
			words[i] = "w" + strings.Repeat("x", i%5)
		}
		html := "<p>" + strings.Join(words, " ") + "</p>"

		chunks, err := goquery.NewChunker().Chunk(html)

		require.NoError(t, err)
		require.Len(t, chunks, 3)
		assert.Len(t, strings.Fields(chunks[0]), 200)
		assert.Len(t, strings.Fields(chunks[1]), 200)
		assert.Len(t, strings.Fields(chunks[2]), 50)
	})

	t.Run("returns empty slice without content elements", func(t *testing.T) {
		t.Parallel()

		chunks, err := goquery.NewChunker().Chunk(`<div><span>only spans</span></div>`)

		require.NoError(t, err)
		assert.Empty(t, chunks)
	})

	t.Run("custom selector and word limit", func(t *testing.T) {
		t.Parallel()

		c := goquery.NewChunker(goquery.WithSelector("article"), goquery.WithMaxWords(2))
		chunks, err := c.Chunk(`<article>one two three</article><p>ignored</p>`)

		require.NoError(t, err)
		assert.Equal(t, []string{"one two", "three"}, chunks)
	})
}
