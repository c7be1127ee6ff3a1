package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/webchunk"
	"github.com/fwojciec/webchunk/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Pricing - Example</title>
<meta property="og:title" content="Pricing Plans">
</head>
<body>
<main>
<h1>Pricing</h1>
<p>Every plan includes unlimited projects and email support.</p>
</main>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html, "https://example.com/pricing")

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("extracts main content as html and text", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<p>The team plan costs twenty dollars per seat each month, billed annually.</p>
<p>Enterprise customers receive a dedicated account manager and custom terms.</p>
</article>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html, "")

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "twenty dollars per seat")
		assert.Contains(t, result.Text, "dedicated account manager")
	})

	t.Run("removes navigation and footer boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><ul><li><a href="/">Home</a></li><li><a href="/about">About Us Navigation</a></li></ul></nav>
<article>
<p>This article explains how usage is metered and when overage charges apply to an account.</p>
<p>Usage resets on the first day of each billing cycle for every workspace.</p>
</article>
<footer><p>Copyright 2024 Footer Company</p></footer>
</body>
</html>`

		ext := trafilatura.NewExtractor(trafilatura.WithFavorPrecision())
		result, err := ext.Extract(html, "")

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "About Us Navigation")
		assert.NotContains(t, result.ContentHTML, "Footer Company")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("", "")

		require.Error(t, err)
		assert.Equal(t, webchunk.EINVALID, webchunk.ErrorCode(err))
	})

	t.Run("returns error for invalid page url", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("<p>x</p>", "://bad")

		assert.Equal(t, webchunk.EINVALID, webchunk.ErrorCode(err))
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Simple content</p></body></html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html, "")

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Simple content")
	})
}
