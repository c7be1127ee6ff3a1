package readability_test

import (
	"testing"

	"github.com/fwojciec/webchunk"
	"github.com/fwojciec/webchunk/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pricingPage = `<!DOCTYPE html>
<html>
<head><title>Pricing</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article>
<h2>Plans</h2>
<p>Plans start at ten dollars per month and include unlimited projects for small teams.</p>
<p>Read the <a href="/docs/billing">billing guide</a> for details about invoices and taxes.</p>
</article>
<footer>Copyright Footer Text</footer>
</body>
</html>`

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("  ", "")

	require.Error(t, err)
	assert.Equal(t, webchunk.EINVALID, webchunk.ErrorCode(err))
}

func TestExtractor_RejectsInvalidPageURL(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract(pricingPage, "://bad")

	assert.Equal(t, webchunk.EINVALID, webchunk.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(pricingPage, "")

	require.NoError(t, err)
	assert.Equal(t, "Pricing", result.Title)
}

func TestExtractor_RemovesBoilerplate(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(pricingPage, "")

	require.NoError(t, err)
	assert.NotContains(t, result.ContentHTML, "Home Nav Link")
	assert.NotContains(t, result.ContentHTML, "Copyright Footer Text")
	assert.Contains(t, result.ContentHTML, "Plans start at ten dollars")
}

func TestExtractor_ReturnsPlainText(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(pricingPage, "")

	require.NoError(t, err)
	assert.Contains(t, result.Text, "unlimited projects")
	assert.NotContains(t, result.Text, "<p>")
}

func TestExtractor_ResolvesRelativeLinks(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(pricingPage, "https://example.com/pricing")

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "https://example.com/docs/billing")
}
