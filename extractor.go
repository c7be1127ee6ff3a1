package webchunk

// ExtractResult holds the main content of an HTML page.
type ExtractResult struct {
	Title string

	// ContentHTML is the main content as clean HTML, boilerplate removed.
	ContentHTML string

	// Text is the plain text of the main content.
	Text string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// The local target uses it when a page has no chunkable elements.
type Extractor interface {
	// Extract returns the main content of rawHTML. pageURL resolves
	// relative links and may be empty.
	Extract(rawHTML, pageURL string) (*ExtractResult, error)
}
