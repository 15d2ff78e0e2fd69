package krpcdocs

// Extractor extracts page content and API member definitions from HTML.
type Extractor interface {
	// Extract processes raw HTML and returns the page title, the visible
	// text of the main content region, and any member definitions found.
	// pageURL is the canonical URL of the page; member URLs are formed as
	// pageURL plus the member's anchor.
	Extract(html string, pageURL string) (*PageContent, error)
}

// LinkExtractor discovers hyperlink targets in HTML.
type LinkExtractor interface {
	// ExtractLinks returns every hyperlink target in the document, resolved
	// against baseURL. No scope filtering is applied; that is the caller's
	// concern.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
