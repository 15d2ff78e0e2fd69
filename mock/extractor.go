package mock

import "github.com/fwojciec/krpcdocs"

var (
	_ krpcdocs.Extractor     = (*Extractor)(nil)
	_ krpcdocs.LinkExtractor = (*Extractor)(nil)
)

// Extractor is a mock implementation of krpcdocs.Extractor and
// krpcdocs.LinkExtractor.
type Extractor struct {
	ExtractFn      func(html string, pageURL string) (*krpcdocs.PageContent, error)
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*krpcdocs.PageContent, error) {
	return e.ExtractFn(html, pageURL)
}

func (e *Extractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
