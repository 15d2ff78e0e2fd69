// Package goquery provides HTML content extraction for Sphinx-generated
// documentation pages using PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/krpcdocs"
	"golang.org/x/net/html"
)

// Extraction limits. Page text and member descriptions are truncated so a
// single oversized page cannot bloat the index.
const (
	// DefaultMaxTextLen caps the extracted page text length in bytes.
	DefaultMaxTextLen = 20000

	// DefaultMaxDescriptionLen caps a member description length in bytes.
	DefaultMaxDescriptionLen = 1200
)

// Ensure Extractor implements the domain interfaces at compile time.
var (
	_ krpcdocs.Extractor     = (*Extractor)(nil)
	_ krpcdocs.LinkExtractor = (*Extractor)(nil)
)

// Extractor extracts page content, API member definitions, and hyperlinks
// from Sphinx HTML. The main content region is the div.document element
// Sphinx wraps page bodies in; pages without one fall back to the whole
// document.
type Extractor struct {
	maxTextLen int
	maxDescLen int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxTextLen caps the extracted page text length.
func WithMaxTextLen(n int) Option {
	return func(e *Extractor) {
		e.maxTextLen = n
	}
}

// WithMaxDescriptionLen caps member description lengths.
func WithMaxDescriptionLen(n int) Option {
	return func(e *Extractor) {
		e.maxDescLen = n
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		maxTextLen: DefaultMaxTextLen,
		maxDescLen: DefaultMaxDescriptionLen,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the page title, the visible text of
// the main content region, and every API member definition on the page.
// Member definitions are dt elements carrying a stable anchor id; the
// immediately following dd sibling, if present, supplies the description.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*krpcdocs.PageContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, krpcdocs.Errorf(krpcdocs.EINVALID, "failed to parse HTML: %v", err)
	}

	content := &krpcdocs.PageContent{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	// Sphinx wraps the page body in div.document; fall back to the whole
	// document for pages that don't use the standard layout.
	main := doc.Find("div.document").First()
	if main.Length() == 0 {
		main = doc.Selection
	}
	content.Text = truncate(visibleText(main), e.maxTextLen)

	doc.Find("dt[id]").Each(func(_ int, sel *goquery.Selection) {
		id := strings.TrimSpace(sel.AttrOr("id", ""))
		if id == "" {
			return
		}

		description := ""
		if dd := sel.NextFiltered("dd"); dd.Length() > 0 {
			description = truncate(flatText(dd), e.maxDescLen)
		}

		content.Members = append(content.Members, &krpcdocs.Member{
			ID:          id,
			URL:         pageURL + "#" + id,
			Signature:   flatText(sel),
			Description: description,
		})
	})

	return content, nil
}

// ExtractLinks returns every hyperlink target in the document resolved
// against baseURL, with fragments stripped and duplicates removed in
// document order. Non-HTTP schemes (javascript:, mailto:, etc.) are skipped.
func (e *Extractor) ExtractLinks(rawHTML string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, krpcdocs.Errorf(krpcdocs.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, krpcdocs.Errorf(krpcdocs.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})

	return links, nil
}

// flatText walks the selection's text nodes and joins the non-blank trimmed
// segments with single spaces, producing single-line flattened text for
// member signatures and descriptions.
func flatText(sel *goquery.Selection) string {
	var parts []string
	for _, node := range sel.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, " ")
}

// visibleText walks the selection's text nodes and joins the non-blank
// trimmed segments with newlines, mirroring how a browser would render the
// element's visible text line by line. Script and style bodies are skipped.
func visibleText(sel *goquery.Selection) string {
	var parts []string
	for _, node := range sel.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, "\n")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, collapse(t))
		}
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// resolveURL resolves a relative URL against a base URL.
// Fragments are stripped; the crawl deduplicates on fragment-free URLs.
// Returns empty string if the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// collapse reduces all runs of whitespace in s to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate caps s at n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
