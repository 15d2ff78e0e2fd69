package krpcdocs

import (
	"net/url"
	"strings"
)

// Crawl scope for the kRPC Python documentation site.
const (
	// SeedURL is the page every crawl starts from.
	SeedURL = "https://krpc.github.io/krpc/python.html"

	// AllowedPrefix bounds the crawl to the Python docs subtree.
	AllowedPrefix = "https://krpc.github.io/krpc/python"

	// PageSuffix is the extension crawlable pages must carry.
	PageSuffix = ".html"

	// SlugMarker is the path segment after which a page's slug begins.
	SlugMarker = "/krpc/"
)

// Scope canonicalizes URLs and decides crawl eligibility for a single
// documentation site rooted at one prefix.
type Scope struct {
	// Prefix is the URL prefix pages must start with after normalization.
	Prefix string

	// Suffix is the extension pages must end with (e.g. ".html").
	Suffix string

	// Marker is the path segment after which the slug begins (e.g. "/krpc/").
	Marker string
}

// DefaultScope returns the scope for the kRPC Python documentation site.
func DefaultScope() Scope {
	return Scope{
		Prefix: AllowedPrefix,
		Suffix: PageSuffix,
		Marker: SlugMarker,
	}
}

// Normalize returns the canonical absolute form of a URL with the query
// string and fragment removed. It is idempotent. Unparsable input is
// returned trimmed but otherwise unchanged.
func (s Scope) Normalize(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	u, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// Allowed reports whether a URL is in crawl scope: its normalized form must
// start with the allowed prefix and end with the page suffix.
func (s Scope) Allowed(rawURL string) bool {
	n := s.Normalize(rawURL)
	return strings.HasPrefix(n, s.Prefix) && strings.HasSuffix(n, s.Suffix)
}

// Slug returns the page's stable identifier: the path component following
// the last occurrence of the marker segment in the normalized URL. If the
// marker is absent the full path (without its leading slash) is returned.
func (s Scope) Slug(rawURL string) string {
	u, err := url.Parse(s.Normalize(rawURL))
	if err != nil {
		return strings.TrimPrefix(rawURL, "/")
	}
	path := u.Path
	if idx := strings.LastIndex(path, s.Marker); idx != -1 {
		return path[idx+len(s.Marker):]
	}
	return strings.TrimPrefix(path, "/")
}

// SlugOrURL reduces a page reference to slug form for lookup. URL-shaped
// input is normalized and reduced to its slug; anything else is treated as
// a slug with any leading slashes stripped.
func (s Scope) SlugOrURL(value string) string {
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return s.Slug(v)
	}
	return strings.TrimLeft(v, "/")
}
