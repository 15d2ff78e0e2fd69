package krpcdocs

import "time"

// Page represents a single crawled documentation page.
type Page struct {
	URL   string `json:"url"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	if p.Slug == "" {
		return Errorf(EINVALID, "page slug required")
	}
	return nil
}

// Member represents a single documented API element (method, attribute,
// property, etc.) identified by a stable anchor id within a page. Anchor ids
// are assumed globally unique across the whole site.
type Member struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Signature   string `json:"signature"`
	Description string `json:"description"`
}

// Validate returns an error if the member contains invalid fields.
func (m *Member) Validate() error {
	if m.ID == "" {
		return Errorf(EINVALID, "member id required")
	}
	if m.URL == "" {
		return Errorf(EINVALID, "member URL required")
	}
	return nil
}

// Snapshot is the atomically-replaceable unit of index state: pages keyed by
// slug, members keyed by anchor id, and the time the index was built. The
// three fields are always replaced together; a published snapshot is never
// mutated in place.
type Snapshot struct {
	Pages     map[string]*Page   `json:"pages"`
	Members   map[string]*Member `json:"members"`
	IndexedAt time.Time          `json:"indexedAt"`
}

// Empty reports whether the snapshot holds no pages.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Pages) == 0
}

// PageContent holds the content extracted from a single HTML page.
type PageContent struct {
	// Title is the document title, or empty if the page has none.
	Title string

	// Text is the visible text of the main content region with blank lines
	// removed and length capped.
	Text string

	// Members are the API member definitions found on the page.
	Members []*Member
}
