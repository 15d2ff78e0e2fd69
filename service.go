package krpcdocs

import (
	"context"
	"time"
)

// DocService is the public contract of the documentation index: exactly four
// operations. Every query operation ensures index freshness first, which may
// trigger a synchronous crawl and persist.
type DocService interface {
	// Search scores indexed pages against a free-text query and returns the
	// top results. The limit is clamped to [1, 20]. A blank query returns an
	// empty result list without scoring.
	Search(ctx context.Context, query string, limit int) (*SearchResult, error)

	// Page resolves a slug or full URL to the stored page.
	// Returns ENOTFOUND if no page matches.
	Page(ctx context.Context, slugOrURL string) (*PageDetail, error)

	// Member fuzzy-matches a (service, class, member) triple against indexed
	// API members. Returns ENOTFOUND if no candidate scores above zero.
	Member(ctx context.Context, service, class, member string) (*MemberResult, error)

	// Reindex rebuilds the index from the seed URL. Without force it is a
	// no-op while the current snapshot is fresh.
	Reindex(ctx context.Context, force bool) (*ReindexResult, error)
}

// SearchHit is a single ranked page in a search result.
type SearchHit struct {
	Score   int    `json:"score"`
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SearchResult holds the ranked pages for one search query.
type SearchResult struct {
	Query   string       `json:"query"`
	Results []*SearchHit `json:"results"`
}

// PageDetail is the full stored record for one page lookup.
type PageDetail struct {
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	URL       string    `json:"url"`
	Content   string    `json:"content"`
	IndexedAt time.Time `json:"indexedAt"`
}

// MemberQuery echoes the triple a member lookup was made with.
type MemberQuery struct {
	Service string `json:"service"`
	Class   string `json:"class"`
	Member  string `json:"member"`
}

// MemberRef is an abbreviated member record used for runner-up matches.
type MemberRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// MemberResult holds the best match for a member lookup plus up to five
// runner-ups.
type MemberResult struct {
	Query        MemberQuery  `json:"query"`
	BestMatch    *Member      `json:"bestMatch"`
	Alternatives []*MemberRef `json:"alternatives"`
}

// ReindexResult reports the outcome of a reindex request.
type ReindexResult struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Pages     int       `json:"pages"`
	Members   int       `json:"members"`
	IndexedAt time.Time `json:"indexedAt"`
}
