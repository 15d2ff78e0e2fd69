// Package index provides the staleness-gated documentation index: a single
// in-memory snapshot of crawled pages and API members, rebuilt from the
// network when it goes stale and persisted after every rebuild.
package index

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/krpcdocs"
	"github.com/fwojciec/krpcdocs/crawl"
)

// DefaultFreshnessWindow is how long a snapshot is served before a rebuild
// is required.
const DefaultFreshnessWindow = 24 * time.Hour

// Search and member-resolution limits.
const (
	minSearchLimit  = 1
	maxSearchLimit  = 20
	snippetBefore   = 80
	snippetAfter    = 160
	snippetFallback = 240
	maxAlternatives = 5
)

// Substring match weights for page search. Each field contributes at most
// once per page.
const (
	titleWeight = 5
	slugWeight  = 4
	textWeight  = 1
)

// Member match scores, strongest first.
const (
	scoreExact        = 100
	scoreSubstring    = 80
	scoreClassAndName = 50
	scoreNameOnly     = 20
)

// Crawler runs a full site crawl from a seed URL.
type Crawler interface {
	Crawl(ctx context.Context, seed string) (*crawl.Result, error)
}

// Ensure Service implements krpcdocs.DocService at compile time.
var _ krpcdocs.DocService = (*Service)(nil)

// Service answers search, page-lookup, and member-resolution queries against
// a cached snapshot of the documentation site.
//
// A crawl never runs under the state lock: rebuilds assemble a private
// snapshot off to the side and swap it in atomically, so queries keep
// serving the previous snapshot for the full duration of a crawl. A
// dedicated rebuild mutex single-flights concurrent reindex requests.
// Published snapshots are immutable.
type Service struct {
	crawler Crawler
	store   krpcdocs.SnapshotStore
	scope   krpcdocs.Scope
	seed    string
	window  time.Duration
	now     func() time.Time

	mu   sync.RWMutex // guards snap
	snap *krpcdocs.Snapshot

	rebuildMu sync.Mutex // single-flights reindexes
}

// Option configures a Service.
type Option func(*Service)

// WithScope overrides the crawl scope. Defaults to the kRPC Python docs.
func WithScope(scope krpcdocs.Scope) Option {
	return func(s *Service) {
		s.scope = scope
	}
}

// WithSeed overrides the crawl seed URL.
func WithSeed(seed string) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithFreshnessWindow overrides the staleness window.
func WithFreshnessWindow(d time.Duration) Option {
	return func(s *Service) {
		s.window = d
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service and loads any previously persisted snapshot.
// A missing, corrupt, or partially written cache is treated as no cache at
// all; it never prevents construction. The first query rebuilds the index.
func NewService(crawler Crawler, store krpcdocs.SnapshotStore, opts ...Option) *Service {
	s := &Service{
		crawler: crawler,
		store:   store,
		scope:   krpcdocs.DefaultScope(),
		seed:    krpcdocs.SeedURL,
		window:  DefaultFreshnessWindow,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if snap, err := store.Load(context.Background()); err == nil {
		s.snap = snap
	}

	return s
}

// current returns the published snapshot.
func (s *Service) current() *krpcdocs.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// stale reports whether the snapshot needs a rebuild: never indexed, or
// older than the freshness window.
func (s *Service) stale(snap *krpcdocs.Snapshot) bool {
	if snap == nil || snap.IndexedAt.IsZero() {
		return true
	}
	return s.now().Sub(snap.IndexedAt) > s.window
}

// ensureFresh guarantees a usable snapshot, rebuilding if the current one is
// empty or stale, and returns the snapshot queries should read. Reading from
// the returned value (not the shared field) gives each query a consistent
// view even if a reindex swaps the snapshot mid-flight.
func (s *Service) ensureFresh(ctx context.Context) (*krpcdocs.Snapshot, error) {
	if _, err := s.Reindex(ctx, false); err != nil {
		return nil, err
	}
	return s.current(), nil
}

// Reindex rebuilds the index from the seed URL. Without force it is a no-op
// while a non-empty fresh snapshot exists: zero network fetches, indexedAt
// unchanged. The crawl runs outside the state lock; the new snapshot is
// swapped in atomically and then persisted.
func (s *Service) Reindex(ctx context.Context, force bool) (*krpcdocs.ReindexResult, error) {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	// Re-check under the rebuild lock: a concurrent caller may have just
	// rebuilt while we waited.
	if snap := s.current(); !force && !snap.Empty() && !s.stale(snap) {
		return &krpcdocs.ReindexResult{
			Status:    "ok",
			Message:   "Index already fresh.",
			Pages:     len(snap.Pages),
			Members:   len(snap.Members),
			IndexedAt: snap.IndexedAt,
		}, nil
	}

	result, err := s.crawler.Crawl(ctx, s.seed)
	if err != nil {
		return nil, err
	}

	snap := &krpcdocs.Snapshot{
		Pages:     make(map[string]*krpcdocs.Page, len(result.Pages)),
		Members:   result.Members,
		IndexedAt: s.now().UTC(),
	}
	for _, p := range result.Pages {
		snap.Pages[p.Slug] = p
	}
	if snap.Members == nil {
		snap.Members = make(map[string]*krpcdocs.Member)
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	if err := s.store.Save(ctx, snap); err != nil {
		return nil, krpcdocs.Errorf(krpcdocs.EINTERNAL, "failed to persist index: %v", err)
	}

	return &krpcdocs.ReindexResult{
		Status:    "ok",
		Message:   fmt.Sprintf("Indexed %d pages and %d API members.", len(snap.Pages), len(snap.Members)),
		Pages:     len(snap.Pages),
		Members:   len(snap.Members),
		IndexedAt: snap.IndexedAt,
	}, nil
}

// Search scores every indexed page against the query with case-insensitive
// substring matching: title +5, slug +4, body text +1, each field at most
// once. Zero-scoring pages are excluded; ties order by ascending slug. The
// limit is clamped to [1, 20].
func (s *Service) Search(ctx context.Context, query string, limit int) (*krpcdocs.SearchResult, error) {
	snap, err := s.ensureFresh(ctx)
	if err != nil {
		return nil, err
	}

	out := &krpcdocs.SearchResult{
		Query:   query,
		Results: []*krpcdocs.SearchHit{},
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return out, nil
	}

	type scored struct {
		score int
		page  *krpcdocs.Page
	}
	var hits []scored

	for _, page := range snap.Pages {
		score := 0
		if strings.Contains(strings.ToLower(page.Title), q) {
			score += titleWeight
		}
		if strings.Contains(strings.ToLower(page.Slug), q) {
			score += slugWeight
		}
		if strings.Contains(strings.ToLower(page.Text), q) {
			score += textWeight
		}
		if score > 0 {
			hits = append(hits, scored{score: score, page: page})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].page.Slug < hits[j].page.Slug
	})

	n := limit
	if n < minSearchLimit {
		n = minSearchLimit
	}
	if n > maxSearchLimit {
		n = maxSearchLimit
	}
	if n > len(hits) {
		n = len(hits)
	}

	for _, hit := range hits[:n] {
		out.Results = append(out.Results, &krpcdocs.SearchHit{
			Score:   hit.score,
			Title:   hit.page.Title,
			Slug:    hit.page.Slug,
			URL:     hit.page.URL,
			Snippet: snippet(hit.page.Text, q),
		})
	}

	return out, nil
}

// snippet builds a whitespace-collapsed highlight window around the first
// occurrence of the query in the page text, or the leading text if the
// query only matched title or slug.
func snippet(text, query string) string {
	idx := strings.Index(strings.ToLower(text), query)

	var window string
	if idx < 0 {
		window = text
		if len(window) > snippetFallback {
			window = window[:snippetFallback]
		}
	} else {
		start := idx - snippetBefore
		if start < 0 {
			start = 0
		}
		end := idx + snippetAfter
		if end > len(text) {
			end = len(text)
		}
		window = text[start:end]
	}

	return strings.Join(strings.Fields(window), " ")
}

// Page resolves a slug or full URL to the stored page record.
func (s *Service) Page(ctx context.Context, slugOrURL string) (*krpcdocs.PageDetail, error) {
	snap, err := s.ensureFresh(ctx)
	if err != nil {
		return nil, err
	}

	key := s.scope.SlugOrURL(slugOrURL)
	page, ok := snap.Pages[key]
	if !ok {
		return nil, krpcdocs.Errorf(krpcdocs.ENOTFOUND, "No page found for %q.", slugOrURL)
	}

	return &krpcdocs.PageDetail{
		Title:     page.Title,
		Slug:      page.Slug,
		URL:       page.URL,
		Content:   page.Text,
		IndexedAt: snap.IndexedAt,
	}, nil
}

// Member fuzzy-matches a (service, class, member) triple against every
// indexed member id. Scoring, strongest first: exact composite-key equality
// 100, composite key substring 80, class and member name both present 50,
// member name only 20. Equal scores order by ascending id.
func (s *Service) Member(ctx context.Context, service, class, member string) (*krpcdocs.MemberResult, error) {
	snap, err := s.ensureFresh(ctx)
	if err != nil {
		return nil, err
	}

	target := strings.ToLower(service + "." + class + "." + member)
	classLower := strings.ToLower(class)
	memberLower := strings.ToLower(member)

	type candidate struct {
		score int
		id    string
		m     *krpcdocs.Member
	}
	var candidates []candidate

	for id, m := range snap.Members {
		key := strings.ToLower(id)
		score := 0
		switch {
		case key == target:
			score = scoreExact
		case strings.Contains(key, target):
			score = scoreSubstring
		case strings.Contains(key, memberLower) && strings.Contains(key, classLower):
			score = scoreClassAndName
		case strings.Contains(key, memberLower):
			score = scoreNameOnly
		}
		if score > 0 {
			candidates = append(candidates, candidate{score: score, id: id, m: m})
		}
	}

	if len(candidates) == 0 {
		return nil, krpcdocs.Errorf(krpcdocs.ENOTFOUND, "No API member matched %s.%s.%s", service, class, member)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})

	out := &krpcdocs.MemberResult{
		Query: krpcdocs.MemberQuery{
			Service: service,
			Class:   class,
			Member:  member,
		},
		BestMatch:    candidates[0].m,
		Alternatives: []*krpcdocs.MemberRef{},
	}

	for _, c := range candidates[1:] {
		if len(out.Alternatives) == maxAlternatives {
			break
		}
		out.Alternatives = append(out.Alternatives, &krpcdocs.MemberRef{
			ID:    c.id,
			Title: c.m.Title,
			URL:   c.m.URL,
		})
	}

	return out, nil
}
