// Package crawl provides bounded breadth-first crawling of the kRPC
// documentation site. It coordinates fetching, content extraction, member
// extraction, and in-scope link discovery.
package crawl

import (
	"context"
	"log/slog"

	"github.com/fwojciec/krpcdocs"
)

// Frontier sizing and crawl bounds.
const (
	// DefaultMaxPages caps the number of distinct URLs visited per crawl,
	// preventing unbounded or cyclic crawls.
	DefaultMaxPages = 300

	// frontierExpectedURLs is the expected number of URLs for Bloom filter
	// sizing. The whole site is a few hundred pages.
	frontierExpectedURLs = 2048

	// frontierFalsePositiveRate is the acceptable false positive rate for
	// deduplication. A false positive skips a page, so it is kept low.
	frontierFalsePositiveRate = 0.001
)

// Crawler explores the documentation site breadth-first from a seed URL.
// URLs are processed strictly sequentially; fetch failures skip the page and
// the crawl continues.
type Crawler struct {
	Fetcher   krpcdocs.Fetcher
	Extractor krpcdocs.Extractor
	Links     krpcdocs.LinkExtractor
	Scope     krpcdocs.Scope

	// Limiter paces requests when set.
	Limiter *Limiter

	// MaxPages overrides DefaultMaxPages when positive.
	MaxPages int

	// Logger records skipped pages when set.
	Logger *slog.Logger
}

// Result holds the complete outcome of one crawl. It reflects this crawl
// only; merging with prior state is the caller's concern (the index performs
// a wholesale replace).
type Result struct {
	Pages   []*krpcdocs.Page
	Members map[string]*krpcdocs.Member
	Failed  int
}

// Crawl explores the link graph from the seed URL and returns every in-scope
// page and API member found. It stops when the frontier empties or the page
// cap is reached. The only fatal error is context cancellation.
func (c *Crawler) Crawl(ctx context.Context, seed string) (*Result, error) {
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(c.Scope.Normalize(seed))

	result := &Result{
		Members: make(map[string]*krpcdocs.Member),
	}
	visited := 0

	for visited < maxPages {
		url, ok := frontier.Pop()
		if !ok {
			break
		}
		visited++

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		html, err := c.Fetcher.Fetch(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Per-page fetch failures are non-fatal: skip, no retry.
			result.Failed++
			if c.Logger != nil {
				c.Logger.Warn("page fetch failed", "url", url, "error", err)
			}
			continue
		}

		content, err := c.Extractor.Extract(html, url)
		if err != nil {
			result.Failed++
			if c.Logger != nil {
				c.Logger.Warn("page extraction failed", "url", url, "error", err)
			}
			continue
		}

		slug := c.Scope.Slug(url)
		title := content.Title
		if title == "" {
			title = slug
		}

		result.Pages = append(result.Pages, &krpcdocs.Page{
			URL:   url,
			Slug:  slug,
			Title: title,
			Text:  content.Text,
		})

		for _, m := range content.Members {
			m.Title = title
			result.Members[m.ID] = m
		}

		links, err := c.Links.ExtractLinks(html, url)
		if err != nil {
			continue
		}
		for _, link := range links {
			if !c.Scope.Allowed(link) {
				continue
			}
			frontier.Push(c.Scope.Normalize(link))
		}
	}

	return result, nil
}
