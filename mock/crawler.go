package mock

import (
	"context"

	"github.com/fwojciec/krpcdocs/crawl"
)

// Crawler is a mock implementation of index.Crawler.
type Crawler struct {
	CrawlFn func(ctx context.Context, seed string) (*crawl.Result, error)
}

func (c *Crawler) Crawl(ctx context.Context, seed string) (*crawl.Result, error) {
	return c.CrawlFn(ctx, seed)
}
