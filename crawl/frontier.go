package crawl

import (
	"sync"

	"github.com/fwojciec/krpcdocs/bloom"
)

// Frontier is a FIFO crawl queue with Bloom filter deduplication, giving the
// crawl its breadth-first order. It is safe for concurrent use.
//
// Deduplication can report false positives, which skip a URL; it never
// admits the same URL twice.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.SeenSet
	queue []string
}

// NewFrontier creates a Frontier sized for n expected URLs with the given
// false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewSeenSet(n, fpRate),
	}
}

// Push enqueues a URL. Returns false if the URL has already been seen.
// Callers are expected to pass normalized URLs.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.seen.Visit(url) {
		return false
	}
	f.queue = append(f.queue, url)
	return true
}

// Pop dequeues the oldest URL. The bool result is false if the frontier is
// empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of URLs waiting in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been queued at some point.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Seen(url)
}
