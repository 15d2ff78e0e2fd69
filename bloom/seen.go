// Package bloom provides probabilistic URL-set membership for crawl
// deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// SeenSet tracks which normalized URLs a crawl has already encountered.
// Membership tests can report false positives (a URL wrongly considered
// seen, and therefore skipped) but never false negatives, so a URL is never
// fetched twice.
type SeenSet struct {
	f *bloom.BloomFilter
}

// NewSeenSet creates a SeenSet sized for n expected URLs with the given
// false positive rate.
func NewSeenSet(n uint, fpRate float64) *SeenSet {
	return &SeenSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Visit records the URL as seen and reports whether it was new.
// Returns false if the URL was (possibly) already seen.
func (s *SeenSet) Visit(url string) bool {
	return !s.f.TestOrAddString(url)
}

// Seen returns true if the URL might have been visited already.
func (s *SeenSet) Seen(url string) bool {
	return s.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs recorded.
func (s *SeenSet) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
