package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/krpcdocs/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFrontier_Push_rejects_duplicate_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.001)

	ok := f.Push("https://krpc.github.io/krpc/python.html")
	assert.True(t, ok, "first push should succeed")

	ok = f.Push("https://krpc.github.io/krpc/python.html")
	assert.False(t, ok, "duplicate URL should be rejected")
}

func TestFrontier_Pop_is_FIFO(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.001)

	f.Push("https://krpc.github.io/krpc/python.html")
	f.Push("https://krpc.github.io/krpc/python/api.html")
	f.Push("https://krpc.github.io/krpc/python/tutorials.html")

	url, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://krpc.github.io/krpc/python.html", url)

	url, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://krpc.github.io/krpc/python/api.html", url)

	url, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://krpc.github.io/krpc/python/tutorials.html", url)

	_, ok = f.Pop()
	assert.False(t, ok, "pop on empty frontier should return false")
}

func TestFrontier_Len_tracks_queue_size(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.001)

	assert.Equal(t, 0, f.Len(), "new frontier should be empty")

	f.Push("https://krpc.github.io/krpc/python.html")
	assert.Equal(t, 1, f.Len())

	f.Push("https://krpc.github.io/krpc/python/api.html")
	assert.Equal(t, 2, f.Len())

	f.Pop()
	assert.Equal(t, 1, f.Len())

	f.Pop()
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_Seen_tracks_popped_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.001)

	assert.False(t, f.Seen("https://krpc.github.io/krpc/python.html"))

	f.Push("https://krpc.github.io/krpc/python.html")
	assert.True(t, f.Seen("https://krpc.github.io/krpc/python.html"))

	// Popped URLs stay seen so they can never be re-queued.
	f.Pop()
	assert.True(t, f.Seen("https://krpc.github.io/krpc/python.html"))
	assert.False(t, f.Push("https://krpc.github.io/krpc/python.html"))
}

func TestFrontier_concurrent_access(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10000, 0.001)

	const numGoroutines = 10
	const numOpsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2) // pushers + poppers

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				f.Push(fmt.Sprintf("https://krpc.github.io/krpc/python/%d/%d.html", id, j))
			}
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				f.Pop()
				f.Len()
			}
		}()
	}

	wg.Wait()

	for i := 0; i < numGoroutines; i++ {
		for j := 0; j < numOpsPerGoroutine; j++ {
			url := fmt.Sprintf("https://krpc.github.io/krpc/python/%d/%d.html", i, j)
			assert.True(t, f.Seen(url), "pushed URL %s should be seen", url)
		}
	}
}
