package crawl

import (
	"strings"
	"sync"

	"github.com/fwojciec/tropy/bloom"
)

// Link is a page waiting to be visited, with its distance from the seeds.
type Link struct {
	URL   string
	Depth int
}

// Frontier is an in-memory FIFO of pages to visit with Bloom filter
// deduplication, so each page is visited at most once per crawl.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []Link
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewFilter(n, fpRate),
	}
}

// Push queues a link. Returns false if the URL has already been seen.
// URLs differing only by fragment are considered duplicates.
func (f *Frontier) Push(link Link) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(link.URL)
	if url == "" || f.seen.TestAndAdd(url) {
		return false
	}

	link.URL = url
	f.queue = append(f.queue, link)
	return true
}

// Pop returns the oldest queued link.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (Link, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return Link{}, false
	}
	link := f.queue[0]
	f.queue[0] = Link{}
	f.queue = f.queue[1:]
	return link, true
}

// Len returns the number of queued links.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// SeenCount returns the approximate number of distinct pages ever queued.
func (f *Frontier) SeenCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.EstimatedCount()
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
