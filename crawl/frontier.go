package crawl

import (
	"sync"

	"github.com/fwojciec/wikidoc"
)

// Compile-time interface verification.
var _ wikidoc.Frontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO of page identifiers with exact visited
// tracking. It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	visited map[string]struct{}
	pending map[string]struct{}
	queue   []string
	head    int
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		visited: make(map[string]struct{}),
		pending: make(map[string]struct{}),
	}
}

// Push appends an identifier to the queue.
// Returns false for empty identifiers and for identifiers that were already
// visited or are already pending.
func (f *Frontier) Push(id string) bool {
	if id == "" {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.visited[id]; ok {
		return false
	}
	if _, ok := f.pending[id]; ok {
		return false
	}

	f.pending[id] = struct{}{}
	f.queue = append(f.queue, id)
	return true
}

// Next dequeues the oldest pending identifier and marks it visited.
// The bool result is false if nothing is pending.
func (f *Frontier) Next() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.head == len(f.queue) {
		return "", false
	}
	id := f.queue[f.head]
	f.queue[f.head] = ""
	f.head++
	delete(f.pending, id)
	f.visited[id] = struct{}{}
	f.compact()
	return id, true
}

// Len returns the number of pending identifiers.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Visited reports whether the identifier has been dequeued.
func (f *Frontier) Visited(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.visited[id]
	return ok
}

// VisitedCount returns the number of identifiers dequeued so far.
func (f *Frontier) VisitedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited)
}

// compact drops the consumed prefix once it dominates the queue.
func (f *Frontier) compact() {
	if f.head < 1024 || f.head*2 < len(f.queue) {
		return
	}
	f.queue = append(f.queue[:0:0], f.queue[f.head:]...)
	f.head = 0
}
