package wikidoc

import "context"

// Frontier tracks which page identifiers have been visited and which are
// waiting to be fetched.
type Frontier interface {
	// Push queues an identifier. Returns false if it was already visited
	// or is already pending.
	Push(id string) bool

	// Next dequeues the oldest pending identifier and marks it visited.
	// Returns false if nothing is pending.
	Next() (string, bool)

	// Len returns the number of pending identifiers.
	Len() int

	// Visited reports whether the identifier has been dequeued.
	Visited(id string) bool
}

// Limiter paces requests to the wiki.
type Limiter interface {
	// Wait blocks until the next request is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context) error
}
