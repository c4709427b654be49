package wikidoc

import "context"

// Session retrieves raw page exports from an authenticated wiki.
type Session interface {
	// Login authenticates the session. It must succeed before Fetch is called.
	// Returns EUNAUTHORIZED if the wiki rejects the credentials.
	Login(ctx context.Context, password string) error

	// Fetch returns the raw XHTML export of the page with the given identifier.
	// Returns ENOTFOUND if the wiki reports that the page does not exist
	// and EPROTOCOL if the wiki responds with an unexpected status.
	Fetch(ctx context.Context, id string) (html string, err error)
}
