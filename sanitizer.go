package wikidoc

// SanitizeResult holds a cleaned page and the internal links found in it.
type SanitizeResult struct {
	// HTML is the page with head, table of contents, comments,
	// class and id attributes and div wrappers removed.
	HTML string

	// Links holds internal page identifiers in document order.
	// Duplicates are kept.
	Links []string
}

// Sanitizer normalizes wiki page exports and extracts internal links.
type Sanitizer interface {
	Sanitize(html string) (*SanitizeResult, error)
}
