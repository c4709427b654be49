package mock

import "github.com/fwojciec/wikidoc"

var _ wikidoc.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of wikidoc.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(html string) (*wikidoc.SanitizeResult, error)
}

func (s *Sanitizer) Sanitize(html string) (*wikidoc.SanitizeResult, error) {
	return s.SanitizeFn(html)
}
