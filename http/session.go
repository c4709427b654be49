// Package http provides a cookie-authenticated session against a DokuWiki
// installation. It logs in once and fetches page exports by identifier.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/wikidoc"
	"golang.org/x/net/publicsuffix"
)

// DefaultUsername is the account used when no username is configured.
const DefaultUsername = "exporter"

// DefaultNotFoundMarkers are phrases DokuWiki renders in place of a missing
// page. The wiki answers 200 for such pages, so the body is inspected.
var DefaultNotFoundMarkers = []string{
	"Dieses Thema existiert noch nicht",
	"Diese Seite existiert nicht mehr",
}

// Ensure Session implements wikidoc.Session at compile time.
var _ wikidoc.Session = (*Session)(nil)

// Session talks to a single wiki. Cookies received at login are kept in the
// session's jar and sent with every fetch. Redirects are never followed.
type Session struct {
	client   *http.Client
	base     *url.URL
	username string
	entry    string
	timeout  time.Duration
	markers  []string
}

// Option configures a Session.
type Option func(*Session)

// WithUsername sets the account name used by Login.
func WithUsername(username string) Option {
	return func(s *Session) {
		s.username = username
	}
}

// WithEntry sets the page identifier the login form is posted to.
// Defaults to wikidoc.EntryPageID.
func WithEntry(id string) Option {
	return func(s *Session) {
		s.entry = id
	}
}

// WithTimeout sets the timeout for each HTTP request.
// Zero, the default, means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.timeout = d
	}
}

// WithNotFoundMarkers replaces the phrases that identify missing pages.
func WithNotFoundMarkers(markers ...string) Option {
	return func(s *Session) {
		s.markers = markers
	}
}

// NewSession creates a Session for the wiki rooted at baseURL.
func NewSession(baseURL string, opts ...Option) (*Session, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, wikidoc.Errorf(wikidoc.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, wikidoc.Errorf(wikidoc.EINVALID, "base URL %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	s := &Session{
		base:     base,
		username: DefaultUsername,
		entry:    wikidoc.EntryPageID,
		markers:  DefaultNotFoundMarkers,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Jar:     jar,
		Timeout: s.timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return s, nil
}

// Login posts the DokuWiki login form. The wiki answers a successful login
// with a redirect that sets the session cookie.
func (s *Session) Login(ctx context.Context, password string) error {
	form := url.Values{
		"sectok": {""},
		"id":     {s.entry},
		"do":     {"login"},
		"u":      {s.username},
		"p":      {password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.pageURL(url.Values{"id": {s.entry}}), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if !isRedirect(resp.StatusCode) {
		return wikidoc.Errorf(wikidoc.EUNAUTHORIZED, "login as %q failed: HTTP %d", s.username, resp.StatusCode)
	}
	if len(resp.Header.Values("Set-Cookie")) == 0 {
		return wikidoc.Errorf(wikidoc.EUNAUTHORIZED, "login as %q failed: no session cookie", s.username)
	}

	return nil
}

// Fetch retrieves the XHTML export of a page.
func (s *Session) Fetch(ctx context.Context, id string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.pageURL(url.Values{
		"id": {id},
		"do": {"export_xhtml"},
	}), nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	content := string(body)

	for _, marker := range s.markers {
		if marker != "" && strings.Contains(content, marker) {
			return "", wikidoc.Errorf(wikidoc.ENOTFOUND, "page %q does not exist", id)
		}
	}

	if resp.StatusCode != http.StatusOK {
		return "", wikidoc.Errorf(wikidoc.EPROTOCOL, "HTTP %d for page %q", resp.StatusCode, id)
	}

	return content, nil
}

func (s *Session) pageURL(query url.Values) string {
	u := s.base.ResolveReference(&url.URL{Path: "doku.php"})
	u.RawQuery = query.Encode()
	return u.String()
}

func isRedirect(status int) bool {
	return status >= 300 && status < 400
}
