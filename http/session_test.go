package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/wikidoc"
	wikihttp "github.com/fwojciec/wikidoc/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newWiki starts a fake DokuWiki that accepts exporter/secret and serves
// pages only to clients holding the session cookie.
func newWiki(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/doku.php" {
			http.NotFound(w, r)
			return
		}

		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if r.PostForm.Get("do") != "login" || r.PostForm.Get("u") != "exporter" || r.PostForm.Get("p") != "secret" {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("login form"))
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "DokuWiki", Value: "session-1", Path: "/"})
			http.Redirect(w, r, "/doku.php?id=start", http.StatusFound)
			return
		}

		if c, err := r.Cookie("DokuWiki"); err != nil || c.Value != "session-1" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if r.URL.Query().Get("do") != "export_xhtml" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		body, ok := pages[r.URL.Query().Get("id")]
		if !ok {
			_, _ = w.Write([]byte("<html><body><p>Dieses Thema existiert noch nicht</p></body></html>"))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestSession_Login(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on redirect with session cookie", func(t *testing.T) {
		t.Parallel()

		server := newWiki(t, nil)
		session, err := wikihttp.NewSession(server.URL)
		require.NoError(t, err)

		err = session.Login(context.Background(), "secret")

		require.NoError(t, err)
	})

	t.Run("returns EUNAUTHORIZED for wrong password", func(t *testing.T) {
		t.Parallel()

		server := newWiki(t, nil)
		session, err := wikihttp.NewSession(server.URL)
		require.NoError(t, err)

		err = session.Login(context.Background(), "wrong")

		require.Error(t, err)
		assert.Equal(t, wikidoc.EUNAUTHORIZED, wikidoc.ErrorCode(err))
	})

	t.Run("returns EUNAUTHORIZED for redirect without cookie", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/doku.php?id=start", http.StatusFound)
		}))
		defer server.Close()

		session, err := wikihttp.NewSession(server.URL)
		require.NoError(t, err)

		err = session.Login(context.Background(), "secret")

		assert.Equal(t, wikidoc.EUNAUTHORIZED, wikidoc.ErrorCode(err))
	})

	t.Run("posts login form for configured user and entry", func(t *testing.T) {
		t.Parallel()

		var got http.Header
		var query, user, id string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			query = r.URL.Query().Get("id")
			_ = r.ParseForm()
			user = r.PostForm.Get("u")
			id = r.PostForm.Get("id")
			http.SetCookie(w, &http.Cookie{Name: "DokuWiki", Value: "x"})
			w.WriteHeader(http.StatusSeeOther)
		}))
		defer server.Close()

		session, err := wikihttp.NewSession(server.URL,
			wikihttp.WithUsername("alice"),
			wikihttp.WithEntry("home"),
		)
		require.NoError(t, err)

		err = session.Login(context.Background(), "pw")

		require.NoError(t, err)
		assert.Equal(t, "application/x-www-form-urlencoded", got.Get("Content-Type"))
		assert.Equal(t, "home", query)
		assert.Equal(t, "home", id)
		assert.Equal(t, "alice", user)
	})

	t.Run("does not follow the redirect", func(t *testing.T) {
		t.Parallel()

		var gets atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				gets.Add(1)
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "DokuWiki", Value: "x"})
			http.Redirect(w, r, "/doku.php?id=start", http.StatusFound)
		}))
		defer server.Close()

		session, err := wikihttp.NewSession(server.URL)
		require.NoError(t, err)

		require.NoError(t, session.Login(context.Background(), "pw"))
		assert.Equal(t, int32(0), gets.Load())
	})
}

func TestSession_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns export after login", func(t *testing.T) {
		t.Parallel()

		server := newWiki(t, map[string]string{"foo:bar": "<html><body><p>Hello</p></body></html>"})
		session, err := wikihttp.NewSession(server.URL)
		require.NoError(t, err)
		require.NoError(t, session.Login(context.Background(), "secret"))

		html, err := session.Fetch(context.Background(), "foo:bar")

		require.NoError(t, err)
		assert.Equal(t, "<html><body><p>Hello</p></body></html>", html)
	})

	t.Run("returns EPROTOCOL without session cookie", func(t *testing.T) {
		t.Parallel()

		server := newWiki(t, map[string]string{"foo:bar": "<p>Hello</p>"})
		session, err := wikihttp.NewSession(server.URL)
		require.NoError(t, err)

		_, err = session.Fetch(context.Background(), "foo:bar")

		require.Error(t, err)
		assert.Equal(t, wikidoc.EPROTOCOL, wikidoc.ErrorCode(err))
		assert.Contains(t, wikidoc.ErrorMessage(err), "403")
	})

	t.Run("returns ENOTFOUND for missing page marker", func(t *testing.T) {
		t.Parallel()

		server := newWiki(t, nil)
		session, err := wikihttp.NewSession(server.URL)
		require.NoError(t, err)
		require.NoError(t, session.Login(context.Background(), "secret"))

		_, err = session.Fetch(context.Background(), "foo:missing")

		assert.Equal(t, wikidoc.ENOTFOUND, wikidoc.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for deleted page marker", func(t *testing.T) {
		t.Parallel()

		server := newWiki(t, map[string]string{"foo:old": "<p>Diese Seite existiert nicht mehr</p>"})
		session, err := wikihttp.NewSession(server.URL)
		require.NoError(t, err)
		require.NoError(t, session.Login(context.Background(), "secret"))

		_, err = session.Fetch(context.Background(), "foo:old")

		assert.Equal(t, wikidoc.ENOTFOUND, wikidoc.ErrorCode(err))
	})

	t.Run("uses custom not-found markers", func(t *testing.T) {
		t.Parallel()

		server := newWiki(t, map[string]string{"foo:bar": "<p>This topic does not exist yet</p>"})
		session, err := wikihttp.NewSession(server.URL, wikihttp.WithNotFoundMarkers("does not exist yet"))
		require.NoError(t, err)
		require.NoError(t, session.Login(context.Background(), "secret"))

		_, err = session.Fetch(context.Background(), "foo:bar")

		assert.Equal(t, wikidoc.ENOTFOUND, wikidoc.ErrorCode(err))
	})

	t.Run("resolves doku.php below base path", func(t *testing.T) {
		t.Parallel()

		var path string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		session, err := wikihttp.NewSession(server.URL + "/wiki")
		require.NoError(t, err)

		_, err = session.Fetch(context.Background(), "start")

		require.NoError(t, err)
		assert.Equal(t, "/wiki/doku.php", path)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		session, err := wikihttp.NewSession(server.URL, wikihttp.WithTimeout(10*time.Millisecond))
		require.NoError(t, err)

		_, err = session.Fetch(context.Background(), "start")

		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := newWiki(t, nil)
		session, err := wikihttp.NewSession(server.URL)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = session.Fetch(ctx, "start")

		require.Error(t, err)
	})
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	t.Run("rejects relative base URL", func(t *testing.T) {
		t.Parallel()

		_, err := wikihttp.NewSession("leowiki/")

		assert.Equal(t, wikidoc.EINVALID, wikidoc.ErrorCode(err))
	})

	t.Run("rejects unparsable base URL", func(t *testing.T) {
		t.Parallel()

		_, err := wikihttp.NewSession("http://[::1")

		assert.Equal(t, wikidoc.EINVALID, wikidoc.ErrorCode(err))
	})
}

// Compile-time verification that Session implements wikidoc.Session
var _ wikidoc.Session = (*wikihttp.Session)(nil)
