// Package goquery sanitizes DokuWiki page exports using goquery and
// golang.org/x/net/html.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikidoc"
	"golang.org/x/net/html"
)

// DefaultLinkPrefix marks hrefs that point at other wiki pages.
const DefaultLinkPrefix = "/doku.php?id="

// DefaultTOCID is the id of the generated table of contents.
const DefaultTOCID = "dw__toc"

// Ensure Sanitizer implements wikidoc.Sanitizer at compile time.
var _ wikidoc.Sanitizer = (*Sanitizer)(nil)

// Sanitizer strips non-content nodes from a page export, flattens div
// wrappers and collects internal links.
type Sanitizer struct {
	// LinkPrefix is the href prefix of internal links.
	LinkPrefix string

	// TOCID is the id of the table of contents element to remove.
	TOCID string
}

// NewSanitizer creates a Sanitizer for DokuWiki exports.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		LinkPrefix: DefaultLinkPrefix,
		TOCID:      DefaultTOCID,
	}
}

// Sanitize cleans the page and extracts its links. The steps run in a fixed
// order: later steps rely on the cleanup done by earlier ones.
func (s *Sanitizer) Sanitize(raw string) (*wikidoc.SanitizeResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, wikidoc.Errorf(wikidoc.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("head").Remove()
	if s.TOCID != "" {
		doc.Find("#" + s.TOCID).First().Remove()
	}
	for _, root := range doc.Nodes {
		removeComments(root)
	}
	doc.Find("*").RemoveAttr("class").RemoveAttr("id")

	links := s.extractLinks(doc)

	for {
		divs := doc.Find("div")
		if divs.Length() == 0 {
			break
		}
		for _, n := range divs.Nodes {
			unwrap(n)
		}
	}

	out, err := doc.Html()
	if err != nil {
		return nil, wikidoc.Errorf(wikidoc.EINTERNAL, "failed to render HTML: %v", err)
	}

	return &wikidoc.SanitizeResult{
		HTML:  out,
		Links: links,
	}, nil
}

// extractLinks returns the page identifiers of internal anchors in document
// order. The fragment is cut before the query so that "id=a#b&c" yields "a".
func (s *Sanitizer) extractLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasPrefix(href, s.LinkPrefix) {
			return
		}
		if i := strings.IndexByte(href, '#'); i >= 0 {
			href = href[:i]
		}
		if i := strings.IndexByte(href, '&'); i >= 0 {
			href = href[:i]
		}
		if len(href) < len(s.LinkPrefix) {
			return
		}
		links = append(links, href[len(s.LinkPrefix):])
	})
	return links
}

func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}

// unwrap replaces n with its children.
func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = next
	}
	parent.RemoveChild(n)
}
