package wikidoc

import "strings"

// EntryPageID is the wiki page every crawl starts from. It is fetched to
// discover the initial links but never written to the corpus.
const EntryPageID = "start"

// Document represents a wiki page converted to Markdown.
type Document struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"` // Markdown

	// Links holds the page identifiers referenced by the page, in document order.
	Links []string `json:"-"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	return nil
}

// NewDocument builds a Document from converted Markdown, deriving its title.
func NewDocument(id, content string, links []string) *Document {
	return &Document{
		ID:      id,
		Title:   DeriveTitle(content),
		Content: content,
		Links:   links,
	}
}

// Category returns the namespace of a page identifier: everything before the
// first colon. Identifiers without a namespace are their own category.
func Category(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[:i]
	}
	return id
}

var fileNameReplacer = strings.NewReplacer(":", "_", "/", "_")

// FileName returns the corpus file name for a page identifier.
// Example: wiki:syntax/tables → wiki_syntax_tables.md
func FileName(id string) string {
	return fileNameReplacer.Replace(id) + ".md"
}

// SummaryPrefix starts the name of every category summary file.
const SummaryPrefix = "summary"

// SummaryFileName returns the corpus file name for a category summary.
func SummaryFileName(category string) string {
	return SummaryPrefix + "_" + fileNameReplacer.Replace(category) + ".md"
}

// DeriveTitle returns the first line of content with leading heading markers
// and surrounding whitespace removed. Single-line content is its own title.
func DeriveTitle(content string) string {
	line := content
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		line = content[:i]
	}
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
}
