package wikidoc

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms sanitized HTML into Markdown.
	Convert(html string) (string, error)
}
