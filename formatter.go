package wikidoc

import "strings"

// FormatFacts joins the contents of search results into the fact block
// handed to the language model. Results are separated by blank lines.
func FormatFacts(results []*SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		if r == nil || r.Document == nil {
			continue
		}
		parts = append(parts, r.Document.Content)
	}

	return strings.Join(parts, "\n\n")
}
