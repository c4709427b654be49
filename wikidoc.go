// Package wikidoc crawls a DokuWiki, normalizes its pages into a Markdown
// corpus on disk, indexes that corpus for semantic search, and answers
// natural language questions over it.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package wikidoc
