// Package htmltomarkdown converts sanitized wiki pages to Markdown using
// github.com/JohannesKaufmann/html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/wikidoc"
)

// Ensure Converter implements wikidoc.Converter at compile time.
var _ wikidoc.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown. A panic inside the
// conversion library is reported as EINTERNAL so one bad page cannot stop
// a crawl.
func (c *Converter) Convert(html string) (md string, err error) {
	if strings.TrimSpace(html) == "" {
		return "", wikidoc.Errorf(wikidoc.EINVALID, "empty HTML input")
	}

	defer func() {
		if r := recover(); r != nil {
			md, err = "", wikidoc.Errorf(wikidoc.EINTERNAL, "markdown conversion panicked: %v", r)
		}
	}()

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", wikidoc.Errorf(wikidoc.EINTERNAL, "markdown conversion failed: %v", err)
	}

	return result, nil
}
