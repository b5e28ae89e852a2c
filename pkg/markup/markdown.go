package markup

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderMarkdown converts GitHub flavoured Markdown to HTML sanitized with
// the Rich policy, so raw HTML in the source never reaches the output.
func RenderMarkdown(src string) (string, error) {
	if src == "" {
		return "", nil
	}
	var out bytes.Buffer
	if err := markdown.Convert([]byte(src), &out); err != nil {
		return "", fmt.Errorf("markup: render markdown: %w", err)
	}
	return Sanitize(Rich, out.String()), nil
}
