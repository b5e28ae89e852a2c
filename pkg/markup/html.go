package markup

import (
	"github.com/microcosm-cc/bluemonday"
)

// Policy selects how much markup survives sanitizing.
type Policy int

const (
	// PlainText removes every tag.
	PlainText Policy = iota
	// Basic keeps paragraphs, emphasis, lists, code and links.
	Basic
	// Rich additionally keeps headings, tables and images.
	Rich
)

var policies = map[Policy]*bluemonday.Policy{
	PlainText: bluemonday.StrictPolicy(),
	Basic:     basicPolicy(),
	Rich:      bluemonday.UGCPolicy(),
}

func basicPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements("p", "br", "strong", "b", "em", "i", "ul", "ol", "li", "code", "pre", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}

// Sanitize cleans s under p. Unknown policies strip everything.
func Sanitize(p Policy, s string) string {
	policy, ok := policies[p]
	if !ok {
		policy = policies[PlainText]
	}
	return policy.Sanitize(s)
}

// StripHTML returns the text content of s.
func StripHTML(s string) string {
	return Sanitize(PlainText, s)
}

// SanitizeHTML keeps basic formatting and drops scripts, event handlers
// and javascript: URLs.
func SanitizeHTML(s string) string {
	return Sanitize(Basic, s)
}
