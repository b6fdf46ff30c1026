package render

import (
	"bytes"
	"html"
	"html/template"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

var paragraphRe = regexp.MustCompile(`(?s)^<p>(.*)</p>\n?$`)

// Suggestion is one numbered title ready for the page.
type Suggestion struct {
	Index int
	HTML  template.HTML
}

// Suggestions numbers titles from 1 in display order.
func Suggestions(titles []string) []Suggestion {
	out := make([]Suggestion, 0, len(titles))
	for i, t := range titles {
		out = append(out, Suggestion{Index: i + 1, HTML: Title(t)})
	}
	return out
}

// Title renders inline Markdown such as **bold** or *italics*. Anything goldmark
// turns into more than one plain paragraph (a list, a heading, raw HTML) is shown
// as escaped text instead.
func Title(s string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(s), &buf); err != nil {
		return escaped(s)
	}
	m := paragraphRe.FindStringSubmatch(buf.String())
	if m == nil || strings.Contains(m[1], "<p>") || strings.Contains(m[1], "raw HTML omitted") {
		return escaped(s)
	}
	return template.HTML(strings.TrimSpace(m[1]))
}

func escaped(s string) template.HTML {
	return template.HTML(html.EscapeString(s))
}
