package generator

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTagRe = regexp.MustCompile(`(?i)^<(!doctype|html|head|body|article|section|main|div|p|br|h[1-6]|ul|ol|li|span|a|strong|em|b|i|blockquote|header|figure)[\s/>]`)

const (
	blockSelector     = "h1, h2, h3, h4, h5, h6, p, li"
	containerSelector = "html, body, main, article, section, header, footer, div, ul, ol, blockquote, figure, figcaption, table, tbody, thead, tr, td, th"
	droppedSelector   = "script, style, noscript, template, head"
)

// NormalizeArticle trims the pasted text and, when the whole paste is markup
// copied from a web page, reduces it to readable paragraphs. Text is never
// dropped: loose text nodes and inline elements become paragraphs of their own.
func NormalizeArticle(text string) string {
	text = strings.TrimSpace(text)
	if !htmlTagRe.MatchString(text) {
		return text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}

	w := &paragraphWriter{}
	w.walk(doc.Find("body"))
	w.flush()
	return strings.Join(w.paras, "\n\n")
}

// paragraphWriter accumulates inline text until a block boundary.
type paragraphWriter struct {
	paras  []string
	inline strings.Builder
}

func (w *paragraphWriter) walk(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		switch name := goquery.NodeName(s); {
		case name == "#text":
			w.inline.WriteString(s.Text())
		case name == "#comment", s.Is(droppedSelector):
		case name == "br":
			w.inline.WriteString(" ")
		case s.Is(blockSelector) && s.Find(blockSelector).Length() == 0:
			w.flush()
			w.add(s.Text())
		case s.Is(blockSelector), s.Is(containerSelector):
			w.flush()
			w.walk(s)
			w.flush()
		default:
			w.inline.WriteString(s.Text())
		}
	})
}

func (w *paragraphWriter) flush() {
	w.add(w.inline.String())
	w.inline.Reset()
}

func (w *paragraphWriter) add(s string) {
	if t := collapseSpace(s); t != "" {
		w.paras = append(w.paras, t)
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// excerpt shortens s for log lines.
func excerpt(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
