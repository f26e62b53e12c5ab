package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML extracts the visible text of an HTML fragment or page.
// Scripts and styles are dropped and whitespace runs collapse to one space.
func StripHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}
