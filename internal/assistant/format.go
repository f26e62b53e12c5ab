package assistant

import (
	"html"
	"regexp"
	"strings"
)

var (
	listMarker    = regexp.MustCompile(`(?m)^[ \t]*[-*][ \t]+`)
	sectionHeader = regexp.MustCompile(`(\*\*[^*]+\*\*):`)
	boldSpan      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

// FormatAnswer normalizes bullet markers to "* " and starts a new line after
// each "**Header**:" so answers render consistently in chat clients.
func FormatAnswer(text string) string {
	text = listMarker.ReplaceAllString(strings.TrimSpace(text), "* ")
	return sectionHeader.ReplaceAllString(text, "$1:\n")
}

// AnswerHTML escapes an answer for an HTML parse-mode chat message and
// renders "**text**" spans as <b>text</b>.
func AnswerHTML(text string) string {
	return boldSpan.ReplaceAllString(html.EscapeString(text), "<b>$1</b>")
}
