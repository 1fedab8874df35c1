// ABOUTME: Markdown rendering helpers for UI frontends
// ABOUTME: Falls back to the raw text when conversion fails

package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

var (
	tagRe   = regexp.MustCompile(`<[^>]+>`)
	blankRe = regexp.MustCompile(`\n{3,}`)
)

// ToHTML converts markdown content to HTML. On conversion failure the
// input is returned unchanged, so callers always have something to show.
func ToHTML(content string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return buf.String()
}

// ToText renders markdown as plain terminal text: converted to HTML,
// tags stripped, entities unescaped, whitespace compacted. Used by the
// TUI, which has no HTML viewport. Falls back to the raw input on
// conversion failure.
func ToText(content string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return content
	}

	text := tagRe.ReplaceAllString(buf.String(), "")
	text = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	).Replace(text)
	text = blankRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
