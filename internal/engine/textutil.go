package engine

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// User-Agent strings used across HTTP clients.
const (
	UserAgentBot = "GoCaptions/1.0"
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// CleanHTML strips HTML tags and trims whitespace.
func CleanHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// CleanCaptionText turns raw timedtext character data into plain text.
// Tags are removed first, then entities are decoded, so "&lt;b&gt;" survives as "<b>".
func CleanCaptionText(s string) string {
	return html.UnescapeString(CleanHTML(s))
}
