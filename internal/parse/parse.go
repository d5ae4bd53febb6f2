// ABOUTME: Shared pieces of the source parsers: the malformed-payload sentinel and snippet limits
// ABOUTME: Every parser is total, returning a best-effort slice and never panicking

package parse

import (
	"errors"
	"strings"

	"github.com/harper/matchday/internal/content"
)

// SnippetRunes bounds snippet length after tag stripping.
const SnippetRunes = 300

// ErrMalformed reports a payload that could not be read in the expected format.
var ErrMalformed = errors.New("malformed payload")

// snippet reduces an HTML or text fragment to a bounded plain-text snippet.
// Feeds often entity-escape their markup, so escaped tags are decoded once first.
func snippet(raw string) string {
	raw = strings.TrimSpace(stripCDATA(raw))
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "<") && strings.Contains(raw, "&lt;") {
		raw = unescape(raw)
	}
	return content.Truncate(content.StripTags(raw), SnippetRunes)
}

func stripCDATA(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<![CDATA[") && strings.HasSuffix(s, "]]>") {
		return strings.TrimSpace(s[len("<![CDATA[") : len(s)-len("]]>")])
	}
	return s
}
