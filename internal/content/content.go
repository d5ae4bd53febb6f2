// ABOUTME: Markup detection and terminal rendering helpers for sanitized snippets
// ABOUTME: Detects HTML and converts snippets to Markdown for CLI display

package content

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// htmlTagPattern matches the tags upstream feeds and store rows actually send
var htmlTagPattern = regexp.MustCompile(`(?i)<\s*/?\s*(p|div|span|a|br|img|h[1-6]|ul|ol|li|table|tr|td|th|strong|em|b|i|code|pre|blockquote|script|style|figure|figcaption|iframe|section|article|small|hr)\b[^>]*>`)

// IsHTML checks if content appears to be HTML
func IsHTML(content string) bool {
	if strings.Contains(content, "<!DOCTYPE") || strings.Contains(content, "<html") {
		return true
	}
	return htmlTagPattern.MatchString(content)
}

// ToMarkdown converts an HTML snippet to Markdown.
// Content that doesn't look like HTML is returned unchanged.
func ToMarkdown(content string) string {
	if content == "" || !IsHTML(content) {
		return content
	}

	markdown, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		return content
	}

	return strings.TrimSpace(markdown)
}
