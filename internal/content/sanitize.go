// ABOUTME: Sanitizes untrusted titles and snippets from upstream sources
// ABOUTME: Strips CDATA wrappers, decodes a fixed entity table, and removes script/style blocks

package content

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Ellipsis is appended by Truncate when text is cut.
const Ellipsis = "…"

var (
	cdataPattern      = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	paragraphBreak    = regexp.MustCompile(`\n[ \t]*\n\s*`)
)

// quoteChars are trimmed from both ends of a title.
const quoteChars = " \t\r\n\"'\u201c\u201d\u2018\u2019\u00a0"

// entityDecoder replaces the fixed entity table in one left-to-right pass.
// Entities outside the table pass through unchanged.
var entityDecoder = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&#039;", "'",
	"&apos;", "'",
	"&nbsp;", "\u00a0",
	"&#8216;", "‘",
	"&#8217;", "’",
	"&#8218;", "‚",
	"&#8220;", "“",
	"&#8221;", "”",
	"&#8211;", "–",
	"&#8212;", "—",
	"&#8230;", "…",
	"&hellip;", "…",
	"&ndash;", "–",
	"&mdash;", "—",
	"&lsquo;", "‘",
	"&rsquo;", "’",
	"&ldquo;", "“",
	"&rdquo;", "”",
)

// SanitizeTitle cleans a raw title for display.
// Every step only shortens the string, so repeating until nothing changes
// terminates and makes the result a fixed point.
func SanitizeTitle(raw string) string {
	out := raw
	for {
		next := sanitizeTitleOnce(out)
		if next == out {
			return out
		}
		out = next
	}
}

func sanitizeTitleOnce(s string) string {
	s = cdataPattern.ReplaceAllString(s, "$1")
	s = strings.TrimPrefix(strings.TrimSpace(s), "<![CDATA[")
	s = strings.TrimSuffix(s, "]]>")
	s = entityDecoder.Replace(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.Trim(s, quoteChars)
}

// SanitizeSnippet prepares a snippet for direct HTML rendering.
// Markup input keeps its markup minus script and style blocks.
// Plain text is escaped and wrapped in paragraphs, with single newlines as <br>.
func SanitizeSnippet(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if IsHTML(raw) {
		return strings.TrimSpace(stripScripts(raw))
	}
	return paragraphs(raw)
}

// stripScripts drops <script> and <style> elements with their contents.
// Unterminated blocks run to the end of input and are dropped too.
func stripScripts(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var buf bytes.Buffer
	skip := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return buf.String()
		}

		raw := append([]byte(nil), z.Raw()...)
		name, _ := z.TagName()
		tag := string(name)
		blocked := tag == "script" || tag == "style"

		switch {
		case tt == html.StartTagToken && blocked:
			skip++
			continue
		case tt == html.EndTagToken && blocked:
			if skip > 0 {
				skip--
			}
			continue
		case skip > 0:
			continue
		}

		buf.Write(raw)
	}
}

func paragraphs(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := paragraphBreak.Split(text, -1)

	var b strings.Builder
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		lines := strings.Split(p, "\n")
		for i, line := range lines {
			lines[i] = html.EscapeString(strings.TrimSpace(line))
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}

// StripTags returns the visible text of an HTML fragment with entities decoded
// and whitespace collapsed. Script and style contents are not visible text.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(whitespacePattern.ReplaceAllString(b.String(), " "))
		case html.StartTagToken, html.EndTagToken:
			name, _ := z.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				if tt == html.StartTagToken {
					skip++
				} else if skip > 0 {
					skip--
				}
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// Truncate cuts s to at most n runes, appending Ellipsis when it cuts.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:n]), " \t\n") + Ellipsis
}
