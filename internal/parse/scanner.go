// ABOUTME: Tolerant block scanner for feeds too broken for a real XML parser
// ABOUTME: Extracts <item>/<entry> blocks with bounded size and probes fields by fallback order

package parse

import (
	"regexp"
	"strings"

	"github.com/harper/matchday/internal/models"
	"github.com/harper/matchday/internal/timeutil"
)

// maxBlockBytes bounds one item block; longer blocks are skipped.
const maxBlockBytes = 64 * 1024

var (
	blockOpen    = regexp.MustCompile(`(?i)<(item|entry)[\s>]`)
	hrefAttr     = regexp.MustCompile(`(?is)<link\b[^>]*?\bhref\s*=\s*["']([^"']+)["']`)
	enclosureURL = regexp.MustCompile(`(?is)<enclosure\b[^>]*?\burl\s*=\s*["']([^"']+)["']`)
	mediaURL     = regexp.MustCompile(`(?is)<media:(?:content|thumbnail)\b[^>]*?\burl\s*=\s*["']([^"']+)["']`)

	blockClose = map[string]*regexp.Regexp{
		"item":  regexp.MustCompile(`(?i)</item\s*>`),
		"entry": regexp.MustCompile(`(?i)</entry\s*>`),
	}

	fieldPatterns = map[string]*regexp.Regexp{}
)

func init() {
	for _, name := range []string{
		"title", "link", "guid", "id",
		"pubDate", "dc:date", "published", "updated",
		"description", "content:encoded", "content", "summary",
	} {
		fieldPatterns[name] = regexp.MustCompile(`(?is)<` + regexp.QuoteMeta(name) + `(?:\s[^>]*)?>(.*?)</` + regexp.QuoteMeta(name) + `\s*>`)
	}
}

// scanFeed walks item blocks in document order. It returns the articles and
// how many blocks it found, so callers can tell "no items" from "not a feed".
func scanFeed(data []byte, label string) ([]models.Article, int) {
	doc := string(data)
	articles := []models.Article{}
	blocks := 0

	pos := 0
	for pos < len(doc) {
		loc := blockOpen.FindStringSubmatchIndex(doc[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		tag := strings.ToLower(doc[pos+loc[2] : pos+loc[3]])

		closeLoc := blockClose[tag].FindStringIndex(doc[start:])
		if closeLoc == nil {
			break
		}
		end := start + closeLoc[0]

		pos = start + closeLoc[1]
		if end-start > maxBlockBytes {
			continue
		}
		blocks++

		if a, ok := scanBlock(doc[start:end], label); ok {
			articles = append(articles, a)
		}
	}

	return articles, blocks
}

func scanBlock(block, label string) (models.Article, bool) {
	title := field(block, "title")

	link := field(block, "link")
	if link == "" {
		if m := hrefAttr.FindStringSubmatch(block); m != nil {
			link = strings.TrimSpace(unescape(m[1]))
		}
	}
	if link == "" {
		if guid := field(block, "guid"); isURL(guid) {
			link = guid
		} else if id := field(block, "id"); isURL(id) {
			link = id
		}
	}

	if title == "" && link == "" {
		return models.Article{}, false
	}

	a := models.Article{
		Title:       title,
		Link:        link,
		SourceLabel: label,
		IsExternal:  true,
		PublishedAt: timeutil.ParsePtr(firstField(block, "pubDate", "dc:date", "published", "updated")),
		Snippet:     snippet(firstField(block, "description", "content:encoded", "content", "summary")),
	}

	for _, re := range []*regexp.Regexp{enclosureURL, mediaURL} {
		if m := re.FindStringSubmatch(block); m != nil {
			a.Thumbnail = strings.TrimSpace(unescape(m[1]))
			break
		}
	}

	return a, true
}

// field returns the raw inner text of the first <name> element, CDATA unwrapped.
func field(block, name string) string {
	m := fieldPatterns[name].FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return stripCDATA(m[1])
}

func firstField(block string, names ...string) string {
	for _, name := range names {
		if v := field(block, name); v != "" {
			return v
		}
	}
	return ""
}
