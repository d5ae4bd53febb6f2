// ABOUTME: Test suite for syndication feed parsing
// ABOUTME: Validates RSS 2.0 and Atom parsing plus the tolerant scanner on broken feeds

package parse

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

const rss20XML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Test RSS Feed</title>
    <link>https://example.com</link>
    <description>A test RSS feed</description>
    <item>
      <guid>https://example.com/post/1</guid>
      <title>First Post</title>
      <link>https://example.com/post/1</link>
      <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
      <description>&lt;p&gt;First post &lt;b&gt;description&lt;/b&gt;&lt;/p&gt;</description>
      <enclosure url="https://example.com/post/1.jpg" type="image/jpeg" length="100"/>
    </item>
    <item>
      <title>Second Post</title>
      <link>https://example.com/post/2</link>
      <description>Second post description</description>
      <media:thumbnail url="https://example.com/post/2.png"/>
    </item>
    <item>
      <description>No title and no link</description>
    </item>
  </channel>
</rss>`

const atomXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <link href="https://example.com"/>
  <updated>2006-01-02T15:04:05Z</updated>
  <entry>
    <id>https://example.com/entry/1</id>
    <title>First Entry</title>
    <link href="https://example.com/entry/1"/>
    <published>2006-01-02T15:04:05Z</published>
    <updated>2006-01-02T16:04:05Z</updated>
    <content type="html">First entry content</content>
    <summary>First entry summary</summary>
  </entry>
  <entry>
    <id>https://example.com/entry/2</id>
    <title>Second Entry</title>
    <link href="https://example.com/entry/2"/>
    <updated>2006-01-03T15:04:05Z</updated>
    <content type="html">Second entry content</content>
  </entry>
</feed>`

// brokenXML has an unescaped ampersand and an unclosed channel.
const brokenXML = `<rss><channel>
<item><title>Broken & Bold</title><link>https://x/1</link>
<pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
<description><![CDATA[<p>Hello <b>world</b></p>]]></description>
<enclosure url="https://x/1.jpg" type="image/jpeg"/></item>
<item><guid>https://x/2</guid><dc:date>2006-01-03T10:00:00Z</dc:date><content:encoded>Body</content:encoded></item>
<ITEM><description>orphan</description></ITEM>
<entry><title>Atom style</title><link rel="alternate" href="https://x/3"/><updated>2006-01-04T00:00:00Z</updated><summary>S</summary></entry>`

func TestFeed_RSS(t *testing.T) {
	articles := Feed([]byte(rss20XML), "Example")

	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}

	a1 := articles[0]
	if a1.Title != "First Post" || a1.Link != "https://example.com/post/1" {
		t.Errorf("first article = %q %q", a1.Title, a1.Link)
	}
	if a1.SourceLabel != "Example" || !a1.IsExternal {
		t.Errorf("provenance not set: %q external=%v", a1.SourceLabel, a1.IsExternal)
	}
	if a1.PublishedAt == nil {
		t.Error("a1.PublishedAt is nil, want non-nil")
	} else if want := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC); !a1.PublishedAt.Equal(want) {
		t.Errorf("a1.PublishedAt = %v, want %v", a1.PublishedAt, want)
	}
	if a1.Snippet != "First post description" {
		t.Errorf("a1.Snippet = %q, want tags stripped", a1.Snippet)
	}
	if a1.Thumbnail != "https://example.com/post/1.jpg" {
		t.Errorf("a1.Thumbnail = %q", a1.Thumbnail)
	}

	a2 := articles[1]
	if a2.PublishedAt != nil {
		t.Errorf("a2.PublishedAt = %v, want nil", a2.PublishedAt)
	}
	if a2.Thumbnail != "https://example.com/post/2.png" {
		t.Errorf("a2.Thumbnail = %q, want media thumbnail", a2.Thumbnail)
	}
}

func TestFeed_Atom(t *testing.T) {
	articles := Feed([]byte(atomXML), "Atom")

	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}

	a1 := articles[0]
	if a1.Link != "https://example.com/entry/1" {
		t.Errorf("a1.Link = %q", a1.Link)
	}
	if a1.Snippet != "First entry summary" {
		t.Errorf("a1.Snippet = %q, want summary", a1.Snippet)
	}

	// No published date, should use updated; no summary, should use content
	a2 := articles[1]
	if a2.PublishedAt == nil {
		t.Fatal("a2.PublishedAt is nil, want updated fallback")
	}
	if want := time.Date(2006, 1, 3, 15, 4, 5, 0, time.UTC); !a2.PublishedAt.Equal(want) {
		t.Errorf("a2.PublishedAt = %v, want %v", a2.PublishedAt, want)
	}
	if a2.Snippet != "Second entry content" {
		t.Errorf("a2.Snippet = %q, want content fallback", a2.Snippet)
	}
}

func TestScanFeed_Broken(t *testing.T) {
	articles, blocks := scanFeed([]byte(brokenXML), "Broken")

	if blocks != 4 {
		t.Errorf("blocks = %d, want 4", blocks)
	}
	if len(articles) != 3 {
		t.Fatalf("len(articles) = %d, want 3", len(articles))
	}

	a1 := articles[0]
	if a1.Title != "Broken & Bold" || a1.Link != "https://x/1" {
		t.Errorf("a1 = %q %q", a1.Title, a1.Link)
	}
	if a1.Snippet != "Hello world" {
		t.Errorf("a1.Snippet = %q", a1.Snippet)
	}
	if a1.Thumbnail != "https://x/1.jpg" {
		t.Errorf("a1.Thumbnail = %q", a1.Thumbnail)
	}
	if a1.PublishedAt == nil || !a1.PublishedAt.Equal(time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)) {
		t.Errorf("a1.PublishedAt = %v", a1.PublishedAt)
	}

	a2 := articles[1]
	if a2.Link != "https://x/2" || a2.Title != "" {
		t.Errorf("a2 should fall back to guid link, got %q %q", a2.Title, a2.Link)
	}
	if a2.PublishedAt == nil || a2.PublishedAt.Day() != 3 {
		t.Errorf("a2.PublishedAt = %v, want dc:date", a2.PublishedAt)
	}
	if a2.Snippet != "Body" {
		t.Errorf("a2.Snippet = %q, want content:encoded", a2.Snippet)
	}

	a3 := articles[2]
	if a3.Link != "https://x/3" || a3.Snippet != "S" {
		t.Errorf("atom block = %q %q", a3.Link, a3.Snippet)
	}
}

func TestFeed_BrokenStillYieldsItems(t *testing.T) {
	articles := Feed([]byte(brokenXML), "Broken")
	if len(articles) == 0 {
		t.Fatal("expected best-effort items from broken feed")
	}
	if !strings.Contains(articles[0].Title, "Broken") {
		t.Errorf("first title = %q", articles[0].Title)
	}
}

func TestScanFeed_SkipsOversizedBlock(t *testing.T) {
	huge := "<item><title>Huge</title><description>" + strings.Repeat("x", maxBlockBytes) + "</description></item>"
	doc := "<rss>" + huge + "<item><title>Small</title><link>https://x/s</link></item></rss>"

	articles, blocks := scanFeed([]byte(doc), "L")
	if blocks != 1 || len(articles) != 1 || articles[0].Title != "Small" {
		t.Errorf("blocks=%d articles=%+v", blocks, articles)
	}
}

func TestFeed_SnippetTruncated(t *testing.T) {
	doc := `<rss version="2.0"><channel><title>T</title><item><title>Long</title><link>https://x/l</link><description>` +
		strings.Repeat("word ", 200) + `</description></item></channel></rss>`

	articles := Feed([]byte(doc), "L")
	if len(articles) != 1 {
		t.Fatalf("len(articles) = %d", len(articles))
	}
	if n := utf8.RuneCountInString(articles[0].Snippet); n > SnippetRunes+1 {
		t.Errorf("snippet has %d runes, want at most %d", n, SnippetRunes+1)
	}
	if !strings.HasSuffix(articles[0].Snippet, "…") {
		t.Errorf("truncated snippet should end with ellipsis: %q", articles[0].Snippet)
	}
}

func TestDecodeFeed_Malformed(t *testing.T) {
	for _, in := range []string{"not xml at all", "<html><body>nope</body></html>"} {
		articles, err := DecodeFeed([]byte(in), "Bad")
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("DecodeFeed(%q) err = %v, want ErrMalformed", in, err)
		}
		if articles == nil || len(articles) != 0 {
			t.Errorf("DecodeFeed(%q) = %v, want empty non-nil slice", in, articles)
		}
	}
}

func TestDecodeFeed_Empty(t *testing.T) {
	articles, err := DecodeFeed(nil, "Empty")
	if err != nil || articles == nil || len(articles) != 0 {
		t.Errorf("DecodeFeed(nil) = %v, %v", articles, err)
	}
}
