// ABOUTME: Test suite for OPML parsing and writing
// ABOUTME: Covers nested folders, title fallbacks, malformed input, and round-trips

package opml

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testOPML = `<?xml version="1.0" encoding="UTF-8"?>
<opml version="2.0">
  <head>
    <title>My Feeds</title>
  </head>
  <body>
    <outline text="Football">
      <outline type="rss" text="BBC Football" xmlUrl="https://feeds.bbci.co.uk/sport/football/rss.xml" />
      <outline type="rss" text="short" title="Guardian Football" xmlUrl="https://www.theguardian.com/football/rss" />
    </outline>
    <outline text="Basketball">
      <outline text="NBA">
        <outline type="rss" text="NBA News" xmlUrl="https://example.com/nba.xml" />
      </outline>
    </outline>
    <outline type="rss" text="No Folder Feed" xmlUrl="https://example.com/feed" />
    <outline text="Empty Folder" />
  </body>
</opml>`

func TestParse(t *testing.T) {
	feeds, err := Parse(strings.NewReader(testOPML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []Feed{
		{URL: "https://feeds.bbci.co.uk/sport/football/rss.xml", Title: "BBC Football", Folder: "Football"},
		{URL: "https://www.theguardian.com/football/rss", Title: "Guardian Football", Folder: "Football"},
		{URL: "https://example.com/nba.xml", Title: "NBA News", Folder: "NBA"},
		{URL: "https://example.com/feed", Title: "No Folder Feed", Folder: ""},
	}
	if len(feeds) != len(want) {
		t.Fatalf("Parse() returned %d feeds, want %d", len(feeds), len(want))
	}
	for i := range want {
		if feeds[i] != want[i] {
			t.Errorf("feed %d = %+v, want %+v", i, feeds[i], want[i])
		}
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse(strings.NewReader("<opml><body><outline")); err == nil {
		t.Error("expected error for malformed OPML")
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.opml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	feeds := []Feed{
		{URL: "https://example.com/a.xml", Title: "Feed A"},
		{URL: "https://example.com/b.xml?x=1&y=2", Title: "Feed <B>"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, "matchday sources", feeds); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<?xml") {
		t.Error("expected XML header")
	}
	if !strings.Contains(buf.String(), "<title>matchday sources</title>") {
		t.Error("expected document title")
	}

	path := filepath.Join(t.TempDir(), "out.opml")
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}
	parsed, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("round trip returned %d feeds, want 2", len(parsed))
	}
	for i := range feeds {
		if parsed[i].URL != feeds[i].URL || parsed[i].Title != feeds[i].Title {
			t.Errorf("feed %d = %+v, want %+v", i, parsed[i], feeds[i])
		}
	}
}
