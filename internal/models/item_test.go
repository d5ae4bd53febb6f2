// ABOUTME: Tests for item ID derivation and source descriptor helpers
// ABOUTME: Ensures IDs are stable, link-first, and bounded on title length

package models

import (
	"strings"
	"testing"
	"time"
)

func TestDeriveID_LinkWins(t *testing.T) {
	a := DeriveID("https://x/a", "Title One")
	b := DeriveID("https://x/a", "TITLE ONE")

	if a == "" {
		t.Fatal("expected non-empty ID for link")
	}
	if a != b {
		t.Errorf("expected same ID for same link, got %q and %q", a, b)
	}
}

func TestDeriveID_TitleFallback(t *testing.T) {
	id := DeriveID("", "Derby Day Preview")
	if id == "" {
		t.Fatal("expected title-derived ID")
	}
	if id == DeriveID("", "Derby Day Review") {
		t.Error("expected different titles to produce different IDs")
	}
	if id != DeriveID("  ", "  Derby Day Preview ") {
		t.Error("expected surrounding whitespace to be ignored")
	}
}

func TestDeriveID_TitleTruncated(t *testing.T) {
	base := strings.Repeat("a", MaxIDTitleRunes)
	if DeriveID("", base+"xyz") != DeriveID("", base+"zzz") {
		t.Error("expected titles sharing the first MaxIDTitleRunes runes to share an ID")
	}
}

func TestDeriveID_LinkAndTitleNamespacesDiffer(t *testing.T) {
	if DeriveID("https://x/a", "") == DeriveID("", "https://x/a") {
		t.Error("expected link and title namespaces to differ")
	}
}

func TestDeriveID_Empty(t *testing.T) {
	if id := DeriveID("", "   "); id != "" {
		t.Errorf("expected empty ID, got %q", id)
	}
}

func TestSourceDescriptor_Yields(t *testing.T) {
	tests := []struct {
		name string
		desc SourceDescriptor
		want ContentKind
	}{
		{"rss", SourceDescriptor{Kind: KindRSS, Content: ContentEvents}, ContentArticles},
		{"scoreboard", SourceDescriptor{Kind: KindScoreboard}, ContentEvents},
		{"store default", SourceDescriptor{Kind: KindStore}, ContentArticles},
		{"store events", SourceDescriptor{Kind: KindStore, Content: ContentEvents}, ContentEvents},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.desc.Yields(); got != tt.want {
				t.Errorf("Yields() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSourceDescriptor_Durations(t *testing.T) {
	d := SourceDescriptor{FreshnessSeconds: 600, FetchTimeoutMs: 2500}
	if d.Freshness() != 10*time.Minute {
		t.Errorf("Freshness() = %v, want 10m", d.Freshness())
	}
	if d.Timeout() != 2500*time.Millisecond {
		t.Errorf("Timeout() = %v, want 2.5s", d.Timeout())
	}
	if (SourceDescriptor{}).Timeout() != 0 {
		t.Error("expected zero timeout when unset")
	}
}

func TestSourceDescriptor_Key(t *testing.T) {
	a := SourceDescriptor{Kind: KindRSS, Endpoint: "https://x/feed", Label: "A"}
	b := SourceDescriptor{Kind: KindRSS, Endpoint: "https://x/feed", Label: "B"}
	if a.Key() != b.Key() {
		t.Error("expected key to depend on kind and endpoint only")
	}
	if !a.IsExternal() {
		t.Error("expected rss source to be external")
	}
	if (SourceDescriptor{Kind: KindStore}).IsExternal() {
		t.Error("expected store source to be internal")
	}
}

func TestCacheEntry_Expired(t *testing.T) {
	entry := NewCacheEntry("rss:https://x/feed", []byte("<rss/>"), time.Minute)

	if entry.Expired(entry.FetchedAt.Add(30 * time.Second)) {
		t.Error("expected entry to be fresh within TTL")
	}
	if !entry.Expired(entry.FetchedAt.Add(time.Minute)) {
		t.Error("expected entry to expire once TTL elapses")
	}
}

func TestCacheEntry_SetCacheHeaders(t *testing.T) {
	entry := NewCacheEntry("k", nil, time.Minute)
	entry.SetCacheHeaders(`"abc123"`, "Mon, 02 Jan 2006 15:04:05 GMT")
	entry.SetCacheHeaders("", "")

	if entry.ETag != `"abc123"` {
		t.Errorf("expected ETag to be kept, got %q", entry.ETag)
	}
	if entry.LastModified != "Mon, 02 Jan 2006 15:04:05 GMT" {
		t.Errorf("expected LastModified to be kept, got %q", entry.LastModified)
	}
}

func TestCacheEntry_Revalidated(t *testing.T) {
	entry := NewCacheEntry("k", []byte("payload"), time.Minute)
	later := entry.FetchedAt.Add(time.Hour)

	next := entry.Revalidated(later)
	if !next.FetchedAt.Equal(later) {
		t.Errorf("expected FetchedAt %v, got %v", later, next.FetchedAt)
	}
	if string(next.Payload) != "payload" {
		t.Error("expected payload to carry over")
	}
	if entry.FetchedAt.Equal(later) {
		t.Error("expected original entry to be untouched")
	}
}

func TestPageUses(t *testing.T) {
	feed := SourceDescriptor{Kind: KindRSS, Label: "News"}
	blog := SourceDescriptor{Kind: KindStore, Label: "Blog", Content: ContentArticles}
	scores := SourceDescriptor{Kind: KindScoreboard, Label: "Scores"}

	all := Page{Name: "home", Content: ContentArticles}
	if !all.Uses(feed) || !all.Uses(blog) || all.Uses(scores) {
		t.Error("page without source list should use every article source")
	}

	blogOnly := Page{Name: "blog", Content: ContentArticles, Sources: []string{"Blog"}}
	if blogOnly.Uses(feed) || !blogOnly.Uses(blog) {
		t.Error("page with source list should only use listed sources")
	}

	wrongKind := Page{Name: "events", Content: ContentEvents, Sources: []string{"Blog"}}
	if wrongKind.Uses(blog) {
		t.Error("listed source yielding the wrong content must be ignored")
	}
}
