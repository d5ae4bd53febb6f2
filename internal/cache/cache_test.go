// ABOUTME: Tests for the in-memory and SQLite cache stores
// ABOUTME: Verifies misses, wholesale replacement, listing, and persistence across reopen

package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/matchday/internal/models"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStoreMiss(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(context.Background(), "rss:https://example.com/feed")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStorePutReplacesWholeEntry(t *testing.T) {
	ctx := context.Background()
	fetched := time.UnixMilli(time.Now().UnixMilli())

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			first := &models.CacheEntry{
				SourceKey:    "rss:https://example.com/feed",
				FetchedAt:    fetched,
				Payload:      []byte("<rss>one</rss>"),
				TTL:          time.Hour,
				ETag:         `"v1"`,
				LastModified: "Mon, 01 Jan 2024 00:00:00 GMT",
			}
			if err := store.Put(ctx, first); err != nil {
				t.Fatalf("Put failed: %v", err)
			}

			second := &models.CacheEntry{
				SourceKey: first.SourceKey,
				FetchedAt: fetched.Add(time.Minute),
				Payload:   []byte("<rss>two</rss>"),
				TTL:       10 * time.Minute,
			}
			if err := store.Put(ctx, second); err != nil {
				t.Fatalf("Put failed: %v", err)
			}

			got, err := store.Get(ctx, first.SourceKey)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if string(got.Payload) != "<rss>two</rss>" {
				t.Errorf("payload = %q, want second payload", got.Payload)
			}
			if got.ETag != "" || got.LastModified != "" {
				t.Errorf("validators should be replaced too, got %q / %q", got.ETag, got.LastModified)
			}
			if got.TTL != 10*time.Minute {
				t.Errorf("TTL = %v, want 10m", got.TTL)
			}
			if !got.FetchedAt.Equal(second.FetchedAt) {
				t.Errorf("FetchedAt = %v, want %v", got.FetchedAt, second.FetchedAt)
			}
		})
	}
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Put(context.Background(), &models.CacheEntry{}); err == nil {
				t.Error("expected error for empty source key")
			}
		})
	}
}

func TestStoreList(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"store:b", "rss:a", "scoreboard:c"} {
				if err := store.Put(ctx, models.NewCacheEntry(key, []byte("x"), time.Minute)); err != nil {
					t.Fatalf("Put failed: %v", err)
				}
			}

			entries, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(entries) != 3 {
				t.Fatalf("expected 3 entries, got %d", len(entries))
			}
			if entries[0].SourceKey != "rss:a" || entries[2].SourceKey != "store:b" {
				t.Errorf("entries not ordered by key: %s, %s, %s",
					entries[0].SourceKey, entries[1].SourceKey, entries[2].SourceKey)
			}
		})
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Put(ctx, models.NewCacheEntry("rss:a", []byte("x"), time.Minute))

	got, _ := store.Get(ctx, "rss:a")
	got.ETag = "mutated"

	again, _ := store.Get(ctx, "rss:a")
	if again.ETag != "" {
		t.Error("mutating a returned entry changed the stored entry")
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "cache.db")

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := store.Put(ctx, models.NewCacheEntry("scoreboard:x", []byte(`{"events":[]}`), time.Minute)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	_ = store.Close()

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "scoreboard:x")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(got.Payload) != `{"events":[]}` {
		t.Errorf("payload = %q", got.Payload)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	if got := DefaultPath(); got != "/tmp/xdg-data/matchday/cache.db" {
		t.Errorf("DefaultPath() = %s", got)
	}
}
