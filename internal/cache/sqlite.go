// ABOUTME: SQLite-backed cache store so payloads survive process restarts
// ABOUTME: Handles connection setup, XDG data paths, schema, and upserts

package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harper/matchday/internal/models"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists cache entries in a single table keyed by source.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the cache database at dbPath.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	// One connection serializes writers and keeps pragmas in effect.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// DefaultPath returns the cache database location under the XDG data dir.
func DefaultPath() string {
	return filepath.Join(dataDir(), "matchday", "cache.db")
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS cache_entries (
		source_key TEXT PRIMARY KEY,
		fetched_at INTEGER NOT NULL,
		payload BLOB NOT NULL,
		ttl_ms INTEGER NOT NULL,
		etag TEXT NOT NULL DEFAULT '',
		last_modified TEXT NOT NULL DEFAULT ''
	);`)
	return err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (*models.CacheEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT source_key, fetched_at, payload, ttl_ms, etag, last_modified
		FROM cache_entries WHERE source_key = ?`, key)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}
	return entry, nil
}

func (s *SQLiteStore) Put(ctx context.Context, entry *models.CacheEntry) error {
	if entry == nil || entry.SourceKey == "" {
		return errors.New("cache entry requires a source key")
	}
	payload := entry.Payload
	if payload == nil {
		payload = []byte{}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (source_key, fetched_at, payload, ttl_ms, etag, last_modified)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_key) DO UPDATE SET
			fetched_at = excluded.fetched_at,
			payload = excluded.payload,
			ttl_ms = excluded.ttl_ms,
			etag = excluded.etag,
			last_modified = excluded.last_modified`,
		entry.SourceKey, entry.FetchedAt.UnixMilli(), payload,
		entry.TTL.Milliseconds(), entry.ETag, entry.LastModified,
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", entry.SourceKey, err)
	}
	return nil
}

// List returns every entry ordered by source key.
func (s *SQLiteStore) List(ctx context.Context) ([]*models.CacheEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_key, fetched_at, payload, ttl_ms, etag, last_modified
		FROM cache_entries ORDER BY source_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.CacheEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cache entries: %w", err)
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*models.CacheEntry, error) {
	var (
		entry     models.CacheEntry
		fetchedAt int64
		ttlMs     int64
	)
	if err := row.Scan(&entry.SourceKey, &fetchedAt, &entry.Payload, &ttlMs, &entry.ETag, &entry.LastModified); err != nil {
		return nil, err
	}
	entry.FetchedAt = time.UnixMilli(fetchedAt)
	entry.TTL = time.Duration(ttlMs) * time.Millisecond
	return &entry, nil
}
