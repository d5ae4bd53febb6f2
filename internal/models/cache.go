// ABOUTME: Cache entry model holding the last good payload fetched for a source
// ABOUTME: Tracks fetch time, TTL, and conditional request headers (ETag, Last-Modified)

package models

import "time"

// CacheEntry is the last successful payload for one source.
// Entries are replaced wholesale, never patched in place.
type CacheEntry struct {
	SourceKey    string
	FetchedAt    time.Time
	Payload      []byte
	TTL          time.Duration
	ETag         string
	LastModified string
}

// NewCacheEntry creates an entry stamped with the current time.
func NewCacheEntry(sourceKey string, payload []byte, ttl time.Duration) *CacheEntry {
	return &CacheEntry{
		SourceKey: sourceKey,
		FetchedAt: time.Now(),
		Payload:   payload,
		TTL:       ttl,
	}
}

// Expired reports whether the entry is past its freshness window at now.
func (e *CacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.FetchedAt.Add(e.TTL))
}

// SetCacheHeaders records the HTTP validators returned with the payload
func (e *CacheEntry) SetCacheHeaders(etag, lastModified string) {
	if etag != "" {
		e.ETag = etag
	}
	if lastModified != "" {
		e.LastModified = lastModified
	}
}

// Revalidated returns a copy of the entry re-stamped at fetchedAt, used after a 304.
func (e *CacheEntry) Revalidated(fetchedAt time.Time) *CacheEntry {
	next := *e
	next.FetchedAt = fetchedAt
	return &next
}
