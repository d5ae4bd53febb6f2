// ABOUTME: Source descriptor model identifying one upstream content provider
// ABOUTME: Carries kind, endpoint, freshness window, and fetch timeout used by the fetcher

package models

import (
	"fmt"
	"time"
)

// SourceKind identifies the wire format a source speaks.
type SourceKind string

const (
	KindRSS        SourceKind = "rss"
	KindScoreboard SourceKind = "scoreboard"
	KindStore      SourceKind = "store"
)

// ContentKind identifies which canonical shape a source or page yields.
type ContentKind string

const (
	ContentArticles ContentKind = "articles"
	ContentEvents   ContentKind = "events"
)

// Valid reports whether k is a known source kind.
func (k SourceKind) Valid() bool {
	switch k {
	case KindRSS, KindScoreboard, KindStore:
		return true
	}
	return false
}

// Valid reports whether c is a known content kind.
func (c ContentKind) Valid() bool {
	return c == ContentArticles || c == ContentEvents
}

// SourceDescriptor is the static configuration for one upstream.
// Descriptors are built once at startup and never mutated.
type SourceDescriptor struct {
	Kind             SourceKind  // Wire format
	Endpoint         string      // URL fetched with GET
	Label            string      // Provenance label copied onto every item
	FreshnessSeconds int         // Cache TTL for the fetched payload
	FetchTimeoutMs   int         // Hard bound on one network retrieval
	Content          ContentKind // Shape yielded by store sources (feeds and scoreboards are fixed)
	Token            string      // Store access token, never logged
}

// Key returns the cache key for this descriptor.
func (d SourceDescriptor) Key() string {
	return fmt.Sprintf("%s:%s", d.Kind, d.Endpoint)
}

// Freshness returns the freshness window as a duration.
func (d SourceDescriptor) Freshness() time.Duration {
	if d.FreshnessSeconds <= 0 {
		return 0
	}
	return time.Duration(d.FreshnessSeconds) * time.Second
}

// Timeout returns the fetch timeout as a duration.
func (d SourceDescriptor) Timeout() time.Duration {
	if d.FetchTimeoutMs <= 0 {
		return 0
	}
	return time.Duration(d.FetchTimeoutMs) * time.Millisecond
}

// IsExternal reports whether items from this source come from a third party.
func (d SourceDescriptor) IsExternal() bool {
	return d.Kind != KindStore
}

// Yields returns the canonical shape this source produces.
func (d SourceDescriptor) Yields() ContentKind {
	switch d.Kind {
	case KindRSS:
		return ContentArticles
	case KindScoreboard:
		return ContentEvents
	}
	if d.Content == "" {
		return ContentArticles
	}
	return d.Content
}
