// ABOUTME: Centralized configuration defaults for matchday
// ABOUTME: Contains freshness windows, timeouts, caps, and display constants

package config

import "time"

// Fetch settings
const (
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultFetchTimeoutMs = 8000
	DefaultHostRate       = 2.0 // requests per second per upstream host
	DefaultHostBurst      = 4
)

// Freshness windows per source kind, in seconds
const (
	StoreFreshnessSeconds      = 300
	ScoreboardFreshnessSeconds = 600
	FeedFreshnessSeconds       = 3600
)

// Page caps
const (
	DefaultArticleCap = 24
	DefaultEventCap   = 30
	MinPageCap        = 1
	MaxPageCap        = 100
)

// Display settings
const (
	DefaultListLimit = 20
	DisplayIDLength  = 8
	SeparatorWidth   = 60
	DateFormatShort  = "02 Jan 06 15:04 MST"
	DateFormatLong   = "Mon, 02 Jan 2006 15:04 MST"
)

// Server settings
const (
	DefaultListenAddr = "127.0.0.1:8080"
)

// Environment variables holding the content store credentials
const (
	EnvStoreURL   = "MATCHDAY_STORE_URL"
	EnvStoreToken = "MATCHDAY_STORE_TOKEN"
)

// Cache backends
const (
	CacheMemory = "memory"
	CacheSQLite = "sqlite"
)
