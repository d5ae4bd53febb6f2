// ABOUTME: Cache-first HTTP fetcher for one source descriptor with conditional revalidation
// ABOUTME: Enforces per-source timeouts, a response size cap, SSRF protection, and stale-while-failing

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/harper/matchday/internal/cache"
	"github.com/harper/matchday/internal/models"
	"github.com/harper/matchday/internal/timeutil"
)

const MaxResponseSize = 10 * 1024 * 1024 // 10MB

// DefaultUserAgent identifies the aggregator to upstream servers.
const DefaultUserAgent = "matchday/1.0 (content aggregator)"

// ErrPrivateAddress is returned when an external source resolves to a private network.
var ErrPrivateAddress = errors.New("access to private IP ranges is not allowed")

// Result is the payload for one source plus where it came from.
type Result struct {
	Payload     []byte
	FetchedAt   time.Time
	FromCache   bool // served from the cache store, fresh or stale
	Stale       bool // the fetch failed and an expired entry was served instead
	NotModified bool // upstream answered 304 and the cached entry was re-stamped
}

// Options configures a Fetcher. Zero values fall back to defaults.
type Options struct {
	Store     cache.Store
	Client    *http.Client
	Logger    *slog.Logger
	Clock     timeutil.Clock
	UserAgent string
	HostRate  rate.Limit // sustained requests per second per upstream host, 0 means unlimited
	HostBurst int
}

// Fetcher retrieves source payloads, consulting the cache store first.
type Fetcher struct {
	store     cache.Store
	client    *http.Client
	logger    *slog.Logger
	now       timeutil.Clock
	userAgent string
	limiter   *hostLimiter
	group     singleflight.Group
}

// New creates a Fetcher from opts.
func New(opts Options) *Fetcher {
	f := &Fetcher{
		store:     opts.Store,
		client:    opts.Client,
		logger:    opts.Logger,
		now:       opts.Clock,
		userAgent: opts.UserAgent,
		limiter:   newHostLimiter(opts.HostRate, opts.HostBurst),
	}
	if f.store == nil {
		f.store = cache.NewMemoryStore()
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: 30 * time.Second}
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	if f.now == nil {
		f.now = timeutil.SystemClock
	}
	if f.userAgent == "" {
		f.userAgent = DefaultUserAgent
	}
	return f
}

// Store returns the cache store backing this fetcher.
func (f *Fetcher) Store() cache.Store {
	return f.store
}

// Fetch returns the payload for d.
// A fresh cache entry is returned without touching the network. Otherwise one
// GET is issued, bounded by the descriptor timeout. On failure the error is a
// *TransportError and, if an older entry exists, it is returned alongside the
// error with Stale set. The cache is only written on success.
func (f *Fetcher) Fetch(ctx context.Context, d models.SourceDescriptor) (*Result, error) {
	key := d.Key()

	entry, err := f.store.Get(ctx, key)
	if err != nil && !errors.Is(err, cache.ErrNotFound) {
		f.logger.Warn("cache read failed", "source", d.Label, "error", err)
	}

	if entry != nil && !entry.Expired(f.now()) {
		f.logger.Debug("cache hit", "source", d.Label)
		return &Result{Payload: entry.Payload, FetchedAt: entry.FetchedAt, FromCache: true}, nil
	}

	v, err, shared := f.group.Do(key, func() (any, error) {
		return f.retrieve(ctx, d, entry)
	})
	if shared {
		f.logger.Debug("coalesced fetch", "source", d.Label)
	}
	if err != nil {
		if entry != nil {
			f.logger.Warn("fetch failed, serving stale cache", "source", d.Label, "error", err)
			return &Result{Payload: entry.Payload, FetchedAt: entry.FetchedAt, FromCache: true, Stale: true}, err
		}
		return nil, err
	}

	res := *v.(*Result)
	return &res, nil
}

func (f *Fetcher) retrieve(ctx context.Context, d models.SourceDescriptor, stale *models.CacheEntry) (*Result, error) {
	if timeout := d.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	parsedURL, err := url.Parse(d.Endpoint)
	if err != nil || parsedURL.Host == "" {
		return nil, &TransportError{Source: d.Label, Err: fmt.Errorf("invalid URL %q", d.Endpoint)}
	}

	if d.IsExternal() {
		if err := checkPublic(ctx, parsedURL.Hostname()); err != nil {
			return nil, &TransportError{Source: d.Label, Err: err}
		}
	}

	if err := f.limiter.wait(ctx, parsedURL.Host); err != nil {
		return nil, &TransportError{Source: d.Label, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.Endpoint, nil)
	if err != nil {
		return nil, &TransportError{Source: d.Label, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	f.setHeaders(req, d, stale)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{Source: d.Label, Err: fmt.Errorf("failed to fetch URL: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified && stale != nil {
		refreshed := stale.Revalidated(f.now())
		if err := f.store.Put(ctx, refreshed); err != nil {
			f.logger.Warn("cache write failed", "source", d.Label, "error", err)
		}
		f.logger.Debug("not modified", "source", d.Label, "duration", time.Since(start))
		return &Result{Payload: refreshed.Payload, FetchedAt: refreshed.FetchedAt, FromCache: true, NotModified: true}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Source:     d.Label,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, &TransportError{Source: d.Label, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, &TransportError{Source: d.Label, Err: fmt.Errorf("response too large (exceeds %d bytes)", MaxResponseSize)}
	}

	entry := &models.CacheEntry{
		SourceKey: d.Key(),
		FetchedAt: f.now(),
		Payload:   body,
		TTL:       d.Freshness(),
	}
	entry.SetCacheHeaders(resp.Header.Get("ETag"), resp.Header.Get("Last-Modified"))
	if err := f.store.Put(ctx, entry); err != nil {
		f.logger.Warn("cache write failed", "source", d.Label, "error", err)
	}

	f.logger.Debug("fetched", "source", d.Label, "bytes", len(body), "duration", time.Since(start))
	return &Result{Payload: body, FetchedAt: entry.FetchedAt}, nil
}

func (f *Fetcher) setHeaders(req *http.Request, d models.SourceDescriptor, stale *models.CacheEntry) {
	req.Header.Set("User-Agent", f.userAgent)

	switch d.Kind {
	case models.KindRSS:
		req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")
	default:
		req.Header.Set("Accept", "application/json")
	}

	if d.Kind == models.KindStore && d.Token != "" {
		req.Header.Set("Authorization", "Bearer "+d.Token)
		req.Header.Set("apikey", d.Token)
	}

	if stale != nil {
		if stale.ETag != "" {
			req.Header.Set("If-None-Match", stale.ETag)
		}
		if stale.LastModified != "" {
			req.Header.Set("If-Modified-Since", stale.LastModified)
		}
	}
}

// isPrivateIP checks if an IP address is in a private range (excluding loopback for tests).
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() {
		return false
	}
	return ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified()
}

func checkPublic(ctx context.Context, host string) error {
	if ip := net.ParseIP(host); ip != nil {
		if isPrivateIP(ip) {
			return ErrPrivateAddress
		}
		return nil
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		// Resolution failures surface from the request itself.
		return nil
	}
	for _, addr := range addrs {
		if isPrivateIP(addr.IP) {
			return ErrPrivateAddress
		}
	}
	return nil
}
