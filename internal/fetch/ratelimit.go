// ABOUTME: Per-host token bucket limiter shared by every source on the same upstream
// ABOUTME: Keeps bursts of page requests from hammering one host

package fetch

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type hostLimiter struct {
	mu     sync.Mutex
	limit  rate.Limit
	burst  int
	byHost map[string]*rate.Limiter
}

func newHostLimiter(limit rate.Limit, burst int) *hostLimiter {
	if limit <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &hostLimiter{limit: limit, burst: burst, byHost: make(map[string]*rate.Limiter)}
}

// wait blocks until host has a token or ctx is done.
func (h *hostLimiter) wait(ctx context.Context, host string) error {
	h.mu.Lock()
	l, ok := h.byHost[host]
	if !ok {
		l = rate.NewLimiter(h.limit, h.burst)
		h.byHost[host] = l
	}
	h.mu.Unlock()

	return l.Wait(ctx)
}
