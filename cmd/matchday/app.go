// ABOUTME: Wires configuration into the cache store, fetcher, and aggregation engine
// ABOUTME: Shared by the CLI, HTTP, and MCP commands

package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/harper/matchday/internal/aggregate"
	"github.com/harper/matchday/internal/cache"
	"github.com/harper/matchday/internal/config"
	"github.com/harper/matchday/internal/fetch"
)

type app struct {
	cfg    *config.Config
	store  cache.Store
	engine *aggregate.Engine
	close  func() error
}

func newApp(c *config.Config, env func(string) string, logger *slog.Logger) (*app, error) {
	a := &app{cfg: c, close: func() error { return nil }}

	switch c.Cache.Backend {
	case config.CacheSQLite:
		path := config.ExpandPath(c.Cache.Path)
		if path == "" {
			path = cache.DefaultPath()
		}
		s, err := cache.OpenSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		a.store = s
		a.close = s.Close
	default:
		a.store = cache.NewMemoryStore()
	}

	sources, omitted := c.Descriptors(env)
	if len(omitted) > 0 {
		logger.Warn("store sources omitted, credentials not set",
			"sources", omitted,
			"env", []string{config.EnvStoreURL, config.EnvStoreToken},
		)
	}

	fetcher := fetch.New(fetch.Options{
		Store:     a.store,
		Client:    &http.Client{Timeout: config.DefaultHTTPTimeout},
		Logger:    logger,
		UserAgent: c.UserAgent,
		HostRate:  rate.Limit(c.RateLimit.PerSecond),
		HostBurst: c.RateLimit.Burst,
	})

	engine, err := aggregate.NewEngine(aggregate.Options{
		Fetcher: fetcher,
		Sources: sources,
		Pages:   c.Pages,
		Logger:  logger,
	})
	if err != nil {
		_ = a.close()
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}
	a.engine = engine

	return a, nil
}

func (a *app) Close() error {
	return a.close()
}
