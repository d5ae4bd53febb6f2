// ABOUTME: HTTP handlers for pages, sources, and health
// ABOUTME: Page responses carry Cache-Control derived from the sources' freshness windows

package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harper/matchday/internal/aggregate"
	"github.com/harper/matchday/internal/cache"
	"github.com/harper/matchday/internal/models"
	"github.com/harper/matchday/internal/timeutil"
)

// fallbackMaxAge is the cache lifetime advertised for fallback responses.
const fallbackMaxAge = 60

// Aggregator is the engine surface the API serves.
type Aggregator interface {
	Articles(ctx context.Context, page string) (*aggregate.Report[models.Article], error)
	Events(ctx context.Context, page string) (*aggregate.Report[models.Event], error)
	Page(name string) (models.Page, bool)
	Pages() []models.Page
	Sources() []models.SourceDescriptor
}

// Handler serves the JSON API.
type Handler struct {
	engine Aggregator
	store  cache.Store
	logger *slog.Logger
	now    timeutil.Clock
}

// NewHandler creates a Handler. store may be nil, in which case source
// listings omit cache state.
func NewHandler(engine Aggregator, store cache.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{engine: engine, store: store, logger: logger, now: timeutil.SystemClock}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"sources":   len(h.engine.Sources()),
		"pages":     len(h.engine.Pages()),
	})
}

func (h *Handler) ListPages(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Pages())
}

// GetPage aggregates one page. Source failures never produce an error
// status; the report says which sources failed and whether fallback was used.
func (h *Handler) GetPage(c *gin.Context) {
	name := c.Param("page")
	page, ok := h.engine.Page(name)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "page not found", Message: name})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit", Message: raw})
			return
		}
		limit = n
	}

	ctx := c.Request.Context()
	switch page.Content {
	case models.ContentEvents:
		report, err := h.engine.Events(ctx, name)
		if err != nil {
			h.fail(c, name, err)
			return
		}
		report.Items = aggregate.Cap(report.Items, limit)
		h.setCacheControl(c, page, report.Fallback)
		c.JSON(http.StatusOK, report)
	default:
		report, err := h.engine.Articles(ctx, name)
		if err != nil {
			h.fail(c, name, err)
			return
		}
		report.Items = aggregate.Cap(report.Items, limit)
		h.setCacheControl(c, page, report.Fallback)
		c.JSON(http.StatusOK, report)
	}
}

func (h *Handler) ListSources(c *gin.Context) {
	cached := map[string]*models.CacheEntry{}
	if h.store != nil {
		entries, err := h.store.List(c.Request.Context())
		if err != nil {
			h.logger.Warn("cache listing failed", "error", err)
		}
		for _, e := range entries {
			cached[e.SourceKey] = e
		}
	}

	now := h.now()
	sources := make([]SourceInfo, 0, len(h.engine.Sources()))
	for _, d := range h.engine.Sources() {
		info := SourceInfo{
			Label:            d.Label,
			Kind:             d.Kind,
			Content:          d.Yields(),
			Endpoint:         d.Endpoint,
			FreshnessSeconds: d.FreshnessSeconds,
			TimeoutMs:        d.FetchTimeoutMs,
		}
		if e, ok := cached[d.Key()]; ok {
			at := e.FetchedAt
			info.CachedAt = &at
			info.Fresh = !e.Expired(now)
		}
		sources = append(sources, info)
	}

	c.JSON(http.StatusOK, sources)
}

func (h *Handler) fail(c *gin.Context, page string, err error) {
	if errors.Is(err, aggregate.ErrUnknownPage) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "page not found", Message: page})
		return
	}
	h.logger.Error("aggregation failed", "page", page, "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "aggregation failed"})
}

// setCacheControl advertises the shortest freshness window among the page's
// sources, so downstream caches revalidate no later than the engine would.
func (h *Handler) setCacheControl(c *gin.Context, page models.Page, fallback bool) {
	maxAge := 0
	for _, d := range h.engine.Sources() {
		if page.Uses(d) && d.FreshnessSeconds > 0 && (maxAge == 0 || d.FreshnessSeconds < maxAge) {
			maxAge = d.FreshnessSeconds
		}
	}
	if fallback || maxAge == 0 {
		maxAge = fallbackMaxAge
	}
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", maxAge, maxAge))
}
