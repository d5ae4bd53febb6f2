// ABOUTME: MCP resource providers for matchday
// ABOUTME: Exposes read-only views of configured sources with cache state, and of pages

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/matchday/internal/models"
)

const (
	sourcesURI = "matchday://sources"
	pagesURI   = "matchday://pages"
)

// ResourceData is the standard response format for all resources.
type ResourceData struct {
	Metadata ResourceMetadata `json:"metadata"`
	Data     interface{}      `json:"data"`
}

// ResourceMetadata contains metadata about the resource response.
type ResourceMetadata struct {
	Timestamp   time.Time `json:"timestamp"`
	Count       int       `json:"count"`
	ResourceURI string    `json:"resource_uri"`
}

type sourceResource struct {
	Label            string             `json:"label"`
	Kind             models.SourceKind  `json:"kind"`
	Content          models.ContentKind `json:"content"`
	Endpoint         string             `json:"endpoint"`
	External         bool               `json:"external"`
	FreshnessSeconds int                `json:"freshness_seconds"`
	CachedAt         *time.Time         `json:"cached_at,omitempty"`
	CachedBytes      int                `json:"cached_bytes,omitempty"`
	Fresh            bool               `json:"fresh"`
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         sourcesURI,
			Name:        "Sources",
			Description: "Configured upstream sources with kind, endpoint, freshness window, and the state of each source's cached payload",
			MIMEType:    "application/json",
		},
		s.readSources,
	)

	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         pagesURI,
			Name:        "Pages",
			Description: "Configured pages with their content kind, display cap, and source filter",
			MIMEType:    "application/json",
		},
		s.readPages,
	)
}

func (s *Server) readSources(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	now := s.now()

	byKey := map[string]*models.CacheEntry{}
	if s.store != nil {
		entries, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list cache entries: %w", err)
		}
		for _, e := range entries {
			byKey[e.SourceKey] = e
		}
	}

	sources := s.engine.Sources()
	out := make([]sourceResource, 0, len(sources))
	for _, d := range sources {
		r := sourceResource{
			Label:            d.Label,
			Kind:             d.Kind,
			Content:          d.Yields(),
			Endpoint:         d.Endpoint,
			External:         d.IsExternal(),
			FreshnessSeconds: d.FreshnessSeconds,
		}
		if e, ok := byKey[d.Key()]; ok {
			at := e.FetchedAt
			r.CachedAt = &at
			r.CachedBytes = len(e.Payload)
			r.Fresh = !e.Expired(now)
		}
		out = append(out, r)
	}

	return resourceJSON(request.Params.URI, now, len(out), out)
}

func (s *Server) readPages(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	pages := s.engine.Pages()
	return resourceJSON(request.Params.URI, s.now(), len(pages), pages)
}

func resourceJSON(uri string, now time.Time, count int, data any) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.MarshalIndent(ResourceData{
		Metadata: ResourceMetadata{Timestamp: now, Count: count, ResourceURI: uri},
		Data:     data,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
