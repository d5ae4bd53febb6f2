// ABOUTME: MCP server implementation for matchday
// ABOUTME: Provides tools, resources, and prompts for AI agents to read aggregated pages

package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/harper/matchday/internal/aggregate"
	"github.com/harper/matchday/internal/cache"
	"github.com/harper/matchday/internal/models"
	"github.com/harper/matchday/internal/timeutil"
)

// Engine is the aggregation surface the MCP server exposes.
type Engine interface {
	Articles(ctx context.Context, page string) (*aggregate.Report[models.Article], error)
	Events(ctx context.Context, page string) (*aggregate.Report[models.Event], error)
	Page(name string) (models.Page, bool)
	Pages() []models.Page
	Sources() []models.SourceDescriptor
}

// Server wraps the MCP server with matchday-specific context
type Server struct {
	mcpServer *server.MCPServer
	engine    Engine
	store     cache.Store
	logger    *slog.Logger
	now       timeutil.Clock
}

// NewServer creates a new MCP server instance. store may be nil.
func NewServer(engine Engine, store cache.Store, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine: engine,
		store:  store,
		logger: logger,
		now:    timeutil.SystemClock,
	}

	s.mcpServer = server.NewMCPServer(
		"matchday",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdio
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
