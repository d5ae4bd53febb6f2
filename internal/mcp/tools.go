// ABOUTME: MCP tool definitions and handlers for page aggregation
// ABOUTME: Lists pages, aggregates article and event pages, and renders one article as Markdown

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/matchday/internal/aggregate"
	"github.com/harper/matchday/internal/content"
	"github.com/harper/matchday/internal/models"
	"github.com/harper/matchday/internal/timeutil"
)

type ListArticlesInput struct {
	Page  string  `json:"page"`
	Limit *int    `json:"limit,omitempty"`
	Since *string `json:"since,omitempty"`
}

type ListEventsInput struct {
	Page  string  `json:"page"`
	Limit *int    `json:"limit,omitempty"`
	Sport *string `json:"sport,omitempty"`
}

type GetArticleInput struct {
	Page string `json:"page"`
	ID   string `json:"id"`
}

type PageOutput struct {
	Name    string             `json:"name"`
	Content models.ContentKind `json:"content"`
	Cap     int                `json:"cap"`
	Sources []string           `json:"sources"`
}

type ListPagesOutput struct {
	Pages []PageOutput `json:"pages"`
	Count int          `json:"count"`
}

type ItemsOutput[T any] struct {
	Page     string                   `json:"page"`
	Items    []T                      `json:"items"`
	Count    int                      `json:"count"`
	Fallback bool                     `json:"fallback"`
	Sources  []aggregate.SourceReport `json:"sources"`
	Filters  map[string]any           `json:"filters,omitempty"`
}

type ArticleOutput struct {
	models.Article
	Markdown string `json:"markdown,omitempty"`
}

func (s *Server) registerTools() {
	s.registerListPagesTool()
	s.registerListArticlesTool()
	s.registerListEventsTool()
	s.registerGetArticleTool()
}

func (s *Server) registerListPagesTool() {
	tool := mcp.Tool{
		Name:        "list_pages",
		Description: "List the configured pages. Each page is one aggregated list (articles or events) built from a set of sources. Use this first to find page names for list_articles and list_events.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListPages)
}

func (s *Server) registerListArticlesTool() {
	tool := mcp.Tool{
		Name:        "list_articles",
		Description: "Aggregate an article page from all of its sources. Returns deduplicated articles, newest first, along with a per-source report. If every source fails, a static fallback list is returned and 'fallback' is true.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"page": map[string]interface{}{
					"type":        "string",
					"description": "Article page name from list_pages. Example: 'home'",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of articles to return, applied after the page cap. Example: 10",
				},
				"since": map[string]interface{}{
					"type":        "string",
					"description": "Only return articles published on or after this point. Accepts 'today', 'yesterday', 'week', 'month', or a date (YYYY-MM-DD). Undated articles are excluded when set.",
				},
			},
			Required: []string{"page"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListArticles)
}

func (s *Server) registerListEventsTool() {
	tool := mcp.Tool{
		Name:        "list_events",
		Description: "Aggregate an event page from all of its sources. Returns upcoming events only, soonest first, along with a per-source report. If every source fails, a static fallback list is returned and 'fallback' is true.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"page": map[string]interface{}{
					"type":        "string",
					"description": "Event page name from list_pages. Example: 'events'",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of events to return. Example: 5",
				},
				"sport": map[string]interface{}{
					"type":        "string",
					"description": "Only return events whose sport matches, case-insensitively. Example: 'Premier League'",
				},
			},
			Required: []string{"page"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListEvents)
}

func (s *Server) registerGetArticleTool() {
	tool := mcp.Tool{
		Name:        "get_article",
		Description: "Get one article from an aggregated page by ID, with its snippet converted from HTML to Markdown. Use after list_articles.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"page": map[string]interface{}{
					"type":        "string",
					"description": "Article page the ID came from. Example: 'home'",
				},
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Article ID, or a unique prefix of at least 8 characters.",
				},
			},
			Required: []string{"page", "id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleGetArticle)
}

func (s *Server) handleListPages(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pages := s.engine.Pages()
	sources := s.engine.Sources()

	out := ListPagesOutput{Pages: make([]PageOutput, 0, len(pages))}
	for _, p := range pages {
		po := PageOutput{Name: p.Name, Content: p.Content, Cap: p.Cap, Sources: []string{}}
		for _, d := range sources {
			if p.Uses(d) {
				po.Sources = append(po.Sources, d.Label)
			}
		}
		out.Pages = append(out.Pages, po)
	}
	out.Count = len(out.Pages)

	return jsonResult(out)
}

func (s *Server) handleListArticles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input ListArticlesInput
	if err := req.BindArguments(&input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	filters := map[string]any{}
	var since time.Time
	if input.Since != nil && *input.Since != "" {
		t, err := timeutil.ParseSince(*input.Since)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		since = t
		filters["since"] = t
	}

	report, err := s.engine.Articles(ctx, input.Page)
	if err != nil {
		return pageError(input.Page, err)
	}

	items := report.Items
	if !since.IsZero() {
		items = aggregate.PublishedSince(items, since)
	}
	if input.Limit != nil {
		filters["limit"] = *input.Limit
		items = aggregate.Cap(items, *input.Limit)
	}

	return jsonResult(ItemsOutput[models.Article]{
		Page:     report.Page,
		Items:    items,
		Count:    len(items),
		Fallback: report.Fallback,
		Sources:  report.Sources,
		Filters:  filters,
	})
}

func (s *Server) handleListEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input ListEventsInput
	if err := req.BindArguments(&input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	report, err := s.engine.Events(ctx, input.Page)
	if err != nil {
		return pageError(input.Page, err)
	}

	filters := map[string]any{}
	items := report.Items
	if input.Sport != nil && *input.Sport != "" {
		filters["sport"] = *input.Sport
		kept := make([]models.Event, 0, len(items))
		for _, e := range items {
			if strings.EqualFold(e.SportType, *input.Sport) {
				kept = append(kept, e)
			}
		}
		items = kept
	}
	if input.Limit != nil {
		filters["limit"] = *input.Limit
		items = aggregate.Cap(items, *input.Limit)
	}

	return jsonResult(ItemsOutput[models.Event]{
		Page:     report.Page,
		Items:    items,
		Count:    len(items),
		Fallback: report.Fallback,
		Sources:  report.Sources,
		Filters:  filters,
	})
}

func (s *Server) handleGetArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input GetArticleInput
	if err := req.BindArguments(&input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if len(input.ID) < 8 {
		return mcp.NewToolResultError("id must be at least 8 characters"), nil
	}

	report, err := s.engine.Articles(ctx, input.Page)
	if err != nil {
		return pageError(input.Page, err)
	}

	var match *models.Article
	for i := range report.Items {
		if !strings.HasPrefix(report.Items[i].ID, input.ID) {
			continue
		}
		if match != nil {
			return mcp.NewToolResultError(fmt.Sprintf("id prefix %q is ambiguous", input.ID)), nil
		}
		match = &report.Items[i]
	}
	if match == nil {
		return mcp.NewToolResultError(fmt.Sprintf("article %q not found on page %q", input.ID, input.Page)), nil
	}

	out := ArticleOutput{Article: *match}
	if match.Snippet != "" {
		out.Markdown = content.ToMarkdown(match.Snippet)
	}
	return jsonResult(out)
}

// pageError turns a lookup failure into a tool error; anything else is a
// server error.
func pageError(page string, err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, aggregate.ErrUnknownPage) || errors.Is(err, aggregate.ErrWrongContent) {
		return mcp.NewToolResultError(fmt.Sprintf("page %q: %v", page, err)), nil
	}
	return nil, fmt.Errorf("aggregate page %s: %w", page, err)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
