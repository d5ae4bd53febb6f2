// ABOUTME: MCP prompt definitions and handlers
// ABOUTME: Provides a matchday briefing workflow template

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "matchday-briefing",
			Description: "Summarize the latest sports news and upcoming fixtures from the aggregated pages",
			Arguments: []mcp.PromptArgument{
				{
					Name:        "sport",
					Description: "Optional sport or league to focus on, such as 'NBA'",
					Required:    false,
				},
			},
		},
		s.handleBriefing,
	)
}

func (s *Server) handleBriefing(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	focus := "all sports"
	sportArg := ""
	if req.Params.Arguments != nil {
		if sport, ok := req.Params.Arguments["sport"]; ok && sport != "" {
			focus = sport
			sportArg = fmt.Sprintf(", sport=%q", sport)
		}
	}

	template := fmt.Sprintf(`# Matchday Briefing

Write a short briefing covering %s.

## Steps

1. Call list_pages to find the article and event pages.
2. Call list_articles on the main article page with since="today". If fewer than five
   articles come back, repeat with since="week".
3. Call list_events on the events page%s, limit=10.
4. Check the "sources" report in each response. Mention any source that failed or
   was served stale from cache, so the reader knows coverage may be partial.
5. If "fallback" is true the lists are placeholders. Say the live sources are
   unavailable instead of summarizing them.
6. For the two or three most important stories, call get_article for detail.

## Output

- **Headlines:** one line per story with the source label.
- **Coming up:** fixtures in start order with local kickoff times.
- **Coverage notes:** failed or stale sources, if any.
`, focus, sportArg)

	return &mcp.GetPromptResult{
		Description: "Matchday briefing workflow",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: template,
				},
			},
		},
	}, nil
}
