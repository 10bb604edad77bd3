package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pluginpulse/pluginpulse/internal/application"
	"github.com/pluginpulse/pluginpulse/internal/domain"
)

// registerTools registers all PluginPulse MCP tools on the given server.
func registerTools(s *server.MCPServer, search *application.SearchService, score *application.ScoreService) {
	// 1. pluginpulse_search
	s.AddTool(
		mcplib.NewTool("pluginpulse_search",
			mcplib.WithDescription("Search the WordPress.org plugin directory and return records annotated with health and usability scores"),
			mcplib.WithString("term",
				mcplib.Required(),
				mcplib.Description("Search term"),
			),
			mcplib.WithString("sort",
				mcplib.Description("Sort key: health, usability, rating, installs, updated or name"),
			),
			mcplib.WithNumber("min_health",
				mcplib.Description("Drop plugins below this health score (0-100)"),
			),
		),
		handleSearch(search),
	)

	// 2. pluginpulse_score
	s.AddTool(
		mcplib.NewTool("pluginpulse_score",
			mcplib.WithDescription("Return the health/usability scorecard for a single plugin slug, including the per-signal breakdown"),
			mcplib.WithString("slug",
				mcplib.Required(),
				mcplib.Description("Plugin slug, e.g. akismet"),
			),
		),
		handleScore(score),
	)
}

func handleSearch(search *application.SearchService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		term, err := req.RequireString("term")
		if err != nil {
			return mcplib.NewToolResultError(err.Error()), nil
		}

		args := req.GetArguments()
		sortKey, _ := args["sort"].(string)
		minHealth, _ := args["min_health"].(float64)
		query := domain.SearchQuery{
			Term:      term,
			Sort:      sortKey,
			MinHealth: int(minHealth),
		}

		result, err := search.Search(ctx, query)
		if err != nil {
			return mcplib.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleScore(score *application.ScoreService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		slug, err := req.RequireString("slug")
		if err != nil {
			return mcplib.NewToolResultError(err.Error()), nil
		}

		out, err := score.Score(ctx, slug)
		if err != nil {
			return mcplib.NewToolResultError(fmt.Sprintf("scoring %s failed: %v", slug, err)), nil
		}
		return jsonResult(out)
	}
}

func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcplib.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcplib.NewToolResultText(string(data)), nil
}
