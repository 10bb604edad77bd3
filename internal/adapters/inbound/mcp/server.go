package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/pluginpulse/pluginpulse/internal/application"
)

// NewPluginPulseMCPServer creates an MCP server exposing plugin search and
// scoring as tools, so AI assistants can ask "how healthy is this plugin"
// without shelling out.
func NewPluginPulseMCPServer(search *application.SearchService, score *application.ScoreService) *server.MCPServer {
	s := server.NewMCPServer(
		"pluginpulse",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, search, score)

	return s
}
