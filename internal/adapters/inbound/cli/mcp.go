package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/pluginpulse/pluginpulse/internal/adapters/inbound/mcp"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the PluginPulse MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start PluginPulse MCP server (stdio)",
		Long:  "Start the PluginPulse MCP server using stdio transport. This lets AI coding assistants search the plugin directory and read scorecards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := buildServices(opts)
			if err != nil {
				return err
			}
			s := mcpadapter.NewPluginPulseMCPServer(svcs.search, svcs.score)
			return server.ServeStdio(s)
		},
	}

	return cmd
}
