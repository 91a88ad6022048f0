package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/portal-search/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
the portal.

The server exposes the "search" tool, the portal://sources resource and
the portal://search/{query} resource template. By default it speaks
JSON-RPC over stdio. Use --port to serve HTTP instead, e.g. for the MCP
Inspector.

Examples:
  # Stdio mode (default)
  portal-search mcp serve

  # HTTP mode
  portal-search mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "portal-search": {
        "command": "/path/to/portal-search",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search: searchService,
		Source: sourceService,
	})
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	stopScheduler := startScheduler(ctx)
	defer stopScheduler()

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
