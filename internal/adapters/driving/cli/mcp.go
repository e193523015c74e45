package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driving/mcp"
)

var mcpHTTP string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --http to listen on an address instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  bfsi-assistant mcp

  # HTTP mode (for MCP Inspector, remote access)
  bfsi-assistant mcp --http :8093

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "bfsi-assistant": {
        "command": "/path/to/bfsi-assistant",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTP, "http", "", "HTTP listen address (empty = use stdio)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if err := ensureStack(); err != nil {
		return err
	}
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	ports := &mcp.Ports{
		Assistant: assistantService,
		Knowledge: knowledgeService,
		Corpus:    corpusService,
	}

	server, err := mcp.NewServer(ports, version)
	if err != nil {
		return err
	}

	if mcpHTTP != "" {
		cmd.Printf("MCP server listening on %s\n", mcpHTTP)
		return server.RunHTTP(cmd.Context(), mcpHTTP)
	}

	return server.Run(cmd.Context())
}
