package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zaibi117/readme-maker/internal/adapters/driving/mcp"
	"github.com/zaibi117/readme-maker/internal/core/ports/driving"
	"github.com/zaibi117/readme-maker/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default the server speaks JSON-RPC over stdio. Use --http to serve the
streamable HTTP transport instead.

Tools: generate_readme, get_readme, cached_summaries.
Resources: readme://repos, readme://repos/{owner}/{repo}/readme.

Examples:
  readme-maker mcp
  readme-maker mcp --http :8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "readme-maker": {
        "command": "/path/to/readme-maker",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

var mcpHTTPAddr string

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "Serve HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	ports := &mcp.Ports{Library: libraryService}
	if processorFactory != nil {
		ports.NewProcessor = func() (driving.RepositoryProcessor, error) {
			return processorFactory(ProcessorOptions{})
		}
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if promptWatcher != nil {
		go func() {
			if err := promptWatcher(ctx); err != nil {
				logger.Warn("prompt watcher stopped: %v", err)
			}
		}()
	}

	if mcpHTTPAddr != "" {
		cmd.PrintErrf("MCP server listening on http://%s\n", mcpHTTPAddr)
		return server.RunHTTP(ctx, mcpHTTPAddr)
	}
	return server.Run(ctx)
}
