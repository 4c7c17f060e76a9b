package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jnphilipp/papis-search-provider/internal/adapters/driven/opener"
	"github.com/jnphilipp/papis-search-provider/internal/adapters/driving/mcp"
	"github.com/jnphilipp/papis-search-provider/internal/core/services"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search the
papis library.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  papis-search-provider mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  papis-search-provider mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("no-cache", false, "keep the index in memory instead of sqlite")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("getting no-cache flag: %w", err)
	}

	index, err := openIndex(noCache)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer index.Close()

	indexer := newIndexService(index, false, nil)
	if noCache {
		if _, err := indexer.Reindex(cmd.Context()); err != nil {
			return err
		}
	}

	ports := &mcp.Ports{
		SearchProvider: services.NewSearchProviderService(index, opener.New(settings.OpenerCommand)),
		Index:          indexer,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
