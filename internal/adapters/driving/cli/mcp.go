package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/discovery-updater/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can look up
discovery documents.

By default, the server communicates over stdio using JSON-RPC. Use --port to
serve streamable HTTP instead.

Examples:
  # Stdio mode, answering for the checkout in the current directory
  discovery-updater mcp serve --repo-dir .

  # HTTP mode
  discovery-updater mcp serve --repo-dir ~/src/discovery-artifact-manager --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().String("repo-dir", "", "checkout used when a request names none")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	repoDir, err := cmd.Flags().GetString("repo-dir")
	if err != nil {
		return fmt.Errorf("getting repo-dir flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Resolver: resolverService,
		RepoDir:  repoDir,
	})
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
