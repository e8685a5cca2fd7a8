package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mvp-joe/docfacts/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for documentation facts",
	Long: `Start the Model Context Protocol (MCP) server that lets coding assistants
extract documentation facts from C# code.

The MCP server provides:
- docfacts_extract: facts for a C# snippet passed inline
- docfacts_file: facts for a project file, served from cache when unchanged
- Communicates via stdio (standard MCP transport)

Example:
  docfacts mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	projectPath, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := loadConfig(projectPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "docfacts MCP Server\n")
	fmt.Fprintf(os.Stderr, "Project Root: %s\n\n", projectPath)

	server, err := mcp.NewMCPServer(cfg, projectPath)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	// Serve (blocks until shutdown)
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
