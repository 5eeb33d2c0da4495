// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to use the assistant via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/pmcavoy/aide/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs aide as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to chat with the assistant via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by the agent host)
  aide mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "aide": {
  #       "command": "aide",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	assistant, _, err := buildAssistant()
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer(
		"aide Assistant",
		versionInfo.Version,
	)

	mcp.RegisterTools(server, assistant)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("aide MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
