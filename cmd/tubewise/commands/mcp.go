// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes the video tools to LLM agents via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/tubewise/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Tubewise as an MCP (Model Context Protocol) server, letting
LLM agents fetch transcripts, answer questions, write blog posts,
analyze sentiment and render word clouds via stdio.

Configure in your agent's MCP config file to enable the video tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by the agent host)
  tubewise mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "tubewise": {
  #       "command": "tubewise",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	svc, _, err := buildService()
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer(
		"Tubewise",
		versionInfo.Version,
	)
	handlers := mcp.RegisterTools(server, svc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("Tubewise MCP server starting on stdio...")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received, gracefully shutting down...")
		handlers.Shutdown()
		log.Info().Msg("Shutdown complete")

	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
