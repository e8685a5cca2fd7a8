// Package mcp exposes docfacts extraction as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/docfacts/internal/config"
	"github.com/mvp-joe/docfacts/internal/scanner"
)

// ServerName and ServerVersion identify the server to MCP clients.
const (
	ServerName    = "docfacts-mcp"
	ServerVersion = "1.0.0"
)

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	scanner *scanner.Scanner
	mcp     *server.MCPServer
}

// NewMCPServer creates a server whose file tool reads from projectRoot using
// cfg's path patterns and extraction settings.
func NewMCPServer(cfg *config.Config, projectRoot string) (*MCPServer, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	s, err := scanner.New(cfg.ToScannerOptions(projectRoot), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)

	AddExtractTool(mcpServer)
	AddFileTool(mcpServer, s, projectRoot)

	return &MCPServer{
		scanner: s,
		mcp:     mcpServer,
	}, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases all resources.
func (s *MCPServer) Close() error {
	if s.scanner != nil {
		s.scanner.Close()
	}
	return nil
}
