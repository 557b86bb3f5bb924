// Package server serves the organizer tools over MCP.
package server

import (
	"context"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/prettymuchbryce/tidydownloads/internal/tools"
)

// Name is the server name announced to MCP clients.
const Name = "tidydownloads"

// Server wraps the MCP server with the organizer tools.
type Server struct {
	mcpServer *server.MCPServer
	runner    *tools.Runner
	logger    *slog.Logger
}

// New creates an MCP server that runs every tool through runner.
func New(runner *tools.Runner, version string, logger *slog.Logger) *Server {
	s := &Server{
		runner: runner,
		logger: logger,
	}

	s.mcpServer = server.NewMCPServer(
		Name,
		version,
		server.WithLogging(),
	)
	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	for _, op := range tools.Operations {
		s.mcpServer.AddTool(op.Tool(), s.handler(op))
	}
	s.logger.Info("registered tools", "count", len(tools.Operations))
}

func (s *Server) handler(op tools.Operation) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.logger.Debug("tool call", "tool", op.Name())
		return s.runner.Handle(ctx, op, req)
	}
}

// Run serves MCP over stdin/stdout until ctx is done or stdin closes.
// Stdout carries the protocol, so nothing else may write to it.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server", "name", Name)
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// GetMCPServer returns the underlying MCP server for testing.
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}
