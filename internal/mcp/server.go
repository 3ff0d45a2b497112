package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/flowlens/flowlens/internal/analyses"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes flowchart analysis tools.
type Server struct {
	svc *analyses.Service
	mcp *server.MCPServer
}

// NewServer creates a new MCP server backed by the given analysis service.
func NewServer(svc *analyses.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"flowlens",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(analyzeSourceTool, s.handleAnalyzeSource)
	s.mcp.AddTool(getAnalysisTool, s.handleGetAnalysis)
	s.mcp.AddTool(searchAnalysesTool, s.handleSearchAnalyses)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
