package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// NewPreflightMCPServer creates an MCP server exposing the analysis and
// remediation engine for the project rooted at projectPath.
func NewPreflightMCPServer(projectPath string, log *zap.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"preflight",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, log)
	registerResources(s, projectPath, log)

	return s
}
