package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// registerResources registers the read-only analysis resources on the
// given server.
func registerResources(s *server.MCPServer, projectPath string, log *zap.Logger) {
	s.AddResource(
		mcplib.NewResource(
			"preflight://report",
			"Analysis Report",
			mcplib.WithResourceDescription("Full deployment-readiness report for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath, log),
	)

	s.AddResource(
		mcplib.NewResource(
			"preflight://stack",
			"Technology Stack",
			mcplib.WithResourceDescription("Detected primary stack, technologies and frameworks"),
			mcplib.WithMIMEType("application/json"),
		),
		handleStackResource(projectPath, log),
	)
}

func handleReportResource(projectPath string, log *zap.Logger) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report := newAnalyzeService(log).Analyze(projectPath)
		return jsonResource("preflight://report", report)
	}
}

func handleStackResource(projectPath string, log *zap.Logger) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report := newAnalyzeService(log).Analyze(projectPath)
		return jsonResource("preflight://stack", report.Stack)
	}
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
