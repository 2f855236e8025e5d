package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/adapters/outbound/classifier"
	"github.com/preflight/preflight/internal/adapters/outbound/manifest"
	"github.com/preflight/preflight/internal/adapters/outbound/probe"
	"github.com/preflight/preflight/internal/adapters/outbound/scanner"
	"github.com/preflight/preflight/internal/application"
)

func registerTools(s *server.MCPServer, projectPath string, log *zap.Logger) {
	s.AddTool(
		mcplib.NewTool("preflight_analyze",
			mcplib.WithDescription("Analyze the project tree and return the full deployment-readiness report as JSON"),
		),
		handleAnalyze(projectPath, log),
	)

	s.AddTool(
		mcplib.NewTool("preflight_fix",
			mcplib.WithDescription("Apply the deployment fix catalogue and return the ledger of applied fixes"),
			mcplib.WithBoolean("dry_run", mcplib.Description("Analyze and report issues without mutating any file")),
		),
		handleFix(projectPath, log),
	)

	s.AddTool(
		mcplib.NewTool("preflight_status",
			mcplib.WithDescription("Summarize the project's deployment readiness: stack, issue counts, detected databases and ports"),
		),
		handleStatus(projectPath, log),
	)
}

func newAnalyzeService(log *zap.Logger) *application.AnalyzeService {
	return application.NewAnalyzeService(
		scanner.New(log),
		classifier.New(log),
		manifest.New(log),
		probe.New(log),
		log,
	)
}

func handleAnalyze(projectPath string, log *zap.Logger) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		report := newAnalyzeService(log).Analyze(projectPath)
		return jsonResult(report)
	}
}

func handleFix(projectPath string, log *zap.Logger) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		dryRun, _ := request.GetArguments()["dry_run"].(bool)

		report := newAnalyzeService(log).Analyze(projectPath)
		if dryRun {
			return jsonResult(map[string]any{
				"dry_run": true,
				"issues":  report.Issues,
			})
		}

		ledger := application.NewFixService(log).Apply(projectPath, report)
		return jsonResult(ledger)
	}
}

func handleStatus(projectPath string, log *zap.Logger) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		report := newAnalyzeService(log).Analyze(projectPath)

		counts := map[string]int{}
		for _, issue := range report.Issues {
			counts[string(issue.Severity)]++
		}

		return jsonResult(map[string]any{
			"project_path":       report.Root,
			"primary_stack":      report.Stack.Primary,
			"frameworks":         report.Stack.Frameworks,
			"total_files":        report.Structure.FileCount,
			"issue_counts":       counts,
			"detected_databases": report.Configuration.DatabaseHints,
			"detected_ports":     report.Configuration.PortHints,
		})
	}
}

func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}
