package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/preflight/preflight/internal/adapters/outbound/tui"
	"github.com/preflight/preflight/internal/domain"
)

func TestRenderReport_CarriesCoreFacts(t *testing.T) {
	report := &domain.AnalysisReport{
		Root: "/tmp/demo",
		Stack: domain.Stack{
			Primary:      domain.StackNodeJS,
			Technologies: []string{"javascript"},
			Frameworks:   []string{"express"},
		},
		Structure: domain.Structure{
			FileCount: 12,
			DirCount:  3,
			FileTypes: map[string]int{".js": 9, ".json": 3},
		},
		Configuration: domain.Configuration{
			DatabaseHints: []domain.DatabaseKind{domain.DatabaseMongoDB},
			PortHints:     []int{3000},
		},
		Issues: []domain.Issue{
			{Kind: domain.IssueMissingEnv, Severity: domain.SeverityLow, Description: "No environment configuration files found"},
		},
		Recommendations: []string{"Consider using PM2 for process management in production"},
	}

	out := tui.RenderReport(report)

	assert.Contains(t, out, "nodejs")
	assert.Contains(t, out, "express")
	assert.Contains(t, out, "12 files, 3 directories")
	assert.Contains(t, out, "mongodb")
	assert.Contains(t, out, "3000")
	assert.Contains(t, out, "No environment configuration files found")
	assert.Contains(t, out, "Consider using PM2 for process management in production")
}

func TestRenderReport_NoIssues(t *testing.T) {
	out := tui.RenderReport(&domain.AnalysisReport{
		Stack:     domain.Stack{Primary: domain.StackStatic},
		Structure: domain.Structure{FileTypes: map[string]int{}},
	})

	assert.Contains(t, out, "No deployment issues found.")
}

func TestRenderLedger(t *testing.T) {
	empty := tui.RenderLedger(&domain.FixLedger{})
	assert.Contains(t, empty, "No fixes needed.")

	applied := tui.RenderLedger(&domain.FixLedger{Entries: []string{"Created .env file with deployment configuration"}})
	assert.Contains(t, applied, "Applied 1 fixes")
	assert.Contains(t, applied, "Created .env file with deployment configuration")
}
