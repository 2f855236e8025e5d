package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preflight/preflight/internal/domain"
)

func TestStructure_HasImportantFile(t *testing.T) {
	s := domain.Structure{ImportantFiles: []string{"package.json", "docs/README.md"}}

	assert.True(t, s.HasImportantFile("package.json"))
	assert.True(t, s.HasImportantFile("README.md"), "should match by base name at any depth")
	assert.False(t, s.HasImportantFile("requirements.txt"))
}

func TestAnalysisReport_JSONFieldNames(t *testing.T) {
	report := domain.AnalysisReport{
		Root:  "/tmp/demo",
		Stack: domain.Stack{Primary: domain.StackNodeJS},
		Issues: []domain.Issue{
			{Kind: domain.IssueMissingEnv, Severity: domain.SeverityLow, Description: "x"},
		},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "project_path")
	assert.Contains(t, decoded, "project_type")
	assert.Contains(t, decoded, "potential_issues")
	assert.Contains(t, decoded, "recommendations")
}

func TestFixLedger(t *testing.T) {
	ledger := &domain.FixLedger{}
	assert.True(t, ledger.Empty())

	ledger.Append("Created .env file with deployment configuration")
	assert.False(t, ledger.Empty())
	assert.Equal(t, []string{"Created .env file with deployment configuration"}, ledger.Entries)
}

func TestStageResult_Ok(t *testing.T) {
	assert.True(t, domain.Succeeded().Ok())
	assert.True(t, domain.Skipped("no fixes needed").Ok())
	assert.False(t, domain.Failed("clone failed").Ok())

	failed := domain.Failed("clone failed")
	assert.Equal(t, domain.StageFailed, failed.Status)
	assert.Equal(t, "clone failed", failed.Reason)
}
