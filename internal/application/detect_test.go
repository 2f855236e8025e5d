package application_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/application"
	"github.com/preflight/preflight/internal/domain"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func issueKinds(issues []domain.Issue) []domain.IssueKind {
	kinds := make([]domain.IssueKind, len(issues))
	for i, issue := range issues {
		kinds[i] = issue.Kind
	}
	return kinds
}

func TestDetectIssues_MissingNodeManifestIsHigh(t *testing.T) {
	root := t.TempDir()

	issues := application.DetectIssues(root,
		domain.Stack{Primary: domain.StackNodeJS},
		domain.Structure{},
		domain.Configuration{EnvFiles: []string{".env"}},
		zap.NewNop())

	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueMissingManifest, issues[0].Kind)
	assert.Equal(t, domain.SeverityHigh, issues[0].Severity)
}

func TestDetectIssues_MissingPythonManifestIsMedium(t *testing.T) {
	root := t.TempDir()

	issues := application.DetectIssues(root,
		domain.Stack{Primary: domain.StackPython},
		domain.Structure{},
		domain.Configuration{EnvFiles: []string{".env"}},
		zap.NewNop())

	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueMissingManifest, issues[0].Kind)
	assert.Equal(t, domain.SeverityMedium, issues[0].Severity)
}

func TestDetectIssues_SetupPySatisfiesPython(t *testing.T) {
	issues := application.DetectIssues(t.TempDir(),
		domain.Stack{Primary: domain.StackPython},
		domain.Structure{ImportantFiles: []string{"setup.py"}},
		domain.Configuration{EnvFiles: []string{".env"}},
		zap.NewNop())

	assert.NotContains(t, issueKinds(issues), domain.IssueMissingManifest)
}

func TestDetectIssues_HardcodedConfigFirstKeywordPerFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "settings.py", "HOST = 'localhost'\nPASSWORD = 'hunter2'\n")
	writeFile(t, root, "notes.txt", "password everywhere")

	issues := application.DetectIssues(root,
		domain.Stack{Primary: domain.StackUnknown},
		domain.Structure{},
		domain.Configuration{EnvFiles: []string{".env"}},
		zap.NewNop())

	// One finding for settings.py (first keyword wins), none for the
	// non-text extension.
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueHardcodedConfig, issues[0].Kind)
	assert.Contains(t, issues[0].Description, "Hardcoded localhost references found in settings.py")
}

func TestDetectIssues_MissingEnvIsLow(t *testing.T) {
	issues := application.DetectIssues(t.TempDir(),
		domain.Stack{Primary: domain.StackUnknown},
		domain.Structure{},
		domain.Configuration{},
		zap.NewNop())

	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueMissingEnv, issues[0].Kind)
	assert.Equal(t, domain.SeverityLow, issues[0].Severity)
}

func TestDetectIssues_SkipsDependencyDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "node_modules/lib/index.js", "const secret = 'x'")

	issues := application.DetectIssues(root,
		domain.Stack{Primary: domain.StackUnknown},
		domain.Structure{},
		domain.Configuration{EnvFiles: []string{".env"}},
		zap.NewNop())

	assert.NotContains(t, issueKinds(issues), domain.IssueHardcodedConfig)
}
