package application_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/adapters/outbound/classifier"
	"github.com/preflight/preflight/internal/adapters/outbound/manifest"
	"github.com/preflight/preflight/internal/adapters/outbound/probe"
	"github.com/preflight/preflight/internal/adapters/outbound/scanner"
	"github.com/preflight/preflight/internal/application"
)

func newTestAnalyzer() *application.AnalyzeService {
	log := zap.NewNop()
	return application.NewAnalyzeService(
		scanner.New(log), classifier.New(log), manifest.New(log), probe.New(log), log)
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	return string(data)
}

func TestFixService_NodeProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name": "demo", "main": "server.js"}`)
	writeFile(t, root, "server.js", `const express = require("express");
const app = express();
app.listen(3000);
`)

	analyzer := newTestAnalyzer()
	fixer := application.NewFixService(zap.NewNop())

	ledger := fixer.Apply(root, analyzer.Analyze(root))
	require.False(t, ledger.Empty())

	server := readFile(t, root, "server.js")
	assert.Contains(t, server, `app.listen(process.env.PORT || 3000, "0.0.0.0")`)

	var pkg map[string]any
	require.NoError(t, json.Unmarshal([]byte(readFile(t, root, "package.json")), &pkg))
	scripts := pkg["scripts"].(map[string]any)
	assert.Equal(t, "node server.js", scripts["start"])

	assert.FileExists(t, filepath.Join(root, ".env"))
	assert.FileExists(t, filepath.Join(root, "start.sh"))
}

func TestFixService_NodeProjectReapplyIsNoop(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name": "demo", "main": "server.js"}`)
	writeFile(t, root, "server.js", `const app = require("express")();
app.listen(3000);
`)

	analyzer := newTestAnalyzer()
	fixer := application.NewFixService(zap.NewNop())

	first := fixer.Apply(root, analyzer.Analyze(root))
	require.False(t, first.Empty())

	second := fixer.Apply(root, analyzer.Analyze(root))
	assert.True(t, second.Empty(), "second pass should apply nothing, got %v", second.Entries)
}

func TestFixService_FlaskProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", "flask==2.3\n")
	writeFile(t, root, "app.py", `from flask import Flask
app = Flask(__name__)

if __name__ == "__main__":
    app.run(debug=True)
`)

	analyzer := newTestAnalyzer()
	fixer := application.NewFixService(zap.NewNop())

	ledger := fixer.Apply(root, analyzer.Analyze(root))
	require.False(t, ledger.Empty())

	app := readFile(t, root, "app.py")
	assert.Contains(t, app, `app.run(host="0.0.0.0", port=int(os.environ.get("PORT", 5000)), debug=False)`)
	assert.Contains(t, app, "import os")
	assert.NotContains(t, app, "debug=True")

	second := fixer.Apply(root, analyzer.Analyze(root))
	assert.True(t, second.Empty(), "second pass should apply nothing, got %v", second.Entries)
}

func TestFixService_PythonWithoutEntryGetsRunScript(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", "requests\n")

	analyzer := newTestAnalyzer()
	fixer := application.NewFixService(zap.NewNop())

	ledger := fixer.Apply(root, analyzer.Analyze(root))
	require.False(t, ledger.Empty())
	assert.FileExists(t, filepath.Join(root, "run.py"))
}

func TestFixService_PHPProjectGetsHTAccess(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.php", "<?php echo 'hi';")

	analyzer := newTestAnalyzer()
	fixer := application.NewFixService(zap.NewNop())

	fixer.Apply(root, analyzer.Analyze(root))
	assert.FileExists(t, filepath.Join(root, ".htaccess"))
}

func TestFixService_RebindsLoopbackHosts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "settings.py", `HOST = "localhost"`)

	analyzer := newTestAnalyzer()
	fixer := application.NewFixService(zap.NewNop())

	fixer.Apply(root, analyzer.Analyze(root))
	assert.Equal(t, `HOST = "0.0.0.0"`, readFile(t, root, "settings.py"))
}

func TestFixService_WritesConfigGuideForHardcodedFindings(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config.py", `SECRET = "do-not-ship"`)

	analyzer := newTestAnalyzer()
	fixer := application.NewFixService(zap.NewNop())

	fixer.Apply(root, analyzer.Analyze(root))
	notes := readFile(t, root, "DEPLOYMENT_NOTES.md")
	assert.Contains(t, notes, "Potential hardcoded secrets found in config.py")
}

func TestFixService_ExistingEnvFileIsKept(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".env", "PORT=9999\n")

	analyzer := newTestAnalyzer()
	fixer := application.NewFixService(zap.NewNop())

	fixer.Apply(root, analyzer.Analyze(root))
	assert.Equal(t, "PORT=9999\n", readFile(t, root, ".env"))
}
