package application

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/domain"
	"github.com/preflight/preflight/internal/domain/rules"
)

// nodeEntryCandidates is the fixed priority list for resolving a
// Node.js entry file.
var nodeEntryCandidates = []string{"app.js", "server.js", "main.js", "index.js"}

// pythonEntryCandidates are the files the Python rules operate on.
var pythonEntryCandidates = []string{"app.py", "main.py", "server.py", "run.py"}

// rebindExtensions are the file types the generic host-rebinding rule
// may touch.
var rebindExtensions = map[string]bool{
	".py": true, ".js": true, ".php": true, ".rb": true, ".go": true,
}

var fixSkipDirs = map[string]bool{
	"node_modules": true,
	"__pycache__":  true,
	".git":         true,
}

// FixService is the write phase: it consumes a read-only analysis
// report, dispatches stack-specific rules first and generic rules
// second, and returns the ledger of applied mutations. A failure on
// one file is logged and skipped; the remaining rules still run.
type FixService struct {
	log *zap.Logger
}

func NewFixService(log *zap.Logger) *FixService {
	return &FixService{log: log}
}

// Apply runs the full rule catalogue against root. Reapplying to an
// already-fixed tree returns an empty ledger: pattern rules converge on
// their own output and block-append rules are sentinel-guarded.
func (s *FixService) Apply(root string, report *domain.AnalysisReport) *domain.FixLedger {
	s.log.Info("starting automated fixes", zap.String("root", root))
	ledger := &domain.FixLedger{}

	switch report.Stack.Primary {
	case domain.StackNodeJS:
		s.fixNode(root, ledger)
	case domain.StackPython:
		s.fixPython(root, report, ledger)
	case domain.StackPHP:
		s.fixPHP(root, ledger)
	}

	s.rebindLoopbacks(root, ledger)
	s.ensureEnvFile(root, report, ledger)
	s.writeConfigGuide(root, report, ledger)
	s.createStartupScript(root, report, ledger)

	s.log.Info("fix pass finished", zap.Int("applied", len(ledger.Entries)))
	return ledger
}

// ── Node.js rules ──

func (s *FixService) fixNode(root string, ledger *domain.FixLedger) {
	manifestPath := filepath.Join(root, "package.json")
	if _, err := os.Stat(manifestPath); err == nil {
		entry := s.resolveNodeEntry(root, manifestPath)
		s.applyTextRule(manifestPath, ledger, "Added start script to package.json",
			func(content string) (string, bool) {
				return rules.EnsureNodeStartScript(content, entry)
			})
	}

	for _, name := range []string{"app.js", "server.js", "index.js", "main.js"} {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		s.applyTextRule(path, ledger, "Fixed port binding in "+name, rules.RewriteNodeListen)
		s.applyTextRule(path, ledger, "Added proper port binding to Node.js app", rules.AppendNodeListener)
		break
	}
}

// resolveNodeEntry picks the manifest's declared main file when it
// exists, otherwise the first existing candidate from the fixed
// priority list, otherwise index.js.
func (s *FixService) resolveNodeEntry(root, manifestPath string) string {
	entry := "index.js"
	if deps := readNodeMain(manifestPath); deps != "" {
		entry = deps
	}
	if _, err := os.Stat(filepath.Join(root, entry)); err == nil {
		return entry
	}
	for _, candidate := range nodeEntryCandidates {
		if _, err := os.Stat(filepath.Join(root, candidate)); err == nil {
			return candidate
		}
	}
	return entry
}

// ── Python rules ──

func (s *FixService) fixPython(root string, report *domain.AnalysisReport, ledger *domain.FixLedger) {
	frameworks := report.Stack.Frameworks
	var found bool

	for _, name := range pythonEntryCandidates {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		found = true

		switch {
		case contains(frameworks, "flask"):
			s.applyTextRule(path, ledger, "Fixed Flask app.run() for deployment", rules.RewriteFlaskRun)
			s.applyTextRule(path, ledger, "Added os import for PORT environment variable", rules.EnsureOSImport)
		case contains(frameworks, "django"):
			s.fixDjangoSettings(root, ledger)
		case contains(frameworks, "fastapi"):
			s.applyTextRule(path, ledger, "Fixed FastAPI uvicorn configuration", rules.RewriteUvicornRun)
			s.applyTextRule(path, ledger, "Added os import for PORT environment variable", rules.EnsureOSImport)
		}

		s.applyTextRule(path, ledger, "Added basic server startup code", rules.AppendPythonBootstrap)
	}

	if !found {
		s.createFile(filepath.Join(root, "run.py"), rules.PythonRunScript, 0o644,
			ledger, "Created Python run script")
	}
}

func (s *FixService) fixDjangoSettings(root string, ledger *domain.FixLedger) {
	path := findFile(root, "settings.py")
	if path == "" {
		return
	}
	s.applyTextRule(path, ledger, "Fixed Django settings for production", rules.HardenDjangoSettings)
	s.applyTextRule(path, ledger, "Added os import for DEBUG environment variable", rules.EnsureOSImport)
}

// ── PHP rules ──

func (s *FixService) fixPHP(root string, ledger *domain.FixLedger) {
	path := filepath.Join(root, ".htaccess")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.createFile(path, rules.HTAccessContent, 0o644,
			ledger, "Created .htaccess file for PHP application")
	}
}

// ── Generic rules ──

func (s *FixService) rebindLoopbacks(root string, ledger *domain.FixLedger) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if fixSkipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !rebindExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}

		rel, _ := filepath.Rel(root, path)
		s.applyTextRule(path, ledger, "Fixed host binding in "+filepath.ToSlash(rel), rules.RebindLoopback)
		return nil
	})
}

func (s *FixService) ensureEnvFile(root string, report *domain.AnalysisReport, ledger *domain.FixLedger) {
	if len(report.Configuration.EnvFiles) > 0 {
		return
	}
	path := filepath.Join(root, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.createFile(path, rules.EnvFileContent, 0o644,
			ledger, "Created .env file with deployment configuration")
	}
}

func (s *FixService) writeConfigGuide(root string, report *domain.AnalysisReport, ledger *domain.FixLedger) {
	var findings []string
	for _, issue := range report.Issues {
		if issue.Kind == domain.IssueHardcodedConfig {
			findings = append(findings, issue.Description)
		}
	}
	if len(findings) == 0 {
		return
	}

	path := filepath.Join(root, "DEPLOYMENT_NOTES.md")
	if data, err := os.ReadFile(path); err == nil && rules.HasSentinel(string(data), rules.NotesHeader) {
		return
	}
	s.createFile(path, rules.NotesContent(findings), 0o644,
		ledger, "Created deployment configuration guide")
}

func (s *FixService) createStartupScript(root string, report *domain.AnalysisReport, ledger *domain.FixLedger) {
	var content, description string

	switch report.Stack.Primary {
	case domain.StackNodeJS:
		content, description = rules.NodeStartScript, "Created Node.js startup script"
	case domain.StackPython:
		description = "Created Python startup script"
		switch {
		case contains(report.Stack.Frameworks, "django"):
			content = rules.DjangoStartScript
		case contains(report.Stack.Frameworks, "flask"):
			content = rules.FlaskStartScript
		default:
			content = rules.PythonStartScript
		}
	default:
		return
	}

	path := filepath.Join(root, "start.sh")
	if data, err := os.ReadFile(path); err == nil && string(data) == content {
		return
	}
	s.createFile(path, content, 0o755, ledger, description)
}

// ── helpers ──

// applyTextRule reads one file, applies a pure content transform, and
// writes back only when the proposed content differs. Read and write
// failures are logged and skipped so later rules still run.
func (s *FixService) applyTextRule(path string, ledger *domain.FixLedger, description string, rule func(string) (string, bool)) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
		return
	}

	out, changed := rule(string(data))
	if !changed {
		return
	}

	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		s.log.Warn("skipping unwritable file", zap.String("path", path), zap.Error(err))
		return
	}
	ledger.Append(description)
}

func (s *FixService) createFile(path, content string, mode os.FileMode, ledger *domain.FixLedger, description string) {
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		s.log.Warn("failed to create file", zap.String("path", path), zap.Error(err))
		return
	}
	ledger.Append(description)
}

func readNodeMain(manifestPath string) string {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return ""
	}
	// A malformed manifest just falls back to the candidate list.
	var manifest struct {
		Main string `json:"main"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Main
}

func findFile(root, name string) string {
	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if fixSkipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == name {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
