package classifier

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/domain"
)

// nodeFrameworks are matched case-sensitively against declared
// dependency keys of the package manifest.
var nodeFrameworks = []string{"express", "react", "vue", "angular", "next"}

// pythonFrameworks are matched case-insensitively against the free-text
// requirements list.
var pythonFrameworks = []string{"django", "flask", "fastapi", "streamlit"}

// StackClassifier implements domain.StackClassifier by inspecting
// manifest files at the project root.
type StackClassifier struct {
	log *zap.Logger
}

func New(log *zap.Logger) *StackClassifier {
	return &StackClassifier{log: log}
}

// Classify resolves the primary stack by a fixed decision order: the
// first ecosystem whose manifest is present wins. Ecosystems matched
// later are recorded as technologies only, never promoted. A project
// with no recognized manifest is always "unknown"; the fallback is
// never inferred probabilistically.
func (c *StackClassifier) Classify(root string) domain.Stack {
	stack := domain.Stack{Primary: domain.StackUnknown}

	if exists(root, "package.json") {
		stack.Primary = domain.StackNodeJS
		stack.Technologies = append(stack.Technologies, "javascript")
		stack.Frameworks = append(stack.Frameworks, c.nodeFrameworks(root)...)
	}

	if exists(root, "requirements.txt") || exists(root, "setup.py") || exists(root, "pyproject.toml") {
		if stack.Primary == domain.StackUnknown {
			stack.Primary = domain.StackPython
		}
		stack.Technologies = append(stack.Technologies, "python")
		stack.Frameworks = append(stack.Frameworks, c.pythonFrameworks(root)...)
	}

	if exists(root, "composer.json") || hasRootFilesWithExt(root, ".php") {
		if stack.Primary == domain.StackUnknown {
			stack.Primary = domain.StackPHP
		}
		stack.Technologies = append(stack.Technologies, "php")
	}

	if exists(root, "go.mod") || exists(root, "go.sum") {
		if stack.Primary == domain.StackUnknown {
			stack.Primary = domain.StackGo
		}
		stack.Technologies = append(stack.Technologies, "go")
	}

	if exists(root, "Gemfile") {
		if stack.Primary == domain.StackUnknown {
			stack.Primary = domain.StackRuby
		}
		stack.Technologies = append(stack.Technologies, "ruby")
	}

	if hasRootFilesWithExt(root, ".html") {
		if stack.Primary == domain.StackUnknown {
			stack.Primary = domain.StackStatic
		}
		stack.Technologies = append(stack.Technologies, "html")
	}

	c.log.Debug("classified project",
		zap.String("root", root),
		zap.String("primary", string(stack.Primary)),
		zap.Strings("frameworks", stack.Frameworks))
	return stack
}

// nodeFrameworks enriches from package.json dependencies. A parse
// failure skips enrichment only; stack detection by file presence has
// already succeeded, and the failure surfaces later as a dependency
// inspection issue.
func (c *StackClassifier) nodeFrameworks(root string) []string {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		c.log.Warn("reading package.json", zap.Error(err))
		return nil
	}

	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		c.log.Warn("parsing package.json, skipping framework enrichment", zap.Error(err))
		return nil
	}

	declared := make(map[string]bool, len(manifest.Dependencies)+len(manifest.DevDependencies))
	for name := range manifest.Dependencies {
		declared[name] = true
	}
	for name := range manifest.DevDependencies {
		declared[name] = true
	}

	var found []string
	for _, fw := range nodeFrameworks {
		if declared[fw] || (fw == "next" && declared["nextjs"]) {
			found = append(found, fw)
		}
	}
	return found
}

func (c *StackClassifier) pythonFrameworks(root string) []string {
	data, err := os.ReadFile(filepath.Join(root, "requirements.txt"))
	if err != nil {
		return nil
	}

	requirements := strings.ToLower(string(data))
	var found []string
	for _, fw := range pythonFrameworks {
		if strings.Contains(requirements, fw) {
			found = append(found, fw)
		}
	}
	return found
}

func exists(root, name string) bool {
	_, err := os.Stat(filepath.Join(root, name))
	return err == nil
}

func hasRootFilesWithExt(root, ext string) bool {
	entries, err := os.ReadDir(root)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
			return true
		}
	}
	return false
}
