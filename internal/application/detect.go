package application

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/domain"
)

// largeFileThreshold flags files likely to break deployment tooling.
const largeFileThreshold = 100 * 1024 * 1024

// sensitiveKeywords is scanned case-insensitively against text files.
// This matches the literal word, not semantic use: "password" in a
// comment or variable name triggers it too. That imprecision is a
// documented limitation of the heuristic, not a bug to fix here.
var sensitiveKeywords = []struct {
	keyword     string
	description string
}{
	{"localhost", "Hardcoded localhost references found"},
	{"127.0.0.1", "Hardcoded local IP addresses found"},
	{"password", "Potential hardcoded passwords found"},
	{"secret", "Potential hardcoded secrets found"},
}

var textExtensions = map[string]bool{
	".py": true, ".js": true, ".json": true, ".yml": true, ".yaml": true,
}

var detectSkipDirs = map[string]bool{
	"node_modules": true,
	"__pycache__":  true,
	"vendor":       true,
	".git":         true,
}

// DetectIssues combines stack, structure and configuration into the
// severity-tagged list of deployment risks. Rules are independent and
// order-preserving in the output.
func DetectIssues(root string, stack domain.Stack, structure domain.Structure, cfg domain.Configuration, log *zap.Logger) []domain.Issue {
	var issues []domain.Issue

	if stack.Primary == domain.StackNodeJS && !structure.HasImportantFile("package.json") {
		issues = append(issues, domain.Issue{
			Kind:        domain.IssueMissingManifest,
			Severity:    domain.SeverityHigh,
			Description: "Missing package.json file for Node.js project",
		})
	}

	if stack.Primary == domain.StackPython &&
		!structure.HasImportantFile("requirements.txt") && !structure.HasImportantFile("setup.py") {
		issues = append(issues, domain.Issue{
			Kind:        domain.IssueMissingManifest,
			Severity:    domain.SeverityMedium,
			Description: "Missing requirements.txt or setup.py for Python project",
		})
	}

	issues = append(issues, hardcodedConfigIssues(root)...)

	if len(cfg.EnvFiles) == 0 {
		issues = append(issues, domain.Issue{
			Kind:        domain.IssueMissingEnv,
			Severity:    domain.SeverityLow,
			Description: "No environment configuration files found",
		})
	}

	if large := largeFiles(root, log); len(large) > 0 {
		shown := large
		if len(shown) > 5 {
			shown = shown[:5]
		}
		issues = append(issues, domain.Issue{
			Kind:        domain.IssueLargeFiles,
			Severity:    domain.SeverityMedium,
			Description: "Large files found that may cause deployment issues: " + strings.Join(shown, ", "),
		})
	}

	return issues
}

// hardcodedConfigIssues reports at most one finding per file: the first
// matching keyword wins.
func hardcodedConfigIssues(root string) []domain.Issue {
	var issues []domain.Issue

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if detectSkipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !textExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		content := strings.ToLower(string(data))
		rel, _ := filepath.Rel(root, path)

		for _, k := range sensitiveKeywords {
			if strings.Contains(content, k.keyword) {
				issues = append(issues, domain.Issue{
					Kind:        domain.IssueHardcodedConfig,
					Severity:    domain.SeverityMedium,
					Description: fmt.Sprintf("%s in %s", k.description, filepath.ToSlash(rel)),
				})
				break
			}
		}
		return nil
	})

	return issues
}

func largeFiles(root string, log *zap.Logger) []string {
	var found []string

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			log.Debug("skipping unstatable file", zap.String("path", path), zap.Error(infoErr))
			return nil
		}
		if info.Size() > largeFileThreshold {
			rel, _ := filepath.Rel(root, path)
			found = append(found, filepath.ToSlash(rel))
		}
		return nil
	})

	return found
}
