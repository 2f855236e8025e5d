package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/domain"
)

var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	".git":         true,
	"venv":         true,
	".venv":        true,
	"dist":         true,
}

// importantFiles are the fixed marker names flagged during the walk:
// manifests, READMEs, entry points, container definitions.
var importantFiles = map[string]bool{
	"README.md": true, "readme.md": true, "README.txt": true,
	"package.json": true, "requirements.txt": true, "setup.py": true,
	"Dockerfile": true, "docker-compose.yml": true,
	"Makefile": true, "makefile": true,
	".env": true, ".env.example": true,
	"config.json": true, "config.yml": true, "config.yaml": true,
	"app.py": true, "main.py": true, "index.js": true, "server.js": true,
	"index.html": true, "index.php": true,
}

// TreeScanner implements domain.ProjectScanner by walking the filesystem.
type TreeScanner struct {
	log *zap.Logger
}

func New(log *zap.Logger) *TreeScanner {
	return &TreeScanner{log: log}
}

// Scan walks root once and builds the file/directory inventory. An
// unreadable root degrades to an empty Structure; per-entry errors are
// logged and skipped. Purely observational, no side effects.
func (s *TreeScanner) Scan(root string) domain.Structure {
	structure := domain.Structure{FileTypes: map[string]int{}}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Warn("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			structure.DirCount++
			structure.Directories = append(structure.Directories, rel)
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") && name != ".env" && name != ".env.example" {
			return nil
		}

		structure.FileCount++
		if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
			structure.FileTypes[ext]++
		}
		if importantFiles[name] {
			structure.ImportantFiles = append(structure.ImportantFiles, rel)
		}
		return nil
	})
	if err != nil {
		// Only a missing or unreadable root reaches here; the report
		// degrades to an empty structure rather than failing the run.
		s.log.Warn("tree walk degraded", zap.String("root", root), zap.Error(err))
	}

	return structure
}
