package probe

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/domain"
)

// databaseIndicators maps each backend to the fixed set of content
// strings that mark it as detected: connection-URI schemes and common
// driver package names.
var databaseIndicators = map[domain.DatabaseKind][]string{
	domain.DatabaseMongoDB:    {"mongodb://", "mongoose", "mongo"},
	domain.DatabasePostgreSQL: {"postgresql://", "psycopg2", "pg"},
	domain.DatabaseMySQL:      {"mysql://", "pymysql", "mysql2"},
	domain.DatabaseSQLite:     {"sqlite", ".db", ".sqlite3"},
	domain.DatabaseRedis:      {"redis://", "redis"},
}

// entryFiles is the fixed list of conventional entry points scanned for
// port hints.
var entryFiles = []string{"app.py", "main.py", "server.js", "index.js", "app.js"}

// portPatterns are loosely anchored: a configuration word eventually
// followed by digits. They trade precision for recall; the [1000,65535]
// range check filters the worst noise.
var portPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)port.*?(\d+)`),
	regexp.MustCompile(`(?i)listen.*?(\d+)`),
	regexp.MustCompile(`(?i)server.*?(\d+)`),
}

var probeExtensions = map[string]bool{
	".json": true, ".yml": true, ".yaml": true,
	".env": true, ".py": true, ".js": true,
}

var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	".git":         true,
}

// Prober implements domain.ConfigProber. Both heuristics are
// best-effort signals over readable text files; false negatives are
// expected and acceptable, undecodable files are skipped silently.
type Prober struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Prober {
	return &Prober{log: log}
}

func (p *Prober) Probe(root string) domain.Configuration {
	cfg := domain.Configuration{}

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		name := d.Name()
		lower := strings.ToLower(name)

		if isConfigFile(name) {
			cfg.ConfigFiles = append(cfg.ConfigFiles, rel)
		}
		if strings.HasPrefix(name, ".env") || strings.Contains(lower, "environment") {
			cfg.EnvFiles = append(cfg.EnvFiles, rel)
		}
		if strings.HasPrefix(lower, "docker") || name == "Dockerfile" {
			cfg.ContainerFiles = append(cfg.ContainerFiles, rel)
		}
		return nil
	})

	cfg.DatabaseHints = p.databaseHints(root)
	cfg.PortHints = p.portHints(root)

	p.log.Debug("configuration probe finished",
		zap.Int("config_files", len(cfg.ConfigFiles)),
		zap.Int("database_hints", len(cfg.DatabaseHints)),
		zap.Ints("port_hints", cfg.PortHints))
	return cfg
}

func isConfigFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "config.") ||
		strings.HasSuffix(lower, ".config") ||
		strings.HasSuffix(lower, ".conf")
}

func (p *Prober) databaseHints(root string) []domain.DatabaseKind {
	detected := map[domain.DatabaseKind]bool{}

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !probeExtensions[strings.ToLower(filepath.Ext(d.Name()))] && d.Name() != ".env" {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		content := strings.ToLower(string(data))
		for kind, indicators := range databaseIndicators {
			if detected[kind] {
				continue
			}
			for _, indicator := range indicators {
				if strings.Contains(content, indicator) {
					detected[kind] = true
					break
				}
			}
		}
		return nil
	})

	if len(detected) == 0 {
		return nil
	}
	kinds := make([]domain.DatabaseKind, 0, len(detected))
	for kind := range detected {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// portHints scans only the conventional entry files and accepts only
// integers in [1000, 65535], deduplicated and sorted.
func (p *Prober) portHints(root string) []int {
	seen := map[int]bool{}

	for _, name := range entryFiles {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		content := string(data)
		for _, pattern := range portPatterns {
			for _, match := range pattern.FindAllStringSubmatch(content, -1) {
				port, convErr := strconv.Atoi(match[1])
				if convErr != nil {
					continue
				}
				if port >= 1000 && port <= 65535 {
					seen[port] = true
				}
			}
		}
	}

	if len(seen) == 0 {
		return nil
	}
	ports := make([]int, 0, len(seen))
	for port := range seen {
		ports = append(ports, port)
	}
	sort.Ints(ports)
	return ports
}
