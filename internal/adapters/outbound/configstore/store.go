// Package configstore persists deployment configuration into a project
// tree. Every format follows the same contract: read the existing
// document if present, shallow-merge new keys over old, write back in
// the same format. Formats without a structured representation get a
// sentinel-guarded appended section instead.
package configstore

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fatih/camelcase"
	"go.uber.org/zap"
)

const (
	configFileName = "preflight.json"
	envFileName    = ".preflight.env"
	envPrefix      = "PREFLIGHT_"
)

var supportedConfigNames = map[string]bool{
	"config.json": true,
	"config.yaml": true,
	"config.yml":  true,
	"config.ini":  true,
	".env":        true,
	"settings.py": true,
	"app.config":  true,
}

// Store implements domain.ConfigStore on the local filesystem.
type Store struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Store {
	return &Store{log: log}
}

// Setup merges values into every discovered configuration file, creates
// preflight.json when the project has none, and always writes the
// runtime env file. A failure on one file is logged and skipped; the
// remaining files are still updated.
func (s *Store) Setup(root string, values map[string]string) error {
	existing := s.findConfigFiles(root)

	if len(existing) == 0 {
		path := filepath.Join(root, configFileName)
		if err := mergeJSONFile(path, values); err != nil {
			return fmt.Errorf("creating %s: %w", configFileName, err)
		}
		s.log.Info("created configuration file", zap.String("path", path))
	}

	for _, path := range existing {
		if err := s.updateConfigFile(path, values); err != nil {
			s.log.Warn("skipping config file", zap.String("path", path), zap.Error(err))
		}
	}

	if err := writeRuntimeEnv(filepath.Join(root, envFileName), values); err != nil {
		return fmt.Errorf("writing %s: %w", envFileName, err)
	}
	return nil
}

// Load reads configuration back, preferring the structured document
// over the runtime env file. Returns nil when neither exists.
func (s *Store) Load(root string) (map[string]string, error) {
	if values, err := loadJSONFile(filepath.Join(root, configFileName)); err != nil {
		return nil, err
	} else if values != nil {
		return values, nil
	}
	return loadRuntimeEnv(filepath.Join(root, envFileName))
}

func (s *Store) findConfigFiles(root string) []string {
	var found []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			if err == nil && (d.Name() == "node_modules" || d.Name() == ".git" || d.Name() == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if supportedConfigNames[name] || strings.HasSuffix(name, ".config") || strings.HasSuffix(name, ".conf") {
			found = append(found, path)
		}
		return nil
	})
	s.log.Debug("discovered configuration files", zap.Int("count", len(found)))
	return found
}

func (s *Store) updateConfigFile(path string, values map[string]string) error {
	name := filepath.Base(path)
	switch {
	case strings.HasSuffix(name, ".json"):
		return mergeJSONFile(path, values)
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		return mergeYAMLFile(path, values)
	case name == ".env" || strings.HasSuffix(name, ".env"):
		return mergeEnvFile(path, values)
	case strings.HasSuffix(name, ".py"):
		return appendPythonConfig(path, values)
	default:
		return appendGenericConfig(path, values)
	}
}

// envKey converts a configuration key to its environment variable name:
// "deploymentTime" becomes PREFLIGHT_DEPLOYMENT_TIME.
func envKey(key string) string {
	words := camelcase.Split(key)
	for i, w := range words {
		words[i] = strings.ToUpper(w)
	}
	return envPrefix + strings.Join(words, "_")
}
