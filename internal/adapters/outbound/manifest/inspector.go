package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/domain"
)

// installerVerbs are tool tokens excluded when harvesting package names
// from container-definition install lines.
var installerVerbs = map[string]bool{
	"apt-get": true,
	"install": true,
	"update":  true,
	"upgrade": true,
}

var (
	aptInstallLine = regexp.MustCompile(`apt-get install[^\n\r]*`)
	packageToken   = regexp.MustCompile(`\w+(?:-\w+)*`)
)

// Inspector implements domain.DependencyInspector. Every read or parse
// failure is captured as a soft issue; inspection continues with
// whatever succeeded and never aborts the pass.
type Inspector struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Inspector {
	return &Inspector{log: log}
}

func (i *Inspector) Inspect(root string, stack domain.Stack) domain.Dependencies {
	deps := domain.Dependencies{}

	if node, err := i.nodeManifest(root); err != nil {
		deps.Issues = append(deps.Issues, fmt.Sprintf("Failed to parse package.json: %v", err))
	} else if node != nil {
		deps.Node = node
	}

	if reqs, err := i.pythonRequirements(root); err != nil {
		deps.Issues = append(deps.Issues, fmt.Sprintf("Failed to parse requirements.txt: %v", err))
	} else {
		deps.PythonRequirements = reqs
	}

	if pkgs, err := i.systemPackages(root); err != nil {
		deps.Issues = append(deps.Issues, fmt.Sprintf("Failed to parse Dockerfile: %v", err))
	} else {
		deps.SystemPackages = pkgs
	}

	if len(deps.Issues) > 0 {
		i.log.Warn("dependency inspection degraded", zap.Strings("issues", deps.Issues))
	}
	return deps
}

func (i *Inspector) nodeManifest(root string) (*domain.NodeManifest, error) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var raw struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
		Scripts         map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	return &domain.NodeManifest{
		Dependencies:    raw.Dependencies,
		DevDependencies: raw.DevDependencies,
		Scripts:         raw.Scripts,
	}, nil
}

func (i *Inspector) pythonRequirements(root string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(root, "requirements.txt"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var reqs []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			reqs = append(reqs, line)
		}
	}
	return reqs, nil
}

// systemPackages harvests candidate package names from apt-get install
// command lines in the Dockerfile. Line-scoped heuristic: tool verbs are
// excluded, everything else word-shaped is kept.
func (i *Inspector) systemPackages(root string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(root, "Dockerfile"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var pkgs []string
	for _, line := range aptInstallLine.FindAllString(string(data), -1) {
		for _, token := range packageToken.FindAllString(line, -1) {
			if !installerVerbs[token] {
				pkgs = append(pkgs, token)
			}
		}
	}
	return pkgs, nil
}
