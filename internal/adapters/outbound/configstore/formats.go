package configstore

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/preflight/preflight/internal/domain/rules"
)

func mergeJSONFile(path string, values map[string]string) error {
	existing := map[string]any{}
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &existing); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	for k, v := range values {
		existing[k] = v
	}

	out, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(out, '\n'), 0o644)
}

func loadJSONFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			values[k] = s
		}
	}
	return values, nil
}

func mergeYAMLFile(path string, values map[string]string) error {
	existing := map[string]any{}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &existing); err != nil {
			return err
		}
		if existing == nil {
			existing = map[string]any{}
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	for k, v := range values {
		existing[k] = v
	}

	out, err := yaml.Marshal(existing)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

// mergeEnvFile merges namespaced variables into an existing dotenv
// file, keeping variables the project already declares.
func mergeEnvFile(path string, values map[string]string) error {
	existing, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		existing = map[string]string{}
	}

	for k, v := range values {
		existing[envKey(k)] = v
	}
	return godotenv.Write(existing, path)
}

// writeRuntimeEnv writes the runtime configuration file consumed by
// startup scripts. Unlike mergeEnvFile it owns the whole file.
func writeRuntimeEnv(path string, values map[string]string) error {
	vars := make(map[string]string, len(values))
	for k, v := range values {
		vars[envKey(k)] = v
	}
	return godotenv.Write(vars, path)
}

func loadRuntimeEnv(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	values := map[string]string{}
	for k, v := range vars {
		if strings.HasPrefix(k, envPrefix) {
			values[strings.ToLower(strings.TrimPrefix(k, envPrefix))] = v
		}
	}
	return values, nil
}

// appendPythonConfig appends module-level assignments under the config
// sentinel; reapplying is a no-op.
func appendPythonConfig(path string, values map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	content := string(data)
	if rules.HasSentinel(content, rules.ConfigSentinel) {
		return nil
	}

	var b strings.Builder
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n" + rules.ConfigSentinel + "\n")
	for _, k := range sortedKeys(values) {
		b.WriteString(envKey(k) + " = " + pyLiteral(values[k]) + "\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func appendGenericConfig(path string, values map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	out, changed := rules.AppendAdvisory(string(data), values)
	if !changed {
		return nil
	}
	return os.WriteFile(path, []byte(out), 0o644)
}

func pyLiteral(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
