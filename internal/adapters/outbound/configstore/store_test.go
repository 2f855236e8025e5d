package configstore_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/preflight/preflight/internal/adapters/outbound/configstore"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSetup_CreatesConfigWhenProjectHasNone(t *testing.T) {
	root := t.TempDir()
	store := configstore.New(zap.NewNop())

	require.NoError(t, store.Setup(root, map[string]string{"domain": "example.com"}))

	data, err := os.ReadFile(filepath.Join(root, "preflight.json"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "example.com", doc["domain"])

	assert.FileExists(t, filepath.Join(root, ".preflight.env"))
}

func TestSetup_MergePreservesExistingJSONKeys(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config.json", `{"a": 1}`)
	store := configstore.New(zap.NewNop())

	require.NoError(t, store.Setup(root, map[string]string{"b": "2"}))

	data, err := os.ReadFile(filepath.Join(root, "config.json"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, float64(1), doc["a"])
	assert.Equal(t, "2", doc["b"])
}

func TestSetup_MergePreservesExistingYAMLKeys(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config.yaml", "region: eu-west\n")
	store := configstore.New(zap.NewNop())

	require.NoError(t, store.Setup(root, map[string]string{"domain": "example.com"}))

	data, err := os.ReadFile(filepath.Join(root, "config.yaml"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "eu-west", doc["region"])
	assert.Equal(t, "example.com", doc["domain"])
}

func TestSetup_EnvFileGetsNamespacedKeys(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".env", "EXISTING=1\n")
	store := configstore.New(zap.NewNop())

	require.NoError(t, store.Setup(root, map[string]string{"deploymentTime": "2026-08-24"}))

	vars, err := godotenv.Read(filepath.Join(root, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "1", vars["EXISTING"])
	assert.Equal(t, "2026-08-24", vars["PREFLIGHT_DEPLOYMENT_TIME"])
}

func TestSetup_PythonConfigSentinelGuarded(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "settings.py", "DEBUG = False\n")
	store := configstore.New(zap.NewNop())

	values := map[string]string{"domain": "example.com"}
	require.NoError(t, store.Setup(root, values))
	first, err := os.ReadFile(filepath.Join(root, "settings.py"))
	require.NoError(t, err)
	assert.Contains(t, string(first), `PREFLIGHT_DOMAIN = "example.com"`)

	require.NoError(t, store.Setup(root, values))
	second, err := os.ReadFile(filepath.Join(root, "settings.py"))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestLoad_PrefersStructuredDocument(t *testing.T) {
	root := t.TempDir()
	store := configstore.New(zap.NewNop())
	require.NoError(t, store.Setup(root, map[string]string{"domain": "example.com", "username": "admin"}))

	values, err := store.Load(root)
	require.NoError(t, err)
	assert.Equal(t, "example.com", values["domain"])
	assert.Equal(t, "admin", values["username"])
}

func TestLoad_FallsBackToRuntimeEnv(t *testing.T) {
	root := t.TempDir()
	store := configstore.New(zap.NewNop())
	require.NoError(t, store.Setup(root, map[string]string{"domain": "example.com"}))
	require.NoError(t, os.Remove(filepath.Join(root, "preflight.json")))

	values, err := store.Load(root)
	require.NoError(t, err)
	assert.Equal(t, "example.com", values["domain"])
}

func TestLoad_EmptyProject(t *testing.T) {
	values, err := configstore.New(zap.NewNop()).Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, values)
}
