package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/postsearch/internal/config"
)

func TestConfigShow_YAML(t *testing.T) {
	isolate(t)

	// When: showing the effective config
	out, _, err := execute(t, "config", "show")

	// Then: defaults are printed as YAML
	require.NoError(t, err)
	assert.Contains(t, out, "mode: static")
	assert.Contains(t, out, "max_results: 20")
	assert.Contains(t, out, "debounce: 300ms")
}

func TestConfigShow_FlagsApply(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "--mode", "remote", "--base-url", "https://blog.example.com", "config", "show", "--json")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "remote", cfg.Mode)
	assert.Equal(t, "https://blog.example.com", cfg.Site.BaseURL)
}

func TestConfigShow_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("POSTSEARCH_MAX_RESULTS", "5")

	out, _, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "max_results: 5")
}

func TestConfigInit_CreatesFile(t *testing.T) {
	isolate(t)

	// When: initializing without an existing file
	out, _, err := execute(t, "config", "init")

	// Then: the defaults are written
	require.NoError(t, err)
	assert.Contains(t, out, "Created user configuration")
	cfg, err := config.LoadUserConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, config.NewConfig(), cfg)
}

func TestConfigInit_ExistingWithoutForce(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "config", "init")
	require.NoError(t, err)

	out, _, err := execute(t, "config", "init")

	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestConfigInit_ForceBacksUpAndKeepsSettings(t *testing.T) {
	isolate(t)

	// Given: an old user config with one setting
	path := config.GetUserConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("mode: remote\n"), 0o644))

	// When: upgrading
	out, _, err := execute(t, "config", "init", "--force")

	// Then: a backup exists and the setting survives next to the defaults
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration upgraded")

	backups, err := config.ListUserConfigBackups()
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	cfg, err := config.LoadUserConfig()
	require.NoError(t, err)
	assert.Equal(t, "remote", cfg.Mode)
	assert.Equal(t, 20, cfg.Search.MaxResults)
}

func TestConfigPath(t *testing.T) {
	home := isolate(t)

	out, _, err := execute(t, "config", "path")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "postsearch", "config.yaml")+"\n", out)
}
