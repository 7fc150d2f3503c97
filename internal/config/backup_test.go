package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupUserConfig_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := BackupUserConfig()

	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestBackupUserConfig_CopiesContent(t *testing.T) {
	// Given: an existing user config
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	content := "mode: remote\n"
	require.NoError(t, os.MkdirAll(GetUserConfigDir(), 0755))
	require.NoError(t, os.WriteFile(GetUserConfigPath(), []byte(content), 0644))

	// When: backing it up
	path, err := BackupUserConfig()

	// Then: the backup sits next to it with the same content
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "config.yaml.bak."))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestBackupUserConfig_KeepsNewest(t *testing.T) {
	// Given: a user config backed up more times than are kept
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, os.MkdirAll(GetUserConfigDir(), 0755))
	require.NoError(t, os.WriteFile(GetUserConfigPath(), []byte("mode: static\n"), 0644))

	var last string
	for range KeepBackups + 2 {
		p, err := BackupUserConfig()
		require.NoError(t, err)
		last = p
		time.Sleep(2 * time.Millisecond)
	}

	// Then: only KeepBackups remain, newest first
	backups, err := ListUserConfigBackups()
	require.NoError(t, err)
	assert.Len(t, backups, KeepBackups)
	assert.Equal(t, last, backups[0])
}

func TestBackupUserConfig_KeepsPermissions(t *testing.T) {
	// Given: a user config readable only by its owner
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, os.MkdirAll(GetUserConfigDir(), 0755))
	require.NoError(t, os.WriteFile(GetUserConfigPath(), []byte("mode: remote\n"), 0600))

	// When: backing it up
	path, err := BackupUserConfig()
	require.NoError(t, err)

	// Then: the copy is not more readable than the original
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestListUserConfigBackups_NoDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "missing"))

	backups, err := ListUserConfigBackups()

	require.NoError(t, err)
	assert.Empty(t, backups)
}
