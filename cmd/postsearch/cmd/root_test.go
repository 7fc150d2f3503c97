package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/postsearch/internal/errors"
)

func TestRootCmd_HasSubcommands(t *testing.T) {
	// Given: the root command
	root := NewRootCmd()

	// Then: every subcommand is registered
	for _, name := range []string{"query", "browse", "serve", "config", "logs", "version"} {
		found, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
}

func TestRootCmd_ShowsHelp(t *testing.T) {
	isolate(t)

	// When: executing with --help
	out, _, err := execute(t, "--help")

	// Then: usage is shown
	require.NoError(t, err)
	assert.Contains(t, out, "postsearch")
	assert.Contains(t, out, "Usage:")
}

func TestRootCmd_InvalidModeFlag(t *testing.T) {
	isolate(t)

	// When: passing an unknown mode
	_, _, err := execute(t, "--mode", "hybrid", "query", "hello")

	// Then: a fatal config error is returned
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
	assert.True(t, errors.IsFatal(err))
}

func TestRootCmd_ProjectConfigIsRead(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, writeFile(dir, ".postsearch.yaml", "mode: remote\n"))

	// When: showing the config for that directory
	root := NewRootCmd()
	out := captureOut(root)
	root.SetArgs([]string{"--dir", dir, "config", "show"})
	require.NoError(t, root.Execute())

	// Then: the project file applied
	assert.Contains(t, out.String(), "mode: remote")
}
