package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/postsearch/internal/errors"
)

func TestLogs_ShowsEarlierCommands(t *testing.T) {
	home := isolate(t)

	// Given: a command that logged something
	_, _, err := execute(t, "--base-url", newSite(t), "query", "hello")
	require.NoError(t, err)

	// When: viewing the logs
	out, errOut, err := execute(t, "logs", "-n", "20")

	// Then: the query is listed
	require.NoError(t, err)
	assert.Contains(t, errOut, filepath.Join(home, ".postsearch", "logs", "postsearch.log"))
	assert.Contains(t, out, "query_started")
}

func TestLogs_LevelFilter(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "--base-url", newSite(t), "query", "hello")
	require.NoError(t, err)

	out, _, err := execute(t, "logs", "--level", "error")

	require.NoError(t, err)
	assert.NotContains(t, out, "query_started")
}

func TestLogs_InvalidFilter(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "--base-url", newSite(t), "query", "hello")
	require.NoError(t, err)

	_, _, err = execute(t, "logs", "--filter", "(")

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}

func TestLogs_MissingFile(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "logs", "--file", filepath.Join(t.TempDir(), "absent.log"))

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeLogNotFound, errors.GetCode(err))
}
