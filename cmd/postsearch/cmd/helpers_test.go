package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/postsearch/internal/record"
)

// isolate gives the test its own home and config directories and clears
// POSTSEARCH_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("NO_COLOR", "1")
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "POSTSEARCH_") {
			t.Setenv(name, "")
		}
	}
	return home
}

// newSite writes a generated site with a three-post index.
func newSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	records := []record.Record{
		{ID: "1", UserName: "alice", Content: "hello world", CreatedAt: "2024-03-05T09:07:00Z"},
		{ID: "2", UserName: "bob", Content: "say hello", CreatedAt: "2024-03-06T10:00:00Z"},
		{ID: "3", UserName: "carol", Content: "nothing here", CreatedAt: "2024-03-07T11:00:00Z"},
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)
	path := filepath.Join(dir, "assets", "search-index.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return dir
}

// execute runs the root command with args in an empty working directory.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--dir", t.TempDir()}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(dir, name, content string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
}

func captureOut(cmd interface {
	SetOut(w io.Writer)
	SetErr(w io.Writer)
}) *bytes.Buffer {
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	return &buf
}
