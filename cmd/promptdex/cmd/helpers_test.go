package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/promptdex/internal/config"
)

// isolateEnv keeps user config, logs and PROMPTDEX_* out of the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, name := range []string{config.EnvRoot, config.EnvAddr, config.EnvLogLevel, config.EnvCacheEnabled, config.EnvCacheTTL} {
		t.Setenv(name, "")
	}
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

// newCatalog writes a small prompt tree and returns its root:
// X holds three prompts, Y holds one.
func newCatalog(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "prompts")
	files := map[string]string{
		"X/alpha.md":    "review the code",
		"X/bravo.md":    "---\ntitle: bravo bot\ntags: [testing, go]\n---\nwrite tests",
		"X/charlie.txt": "deploy",
		"Y/delta.md":    "summarize notes",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	logFile := filepath.Join(t.TempDir(), "server.log")
	cmd.SetArgs(append([]string{"--log-file", logFile}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}
