package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/promptdex/internal/config"
	dexerrors "github.com/Aman-CERP/promptdex/internal/errors"
	"github.com/Aman-CERP/promptdex/internal/scanner"
	"github.com/Aman-CERP/promptdex/internal/telemetry"
)

// startServer runs runServer on a loopback port until the test ends.
func startServer(t *testing.T, cfg *config.Config) string {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts := &rootOptions{cfg: cfg, logger: logger}
	a, err := opts.newApp(telemetry.New(""))
	require.NoError(t, err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServer(ctx, a, listener, logger) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})
	return "http://" + listener.Addr().String()
}

func getPrompts(t *testing.T, base string) []scanner.Document {
	t.Helper()
	resp, err := http.Get(base + "/api/prompts")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var docs []scanner.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&docs))
	return docs
}

func TestRunServer_ServesCatalog(t *testing.T) {
	isolateEnv(t)
	cfg := config.NewConfig()
	cfg.Scan.Root = newCatalog(t)
	base := startServer(t, cfg)

	// Then: the API lists every prompt
	assert.Len(t, getPrompts(t, base), 4)

	// And: unknown ids are 404 with the fixed body
	resp, err := http.Get(base + "/api/prompts/nope")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Prompt not found"}`, string(body))

	// And: metrics include the catalog operations
	resp, err = http.Get(base + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Contains(t, string(body), "promptdex_operations_total")
}

func TestRunServer_NoCacheSeesEditsImmediately(t *testing.T) {
	isolateEnv(t)
	cfg := config.NewConfig()
	cfg.Scan.Root = newCatalog(t)
	base := startServer(t, cfg)

	require.Len(t, getPrompts(t, base), 4)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Scan.Root, "Y", "echo.md"), []byte("new"), 0o644))

	assert.Len(t, getPrompts(t, base), 5)
}

func TestRunServer_WatchInvalidatesCache(t *testing.T) {
	// Given: a cache that would otherwise hold its snapshot for an hour
	isolateEnv(t)
	cfg := config.NewConfig()
	cfg.Scan.Root = newCatalog(t)
	cfg.Cache.Enabled = true
	cfg.Cache.Watch = true
	cfg.Cache.TTL = time.Hour
	base := startServer(t, cfg)
	require.Len(t, getPrompts(t, base), 4)

	// When: files are added under the root
	// Then: a later request sees them without waiting for the TTL
	deadline := time.Now().Add(10 * time.Second)
	for i := 0; time.Now().Before(deadline); i++ {
		if i%10 == 0 {
			// Keep writing in case the first event raced the watcher setup.
			name := filepath.Join(cfg.Scan.Root, "Y", fmt.Sprintf("new-%d.md", i))
			require.NoError(t, os.WriteFile(name, []byte("fresh"), 0o644))
		}
		if len(getPrompts(t, base)) > 4 {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatal("cache was not invalidated by the watcher")
}

func TestRunServer_WatchMissingRootKeepsServing(t *testing.T) {
	isolateEnv(t)
	cfg := config.NewConfig()
	cfg.Scan.Root = filepath.Join(t.TempDir(), "absent")
	cfg.Cache.Enabled = true
	cfg.Cache.Watch = true
	base := startServer(t, cfg)

	resp, err := http.Get(base + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(base + "/api/prompts")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestServeCmd_AddressInUse(t *testing.T) {
	// Given: a port that is already bound
	isolateEnv(t)
	root := newCatalog(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	// When: serving on the same address
	_, err = execute(t, "--root", root, "serve", "--addr", ln.Addr().String())

	// Then: the failure carries the serve error code and a hint
	require.Error(t, err)
	assert.Equal(t, dexerrors.ErrCodeServeFailed, dexerrors.GetCode(err))
	assert.Contains(t, dexerrors.FormatForCLI(err), "Hint: pass --addr")
}
