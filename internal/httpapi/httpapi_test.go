package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/promptdex/internal/catalog"
	dexerrors "github.com/Aman-CERP/promptdex/internal/errors"
	"github.com/Aman-CERP/promptdex/internal/query"
	"github.com/Aman-CERP/promptdex/internal/scanner"
	"github.com/Aman-CERP/promptdex/internal/telemetry"
)

// stubCatalog returns canned results and records the last list options.
type stubCatalog struct {
	docs     []scanner.Document
	cats     []query.CategorySummary
	err      error
	lastOpts query.Options
}

func (s *stubCatalog) List(_ context.Context, opts query.Options) ([]scanner.Document, error) {
	s.lastOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	return query.Filter(s.docs, opts), nil
}

func (s *stubCatalog) Get(_ context.Context, id string) (scanner.Document, error) {
	if s.err != nil {
		return scanner.Document{}, s.err
	}
	if doc, ok := query.Find(s.docs, id); ok {
		return doc, nil
	}
	return scanner.Document{}, dexerrors.New(dexerrors.ErrCodeDocumentNotFound, "prompt not found", nil)
}

func (s *stubCatalog) Categories(_ context.Context) ([]query.CategorySummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cats, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestListPrompts_PassesQueryParameters(t *testing.T) {
	// Given: a catalog with two documents
	stub := &stubCatalog{docs: []scanner.Document{
		{ID: "tools-alpha", Title: "Alpha", Category: "Tools", Content: "fast", Tags: []string{}},
		{ID: "docs-beta", Title: "Beta", Category: "Docs", Content: "slow", Tags: []string{}},
	}}
	router := NewRouter(stub, Options{Logger: quietLogger()})

	// When: requesting with search and category
	rec := do(t, router, http.MethodGet, "/api/prompts?search=FAST&category=Tools")

	// Then: options reach the catalog and the result is a JSON array
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, query.Options{Category: "Tools", Search: "FAST"}, stub.lastOpts)

	var docs []scanner.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "tools-alpha", docs[0].ID)
}

func TestListPrompts_EmptyIsArray(t *testing.T) {
	router := NewRouter(&stubCatalog{}, Options{Logger: quietLogger()})

	rec := do(t, router, http.MethodGet, "/api/prompts?search=zzz")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetPrompt(t *testing.T) {
	stub := &stubCatalog{docs: []scanner.Document{{ID: "a-x", Title: "X", Tags: []string{}}}}
	router := NewRouter(stub, Options{Logger: quietLogger()})

	t.Run("found", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/prompts/a-x")

		require.Equal(t, http.StatusOK, rec.Code)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, "a-x", doc["id"])
		assert.Equal(t, []any{}, doc["tags"])
		assert.NotContains(t, doc, "description")
	})

	t.Run("not found", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/prompts/nope")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Prompt not found", decodeError(t, rec))
	})
}

func TestListCategories(t *testing.T) {
	stub := &stubCatalog{cats: []query.CategorySummary{{Name: "X", Count: 3}, {Name: "Y", Count: 1}}}
	router := NewRouter(stub, Options{Logger: quietLogger()})

	rec := do(t, router, http.MethodGet, "/api/categories")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name":"X","count":3},{"name":"Y","count":1}]`, rec.Body.String())
}

func TestFailuresMapTo500(t *testing.T) {
	// Given: a catalog whose every call fails and a log buffer
	logs := &bytes.Buffer{}
	stub := &stubCatalog{err: errors.New("disk gone")}
	router := NewRouter(stub, Options{Logger: slog.New(slog.NewJSONHandler(logs, nil))})

	tests := []struct {
		target  string
		message string
	}{
		{target: "/api/prompts", message: "Failed to fetch prompts"},
		{target: "/api/prompts/a-x", message: "Failed to fetch prompt"},
		{target: "/api/categories", message: "Failed to fetch categories"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, router, http.MethodGet, tt.target)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, tt.message, decodeError(t, rec))
		})
	}

	// Then: each failure is logged at error level with its cause
	assert.Equal(t, 3, strings.Count(logs.String(), `"level":"ERROR"`))
	assert.Contains(t, logs.String(), "disk gone")
}

func TestHealth(t *testing.T) {
	rec := do(t, NewRouter(&stubCatalog{}, Options{Logger: quietLogger()}), http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	// Given: a router with metrics enabled
	m := telemetry.New("")
	router := NewRouter(&stubCatalog{}, Options{Logger: quietLogger(), Metrics: m})

	// When: a routed request is served and metrics are scraped
	_ = do(t, router, http.MethodGet, "/api/prompts/abc")
	rec := do(t, router, http.MethodGet, "/metrics")

	// Then: the request is counted by route pattern
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		`promptdex_http_requests_total{method="GET",route="/api/prompts/{id}",status="404"} 1`)
}

func TestMetricsEndpoint_DisabledWithoutCollector(t *testing.T) {
	rec := do(t, NewRouter(&stubCatalog{}, Options{Logger: quietLogger()}), http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORS(t *testing.T) {
	router := NewRouter(&stubCatalog{}, Options{
		Logger:         quietLogger(),
		AllowedOrigins: []string{"http://localhost:3000"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeaderIsLogged(t *testing.T) {
	logs := &bytes.Buffer{}
	router := NewRouter(&stubCatalog{}, Options{Logger: slog.New(slog.NewJSONHandler(logs, nil))})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "req-123")
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, logs.String(), `"request_id":"req-123"`)
	assert.Contains(t, logs.String(), `"msg":"http request"`)
}

// =============================================================================
// End-to-end over a real catalog
// =============================================================================

func TestRouter_WithRealCatalog(t *testing.T) {
	root := t.TempDir()
	for rel, content := range map[string]string{
		"Tools/Coding/agent.md":  "---\ntitle: code_agent\ntags: fast, local\n---\nwrite code",
		"Tools/Coding/agent.txt": "duplicate id",
		"Docs/readme.md":         "docs",
	} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	svc := catalog.New(catalog.NewScannerSource(
		scanner.New(scanner.Options{RootDir: root, Logger: quietLogger()}), nil),
		catalog.WithLogger(quietLogger()))
	router := NewRouter(svc, Options{Logger: quietLogger()})

	rec := do(t, router, http.MethodGet, "/api/prompts/tools-coding-agent")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc scanner.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Code Agent", doc.Title)
	assert.Equal(t, []string{"fast", "local"}, doc.Tags)

	rec = do(t, router, http.MethodGet, "/api/categories")
	assert.JSONEq(t, `[{"name":"Tools/Coding","count":2},{"name":"Docs","count":1}]`, rec.Body.String())
}

// =============================================================================
// Server lifecycle
// =============================================================================

func TestServer_ServeAndShutdown(t *testing.T) {
	// Given: a server on an ephemeral port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := NewServer("", NewRouter(&stubCatalog{}, Options{Logger: quietLogger()}), quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	// When: the health endpoint is queried
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + listener.Addr().String() + "/health")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Then: cancelling the context stops the server cleanly
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_ListenError(t *testing.T) {
	srv := NewServer("256.0.0.1:bad", http.NotFoundHandler(), quietLogger())

	err := srv.ListenAndServe(context.Background())

	assert.Error(t, err)
}
