package server

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/filesystem-mcp/internal/api/mcp"
	"github.com/GriffinCanCode/filesystem-mcp/internal/infrastructure/config"
	"github.com/GriffinCanCode/filesystem-mcp/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/filesystem-mcp/internal/testutil"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) (*Server, string) {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.Filesystem.AllowedRoot = root
	cfg.Logging.Level = "error"
	if mutate != nil {
		mutate(cfg)
	}

	srv, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	return srv, srv.Root()
}

func send(srv *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNewServerRejectsBadRoot(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "error"

	cfg.Filesystem.AllowedRoot = filepath.Join(t.TempDir(), "missing")
	_, err := NewServer(cfg)
	assert.ErrorContains(t, err, "does not exist")

	file := testutil.WriteFile(t, t.TempDir(), "file.txt", "x")
	cfg.Filesystem.AllowedRoot = file
	_, err = NewServer(cfg)
	assert.ErrorContains(t, err, "not a directory")

	cfg.Filesystem.AllowedRoot = t.TempDir()
	cfg.Logging.Level = "loud"
	_, err = NewServer(cfg)
	assert.Error(t, err)
}

func TestMCPFlowThroughMiddleware(t *testing.T) {
	srv, root := newTestServer(t, nil)
	testutil.WriteFile(t, root, "docs/readme.md", "# hi")

	w := send(srv, http.MethodPost, MCPPath,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18"}}`,
		map[string]string{"Origin": "http://localhost:3000"})
	require.Equal(t, http.StatusOK, w.Code)
	sessionID := w.Header().Get(mcp.SessionHeader)
	require.NotEmpty(t, sessionID)
	assert.NotEmpty(t, w.Header().Get(tracing.TraceHeader))
	assert.Contains(t, w.Body.String(), root)

	w = send(srv, http.MethodPost, MCPPath,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"list_directory","arguments":{"path":"docs"}}}`,
		map[string]string{mcp.SessionHeader: sessionID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "readme.md")
	assert.Contains(t, w.Body.String(), `"isError":false`)

	w = send(srv, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fsmcp_sessions_active 1")
	assert.Contains(t, w.Body.String(), `fsmcp_tool_calls_total{service="filesystem",status="success",tool="list_directory"} 1`)
}

func TestCORSExposesSessionHeader(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := send(srv, http.MethodOptions, MCPPath, "", map[string]string{
		"Origin":                        "http://localhost:3000",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Less(t, w.Code, 300)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = send(srv, http.MethodGet, "/health", "", map[string]string{"Origin": "http://localhost:3000"})
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), mcp.SessionHeader)
}

func TestBodyLimit(t *testing.T) {
	srv, _ := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.MaxBodyBytes = 64
	})

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"padding":"` + strings.Repeat("x", 128) + `"}}`
	w := send(srv, http.MethodPost, MCPPath, body, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRateLimit(t *testing.T) {
	srv, _ := newTestServer(t, func(cfg *config.Config) {
		cfg.RateLimit.RequestsPerSecond = 1
		cfg.RateLimit.Burst = 2
	})

	var codes []int
	for i := 0; i < 4; i++ {
		codes = append(codes, send(srv, http.MethodGet, "/health", "", nil).Code)
	}
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes, http.StatusTooManyRequests)
}
