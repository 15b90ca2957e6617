package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewMetricsIsolated(t *testing.T) {
	// Two collectors in one process must not panic on registration.
	a := NewMetrics()
	b := NewMetrics()

	a.RecordServiceCall("filesystem", "read_file", "success", time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.ServiceCalls.WithLabelValues("filesystem", "read_file", "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ServiceCalls.WithLabelValues("filesystem", "read_file", "success")))
}

func TestToolAndSessionMetrics(t *testing.T) {
	m := NewMetrics()

	m.RecordServiceError("filesystem", "read_file", "NOT_FOUND")
	m.RecordServiceError("filesystem", "read_file", "NOT_FOUND")
	m.SetSessionsActive(3)
	m.IncSessionsCreated()
	m.AddSessionsExpired(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ServiceErrors.WithLabelValues("filesystem", "read_file", "NOT_FOUND")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SessionsActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionsExpired))
	assert.Greater(t, m.Uptime(), time.Duration(0))
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/items/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/items/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "fsmcp_http_requests_total")
	assert.Contains(t, body, "fsmcp_uptime_seconds")
	assert.Contains(t, body, "go_goroutines")
}
