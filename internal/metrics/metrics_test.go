package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/taskmanager-server/internal/apierror"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCollector_RecordRequest(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest(http.MethodGet, "/api/v0/tasks", http.StatusOK, 20*time.Millisecond)
	c.RecordRequest(http.MethodGet, "/api/v0/tasks", http.StatusOK, 30*time.Millisecond)
	c.RecordRequest(http.MethodPost, "/api/v0/auth/login", http.StatusUnauthorized, time.Millisecond)

	out := scrape(t, reg)
	assert.Contains(t, out, `http_requests_total{method="GET",route="/api/v0/tasks",status="200"} 2`)
	assert.Contains(t, out, `http_requests_total{method="POST",route="/api/v0/auth/login",status="401"} 1`)
	assert.Contains(t, out, `http_request_duration_seconds_count{method="GET",route="/api/v0/tasks"} 2`)
}

func TestCollector_RecordAuthOperation(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordAuthOperation("login", nil)
	c.RecordAuthOperation("login", apierror.NewErrInvalidCredentials())
	c.RecordAuthOperation("refresh", errors.New("boom"))

	out := scrape(t, reg)
	assert.Contains(t, out, `auth_operations_total{operation="login",result="success"} 1`)
	assert.Contains(t, out, `auth_operations_total{operation="login",result="unauthorized"} 1`)
	assert.Contains(t, out, `auth_operations_total{operation="refresh",result="internal"} 1`)
}

func TestNewCollector_DoubleRegisterPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	NewCollector(reg)

	assert.Panics(t, func() { NewCollector(reg) })
}
