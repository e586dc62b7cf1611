package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveIssue("issued", 3*time.Millisecond)
	m.ObserveIssue("issued", time.Millisecond)
	m.ObserveIssue("rejected", 0)
	m.ObserveLogin("invalid")
	m.ObserveRequest("/health", http.MethodGet, 200, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.presign.WithLabelValues("issued")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.presign.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/health", "GET", "200")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveIssue("failed", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `pdfdrop_presign_total{outcome="failed"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveLogin("success")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.logins.WithLabelValues("success")))
}
