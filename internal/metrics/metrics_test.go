package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRequestAndHandler(t *testing.T) {
	m := New()
	m.RecordRequest("GET", "/get", "200")
	m.RecordError("GET", "/get", "404")
	m.ObserveDuration("GET", "/get", 0.01)
	m.SyncCacheStats(10, 2, 1, 0, 5)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "cache_http_requests_total")
	assert.Contains(t, body, "cache_engine_current_size 5")
}

func TestNewRegistersIndependentRegistries(t *testing.T) {
	m1 := New()
	m2 := New()
	assert.NotPanics(t, func() {
		m1.RecordRequest("GET", "/x", "200")
		m2.RecordRequest("GET", "/x", "200")
	})
}
