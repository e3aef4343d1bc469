package health

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadinessAllOK(t *testing.T) {
	c := NewChecker(zerolog.Nop())
	c.Register("cache", func(ctx context.Context) Status { return StatusOK })

	req := httptest.NewRequest("GET", "/readyz", nil)
	rec := httptest.NewRecorder()
	c.ReadinessHandler()(rec, req)

	require.Equal(t, 200, rec.Code)
}

func TestReadinessDown(t *testing.T) {
	c := NewChecker(zerolog.Nop())
	c.Register("cache", func(ctx context.Context) Status { return StatusDown })

	req := httptest.NewRequest("GET", "/readyz", nil)
	rec := httptest.NewRecorder()
	c.ReadinessHandler()(rec, req)

	assert.Equal(t, 503, rec.Code)
}

func TestLivenessAlwaysOK(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	LivenessHandler()(rec, req)

	assert.Equal(t, 200, rec.Code)
}

func TestIsReady(t *testing.T) {
	c := NewChecker(zerolog.Nop())
	c.Register("a", func(ctx context.Context) Status { return StatusOK })
	c.Register("b", func(ctx context.Context) Status { return StatusOK })

	assert.True(t, c.IsReady(context.Background()))

	c.Register("c", func(ctx context.Context) Status { return StatusDegraded })
	assert.False(t, c.IsReady(context.Background()))
}
