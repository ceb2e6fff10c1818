package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiboi241-boop/EduScience/pkg/testutil"
)

func TestHealthHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("no backends", func(t *testing.T) {
		rr := httptest.NewRecorder()
		healthHandler(nil, log)(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		body := testutil.UnmarshalResponse[healthResponse](t, rr)
		assert.Equal(t, "ok", body.Status)
		assert.Empty(t, body.Checks)
	})

	t.Run("all backends reachable", func(t *testing.T) {
		rr := httptest.NewRecorder()
		healthHandler([]healthCheck{{"postgres", ok}, {"redis", ok}}, log)(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		body := testutil.UnmarshalResponse[healthResponse](t, rr)
		assert.Equal(t, map[string]string{"postgres": "ok", "redis": "ok"}, body.Checks)
	})

	t.Run("one backend down", func(t *testing.T) {
		rr := httptest.NewRecorder()
		healthHandler([]healthCheck{{"postgres", ok}, {"redis", down}}, log)(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.NotContains(t, rr.Body.String(), "connection refused")
		body := testutil.UnmarshalResponse[healthResponse](t, rr)
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "unavailable", body.Checks["redis"])
		assert.Equal(t, "ok", body.Checks["postgres"])
	})
}

func TestHealthzWithMemoryBackend(t *testing.T) {
	cfg := testConfig(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := buildApp(context.Background(), cfg, log, appMetrics{})
	require.NoError(t, err)
	defer a.Close()

	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := testutil.UnmarshalResponse[healthResponse](t, rr)
	assert.Equal(t, "ok", body.Status)
}
