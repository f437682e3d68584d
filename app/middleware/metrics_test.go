package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsudoi-app/tsudoi/config"
)

func TestNewMetricsServer(t *testing.T) {
	t.Run("ListensOnConfiguredPort", func(t *testing.T) {
		srv := NewMetricsServer(config.MetricsConfig{Enabled: true, Port: 9090, Path: "/metrics"})
		require.NotNil(t, srv)
		assert.Equal(t, ":9090", srv.Addr)
	})

	t.Run("ServesScrapeEndpoint", func(t *testing.T) {
		srv := NewMetricsServer(config.MetricsConfig{Enabled: true, Port: 9090, Path: "/metrics"})

		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "# HELP")
	})

	t.Run("DefaultsPathWhenEmpty", func(t *testing.T) {
		srv := NewMetricsServer(config.MetricsConfig{Enabled: true, Port: 9090})

		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("UnknownPathIs404", func(t *testing.T) {
		srv := NewMetricsServer(config.MetricsConfig{Enabled: true, Port: 9090, Path: "/metrics"})

		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
