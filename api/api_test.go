package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	m := ApiHandler{JwtSecret: "test-secret", TokenTTL: time.Hour}
	router := m.router()

	t.Run("root banner", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, 200, w.Code)
		require.Contains(t, w.Body.String(), "stockpulse")
	})

	t.Run("health check", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, 200, w.Code)
		require.JSONEq(t, `{"ok": true}`, w.Body.String())
	})

	t.Run("watchlist requires a bearer token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/watchlist", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, 401, w.Code)
	})
}
