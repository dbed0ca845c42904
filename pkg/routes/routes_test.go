package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestRouter_Health(t *testing.T) {
	e, checker := New("laurel-api", "test", nil, nil, noopLogger())

	t.Run("live is always up", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ready follows the checker state", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		checker.SetReady(true)
		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("health reports an unconfigured database", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var status map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, "unhealthy", status["status"])
	})
}

func TestRouter_RequestValidation(t *testing.T) {
	e, _ := New("laurel-api", "test", nil, nil, noopLogger())

	t.Run("malformed json is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/matches/generate", strings.NewReader("{"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing required fields are a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/matches/generate", strings.NewReader(`{"source_file_id": 1}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("error responses carry the request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/matches/generate", strings.NewReader("{"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderXRequestID, "req-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "req-123", body["request_id"])
	})
}
