package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handler gin.HandlerFunc, mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestID(), middleware.ErrorHandler())
	r.Use(mw...)
	r.Any("/t", handler)
	return r
}

func do(r http.Handler, method string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/t", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandlerRendersAppError(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		c.Error(apperror.BadRequest(apperror.MsgInvalidEmail))
	})

	w := do(r, http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email format"}`, w.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestErrorHandlerHidesUnknownErrors(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		c.Error(errors.New("secret internal detail"))
	})

	w := do(r, http.MethodPost)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send email. Please try again later."}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestErrorHandlerLeavesWrittenResponsesAlone(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		c.Error(errors.New("late"))
	})

	w := do(r, http.MethodGet)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestRecoveryRendersJSON(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		panic("boom")
	})

	w := do(r, http.MethodPost)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send email. Please try again later."}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.RequestIDKey))
	})

	t.Run("generated when absent", func(t *testing.T) {
		w := do(r, http.MethodGet)
		id := w.Header().Get(middleware.RequestIDHeader)
		require.NotEmpty(t, id)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("propagated when present", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/t", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})
}

func TestCORSMiddleware(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	t.Run("default policy", func(t *testing.T) {
		w := do(newEngine(ok, middleware.CORSMiddleware(middleware.DefaultCORSConfig())), http.MethodOptions)
		assert.Equal(t, http.StatusNoContent, w.Code, "preflight is left to the handler")
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Empty(t, w.Header().Get("Vary"))
	})

	t.Run("explicit origin varies", func(t *testing.T) {
		cfg := middleware.DefaultCORSConfig()
		cfg.AllowOrigin = "https://portfolio.example.com"
		w := do(newEngine(ok, middleware.CORSMiddleware(cfg)), http.MethodPost)
		assert.Equal(t, "https://portfolio.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", w.Header().Get("Vary"))
	})
}

func TestSecurityHeaders(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	w := do(newEngine(ok, middleware.SecurityHeadersMiddleware(false)), http.MethodGet)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "frame-ancestors 'none'")
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	w = do(newEngine(ok, middleware.SecurityHeadersMiddleware(true)), http.MethodGet)
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}
