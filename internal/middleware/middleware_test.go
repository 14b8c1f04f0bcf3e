package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopify_creator_v1/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCooldownLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewCooldownLimiter()
	l.now = func() time.Time { return now }

	assert.True(t, l.Check("k", time.Minute).Allowed)

	now = now.Add(20 * time.Second)
	res := l.Check("k", time.Minute)
	assert.False(t, res.Allowed)
	assert.Equal(t, 40*time.Second, res.RetryAfter)
	assert.True(t, l.Check("other", time.Minute).Allowed)

	now = now.Add(40 * time.Second)
	assert.True(t, l.Check("k", time.Minute).Allowed)

	l.Reset("k")
	assert.True(t, l.Check("k", time.Minute).Allowed)
}

func TestSyncCooldown(t *testing.T) {
	limiter := NewCooldownLimiter()
	status := http.StatusOK

	r := gin.New()
	r.GET("/sync/orders", SyncCooldown(limiter, OrderSyncKey, time.Minute), func(c *gin.Context) {
		c.Status(status)
	})
	call := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sync/orders", nil))
		return w
	}

	assert.Equal(t, http.StatusOK, call().Code)

	w := call()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"retry_after":60`)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// 失败后冷却被清除
	limiter.Reset(OrderSyncKey)
	status = http.StatusInternalServerError
	assert.Equal(t, http.StatusInternalServerError, call().Code)
	status = http.StatusOK
	assert.Equal(t, http.StatusOK, call().Code)
}

func TestFormatRetryMessage(t *testing.T) {
	assert.Equal(t, "Sync cooling down, retry in 5 seconds", formatRetryMessage(4200*time.Millisecond))
	assert.Equal(t, "Sync cooling down, retry in 2 minutes", formatRetryMessage(2*time.Minute))
	assert.Equal(t, "Sync cooling down, retry in 1 minutes 30 seconds", formatRetryMessage(90*time.Second))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(DefaultCORSConfig([]string{"http://localhost:5173"})))
	r.GET("/api/sales", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/sales", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/sales", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/sales", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
}

func TestRequestID(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		seen = c.GetString(logger.RequestIDKey)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	assert.Len(t, seen, 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", seen)
}
