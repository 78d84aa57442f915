package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(rl *RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func doRequest(router *gin.Engine, path, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("allows requests within rate limit", func(t *testing.T) {
		router := newRateLimitedRouter(NewRateLimiter(10, 20))
		for i := 0; i < 10; i++ {
			w := doRequest(router, "/test", "192.168.1.1:1234")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
			assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
		}
	})

	t.Run("blocks requests exceeding rate limit", func(t *testing.T) {
		router := newRateLimitedRouter(NewRateLimiter(1, 2))
		var last *httptest.ResponseRecorder
		for i := 0; i < 3; i++ {
			last = doRequest(router, "/test", "192.168.1.2:1234")
		}
		assert.Equal(t, http.StatusTooManyRequests, last.Code)
		assert.Equal(t, "1", last.Header().Get("Retry-After"))
		assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("different clients have separate limits", func(t *testing.T) {
		router := newRateLimitedRouter(NewRateLimiter(1, 1))
		assert.Equal(t, http.StatusOK, doRequest(router, "/test", "192.168.1.3:1234").Code)
		assert.Equal(t, http.StatusOK, doRequest(router, "/test", "192.168.1.4:1234").Code)
		assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "/test", "192.168.1.3:1234").Code)
	})

	t.Run("health endpoint is not limited", func(t *testing.T) {
		router := newRateLimitedRouter(NewRateLimiter(1, 1))
		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, doRequest(router, "/health", "192.168.1.5:1234").Code)
		}
	})
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.getLimiter("ip:10.0.0.1")

	rl.evictIdle(time.Now())
	_, ok := rl.limiters.Load("ip:10.0.0.1")
	assert.True(t, ok)

	rl.evictIdle(time.Now().Add(rl.idleTimeout + time.Minute))
	_, ok = rl.limiters.Load("ip:10.0.0.1")
	assert.False(t, ok)
}
