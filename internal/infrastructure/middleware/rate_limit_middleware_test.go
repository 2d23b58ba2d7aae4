package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"stockroom/pkg/config"

	"github.com/gin-gonic/gin"
)

// Test that when rate limiting is disabled, middleware lets all requests through.
func TestRateLimitMiddleware_Disabled_AllowsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultConfig()
	cfg.RateLimiting.Enabled = false

	router := gin.New()
	router.Use(NewRateLimitMiddleware(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200 on request %d, got %d", i, w.Code)
		}
	}
}

// Test basic per-IP rate limiting behaviour.
func TestRateLimitMiddleware_Enabled_RateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultConfig()
	cfg.RateLimiting.Enabled = true
	cfg.RateLimiting.RequestsPerSecond = 1
	cfg.RateLimiting.Burst = 1
	cfg.RateLimiting.MaxConcurrent = 0

	router := gin.New()
	router.Use(NewRateLimitMiddleware(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// First request should pass.
	w1 := httptest.NewRecorder()
	req1, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req1.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w1, req1)
	if w1.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w1.Code)
	}

	// Immediate second request from the same IP exceeds the burst.
	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req2.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w2, req2)
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", w2.Code)
	}

	// A different IP has its own limiter.
	w3 := httptest.NewRecorder()
	req3, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req3.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(w3, req3)
	if w3.Code != http.StatusOK {
		t.Fatalf("expected status 200 for second IP, got %d", w3.Code)
	}
}
