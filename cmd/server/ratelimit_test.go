package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimitMiddlewarePerIP(t *testing.T) {
	limiter := newIPRateLimiter(0, 2)
	handler := limiter.limitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/rates", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	for i := 0; i < 2; i++ {
		if code := call("10.0.0.1:5000"); code != http.StatusNoContent {
			t.Fatalf("request %d: expected 204, got %d", i, code)
		}
	}
	if code := call("10.0.0.1:5001"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the burst is spent, got %d", code)
	}
	if code := call("10.0.0.2:5000"); code != http.StatusNoContent {
		t.Fatalf("expected a separate budget for another IP, got %d", code)
	}
}

func TestIPRateLimiterDropsIdleClients(t *testing.T) {
	clock := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(1, 1)
	limiter.now = func() time.Time { return clock }

	limiter.getLimiter("10.0.0.1")
	limiter.getLimiter("10.0.0.2")

	clock = clock.Add(limiterIdleTTL / 2)
	limiter.getLimiter("10.0.0.2")

	clock = clock.Add(limiterIdleTTL / 2)
	limiter.getLimiter("10.0.0.3")

	if len(limiter.ips) != 2 {
		t.Fatalf("expected 2 tracked clients after sweep, got %d", len(limiter.ips))
	}
	if _, ok := limiter.ips["10.0.0.1"]; ok {
		t.Fatalf("expected idle client 10.0.0.1 to be dropped")
	}
	if _, ok := limiter.ips["10.0.0.2"]; !ok {
		t.Fatalf("expected recently seen client 10.0.0.2 to be kept")
	}
}
