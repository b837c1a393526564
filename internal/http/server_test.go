package http

import (
	"net/http"
	"testing"
	"time"
)

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t, Options{})

	w := doJSON(t, srv, "GET", "/api/vehicles", nil)
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestRateLimitOnMutations(t *testing.T) {
	srv, _ := newTestServer(t, Options{})

	var lastCode int
	for i := 0; i < rateLimitMaxRequests+1; i++ {
		w := doJSON(t, srv, "POST", "/api/drivers", driverPayload{Name: "Motorista"})
		lastCode = w.Code
	}
	if lastCode != http.StatusTooManyRequests {
		t.Fatalf("last status = %d, want 429", lastCode)
	}

	// Reads stay unaffected.
	if w := doJSON(t, srv, "GET", "/api/drivers", nil); w.Code != http.StatusOK {
		t.Errorf("GET status = %d, want 200", w.Code)
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := &rateLimiter{
		clients:     map[string]*clientInfo{},
		stopCleanup: make(chan struct{}),
	}
	defer rl.stop()

	for i := 0; i < rateLimitMaxRequests; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d unexpectedly limited", i)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Fatal("expected limit after window filled")
	}
	if !rl.allow("5.6.7.8") {
		t.Fatal("other client must not be limited")
	}

	// An old window resets the counter.
	rl.mu.Lock()
	rl.clients["1.2.3.4"].lastRequest = time.Now().Add(-2 * rateLimitWindow)
	rl.mu.Unlock()
	if !rl.allow("1.2.3.4") {
		t.Fatal("expected reset after window elapsed")
	}
}

func TestLRUCacheEvictionAndTTL(t *testing.T) {
	c := newLRUCache[int](2, 50*time.Millisecond)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3) // evicts a

	if _, found := c.Get("a"); found {
		t.Error("expected a evicted")
	}
	if v, found := c.Get("c"); !found || v != 3 {
		t.Errorf("Get(c) = %d, %v", v, found)
	}

	time.Sleep(60 * time.Millisecond)
	if _, found := c.Get("b"); found {
		t.Error("expected b expired")
	}

	c.Set("d", 4)
	c.Clear()
	if _, found := c.Get("d"); found {
		t.Error("expected cache cleared")
	}
}
