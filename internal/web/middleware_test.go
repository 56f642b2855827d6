package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(0.001), 1)

	if !rl.allow("a") {
		t.Fatal("allow(a) = false on first request")
	}
	if rl.allow("a") {
		t.Error("allow(a) = true after burst exhausted")
	}
	if !rl.allow("b") {
		t.Error("allow(b) = false, clients should not share a bucket")
	}
}

func TestRateLimiterEvictIdle(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(rate.Limit(1), 1)
	rl.now = func() time.Time { return now }

	rl.allow("old")
	now = now.Add(10 * time.Minute)
	rl.allow("fresh")

	rl.evictIdle(5 * time.Minute)

	if _, ok := rl.limiters["old"]; ok {
		t.Error("idle visitor was not evicted")
	}
	if _, ok := rl.limiters["fresh"]; !ok {
		t.Error("active visitor was evicted")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer ", "", false},
		{"Token abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", tt.header)
		got, ok := bearerToken(req)
		if got != tt.want || ok != tt.ok {
			t.Errorf("bearerToken(%q) = %q, %v, want %q, %v", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}
