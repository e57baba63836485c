package ratelimit_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/campdir/internal/app/system/ratelimit"
)

func TestAllow_WindowLimit(t *testing.T) {
	l := ratelimit.New(3, time.Hour)

	for i := 0; i < 3; i++ {
		ok, remaining := l.Allow("1.2.3.4")
		if !ok {
			t.Fatalf("request %d: unexpectedly limited", i+1)
		}
		if want := 2 - i; remaining != want {
			t.Errorf("request %d: remaining = %d, want %d", i+1, remaining, want)
		}
	}

	if ok, remaining := l.Allow("1.2.3.4"); ok || remaining != 0 {
		t.Errorf("fourth request: got (%v, %d), want (false, 0)", ok, remaining)
	}

	// Other clients are counted independently.
	if ok, _ := l.Allow("5.6.7.8"); !ok {
		t.Error("different key limited by first key's window")
	}
}

func TestAllow_WindowExpiry(t *testing.T) {
	l := ratelimit.New(1, 10*time.Millisecond)

	if ok, _ := l.Allow("k"); !ok {
		t.Fatal("first request limited")
	}
	if ok, _ := l.Allow("k"); ok {
		t.Fatal("second request allowed within window")
	}

	time.Sleep(20 * time.Millisecond)
	if ok, _ := l.Allow("k"); !ok {
		t.Error("request after window expiry still limited")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr with port", "10.0.0.1:52412", nil, "10.0.0.1"},
		{"remote addr without port", "10.0.0.2", nil, "10.0.0.2"},
		{"x-forwarded-for single", "10.0.0.1:52412", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "203.0.113.7"},
		{"x-forwarded-for chain", "10.0.0.1:52412", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.9"}, "203.0.113.7"},
		{"x-real-ip", "10.0.0.1:52412", map[string]string{"X-Real-IP": "203.0.113.8"}, "203.0.113.8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ratelimit.ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	mw := ratelimit.Middleware(ratelimit.New(2, time.Hour), zap.NewNop())
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/v1/bootcamps", nil)
		r.RemoteAddr = "192.0.2.1:1234"
		handler.ServeHTTP(rec, r)
		return rec
	}

	first := do()
	if first.Code != http.StatusOK {
		t.Fatalf("first request: status %d", first.Code)
	}
	if got := first.Header().Get("X-RateLimit-Limit"); got != "2" {
		t.Errorf("X-RateLimit-Limit = %q, want %q", got, "2")
	}
	if got := first.Header().Get("X-RateLimit-Remaining"); got != "1" {
		t.Errorf("X-RateLimit-Remaining = %q, want %q", got, "1")
	}

	do()
	third := do()
	if third.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: status %d, want 429", third.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(third.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding 429 body: %v", err)
	}
	if body.Success || body.Error != "Too many requests, please try again later" {
		t.Errorf("unexpected 429 body: %+v", body)
	}
}
