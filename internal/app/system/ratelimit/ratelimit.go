// Package ratelimit provides fixed-window per-client rate limiting for the
// public API. Each client IP gets a counter that resets when its window
// expires; requests over the limit receive a 429 error envelope.
package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/campdir/internal/app/system/apierror"
)

// Limiter counts requests per key over a fixed window. Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	per     time.Duration
}

type window struct {
	count     int
	expiresAt time.Time
}

// New returns a limiter allowing limit requests per key per window. A
// background goroutine evicts expired windows so the map does not grow
// without bound.
func New(limit int, per time.Duration) *Limiter {
	l := &Limiter{
		windows: make(map[string]*window),
		limit:   limit,
		per:     per,
	}
	go l.evictLoop()
	return l
}

// Allow records a request for key and reports whether it is within the limit.
// The second return value is the number of requests remaining in the window.
func (l *Limiter) Allow(key string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[key]
	if !ok || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.per)}
		return true, l.limit - 1
	}
	if w.count >= l.limit {
		return false, 0
	}
	w.count++
	return true, l.limit - w.count
}

func (l *Limiter) evictLoop() {
	ticker := time.NewTicker(l.per * 2)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, w := range l.windows {
			if now.After(w.expiresAt) {
				delete(l.windows, key)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIP extracts the client address from a request, preferring the
// X-Forwarded-For and X-Real-IP headers set by proxies over RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
		if first != "" {
			return first
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware enforces the limiter per client IP. Rejected requests get a 429
// error envelope; every response carries X-RateLimit-Limit and
// X-RateLimit-Remaining headers.
func Middleware(l *Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining := l.Allow(ClientIP(r))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !allowed {
				apierror.Write(w, logger, apierror.New(http.StatusTooManyRequests, "Too many requests, please try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
