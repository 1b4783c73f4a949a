package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// bucket is a token bucket for a single client address.
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimiter limits request rates per client IP using token buckets.
// It is intended for the credential endpoints where brute force matters.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64
	burst   float64
	logger  *slog.Logger
}

// NewRateLimiter creates a limiter allowing rate requests per second with
// the given burst size.
func NewRateLimiter(logger *slog.Logger, rate float64, burst int) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		burst:   float64(burst),
		logger:  logger,
	}
}

func (rl *RateLimiter) allow(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	b, ok := rl.buckets[host]
	if !ok {
		b = &bucket{tokens: rl.burst, lastRefill: now}
		rl.buckets[host] = b
	}

	b.tokens += now.Sub(b.lastRefill).Seconds() * rl.rate
	if b.tokens > rl.burst {
		b.tokens = rl.burst
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--

	return true
}

// Middleware wraps next with the rate limit check.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(r.RemoteAddr) {
			rl.logger.Warn("rate limit exceeded", "remote", r.RemoteAddr, "path", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"detail":"Too many requests"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
