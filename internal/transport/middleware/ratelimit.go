package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// bucketIdleEviction is how long a client can stay quiet before its
// bucket is dropped by the cleanup loop.
const bucketIdleEviction = 10 * time.Minute

// RateLimiter keeps a token bucket per client IP. Limits are chosen per
// route group, so the same limiter instance backs both the strict auth
// endpoints and the looser comment endpoint.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*tokenBucket
	stop    chan struct{}
}

type tokenBucket struct {
	tokens   float64
	capacity float64
	perSec   float64
	seenAt   time.Time
}

// NewRateLimiter creates a limiter whose cleanup loop runs every
// cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*tokenBucket),
		stop:    make(chan struct{}),
	}
	go rl.evictIdle(cleanupInterval)
	return rl
}

// Stop terminates the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns middleware allowing maxPerMinute requests per client IP,
// answering 429 with a Retry-After header once the bucket is empty.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.take(clientIP(r), maxPerMinute) {
				secsPerToken := 60.0 / float64(maxPerMinute)
				w.Header().Set("Retry-After", strconv.Itoa(int(secsPerToken)+1))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// take refills the client's bucket by elapsed time and spends one token.
func (rl *RateLimiter) take(client string, maxPerMinute int) bool {
	capacity := float64(maxPerMinute)
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[client]
	if !ok {
		b = &tokenBucket{tokens: capacity, capacity: capacity, perSec: capacity / 60.0, seenAt: now}
		rl.clients[client] = b
	}

	b.tokens += now.Sub(b.seenAt).Seconds() * b.perSec
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.seenAt = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) evictIdle(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-bucketIdleEviction)
			rl.mu.Lock()
			for client, b := range rl.clients {
				if b.seenAt.Before(cutoff) {
					delete(rl.clients, client)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// clientIP keys buckets by address without the ephemeral port, so
// reconnecting clients keep their bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
