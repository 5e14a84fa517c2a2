package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"
)

// offerLimiter throttles the public offer endpoint per client IP with a
// token bucket. Offers are the only unauthenticated write in the API, so a
// single misbehaving buyer script must not be able to flood a farmer's
// WhatsApp with notifications.
type offerLimiter struct {
	mu       sync.Mutex
	visitors map[string]*tokenBucket

	refillPerSec float64
	capacity     float64
	now          func() time.Time
}

type tokenBucket struct {
	tokens float64
	seen   time.Time
}

func newOfferLimiter(refillPerSec float64, capacity int) *offerLimiter {
	if capacity < 1 {
		capacity = 1
	}
	return &offerLimiter{
		visitors:     make(map[string]*tokenBucket),
		refillPerSec: refillPerSec,
		capacity:     float64(capacity),
		now:          time.Now,
	}
}

func (l *offerLimiter) take(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.visitors[ip]
	if !ok {
		b = &tokenBucket{tokens: l.capacity, seen: now}
		l.visitors[ip] = b
	} else {
		b.tokens += now.Sub(b.seen).Seconds() * l.refillPerSec
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.seen = now
	}

	// Opportunistic eviction keeps the map bounded without a background
	// goroutine; a visitor idle long enough to refill fully is dropped.
	if len(l.visitors) > 10000 {
		for k, v := range l.visitors {
			if now.Sub(v.seen).Seconds()*l.refillPerSec >= l.capacity {
				delete(l.visitors, k)
			}
		}
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func clientIP(r *http.Request) string {
	// chi's RealIP middleware rewrites RemoteAddr from the forwarding
	// headers; strip the port if one is present.
	addr := r.RemoteAddr
	if i := strings.LastIndex(addr, ":"); i > 0 && !strings.Contains(addr[i:], "]") {
		addr = addr[:i]
	}
	return addr
}

// RateLimit rejects requests beyond refillPerSec sustained (capacity burst)
// per client IP with 429 and a JSON error body.
func RateLimit(refillPerSec float64, capacity int) func(http.Handler) http.Handler {
	limiter := newOfferLimiter(refillPerSec, capacity)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.take(clientIP(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
