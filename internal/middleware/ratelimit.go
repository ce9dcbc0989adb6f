package middleware

import (
	"net/http"
	"sync"
	"time"
)

type windowEntry struct {
	mu       sync.Mutex
	requests []time.Time
}

// RateLimiter allows at most max requests per client inside a sliding window.
type RateLimiter struct {
	max     int
	window  time.Duration
	store   sync.Map
	now     func() time.Time
	proxies TrustedProxies
}

// NewRateLimiter keys clients by their address as resolved through proxies.
// A nil proxies keys by the connection's remote address.
func NewRateLimiter(max int, window time.Duration, proxies TrustedProxies) *RateLimiter {
	return &RateLimiter{max: max, window: window, now: time.Now, proxies: proxies}
}

func (rl *RateLimiter) allow(client string) bool {
	now := rl.now()
	cutoff := now.Add(-rl.window)

	v, _ := rl.store.LoadOrStore(client, &windowEntry{})
	entry := v.(*windowEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	filtered := entry.requests[:0]
	for _, t := range entry.requests {
		if t.After(cutoff) {
			filtered = append(filtered, t)
		}
	}
	entry.requests = filtered

	if len(entry.requests) >= rl.max {
		return false
	}

	entry.requests = append(entry.requests, now)
	return true
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(rl.proxies.ClientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
