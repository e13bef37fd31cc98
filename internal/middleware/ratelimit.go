package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/delta/codecharacter/api/internal/model"
)

// RateLimiter counts attempts per client in fixed windows. It guards the
// credential endpoints against password guessing.
type RateLimiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int
	period   time.Duration
	now      func() time.Time
	stopChan chan struct{}
}

type window struct {
	count   int
	resetAt time.Time
}

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Limit   int           // attempts per period (default 10)
	Period  time.Duration // window length (default 1 minute)
	Cleanup time.Duration // sweep interval for stale windows (default 5 minutes)
}

// NewRateLimiter creates a limiter and starts its sweeper. Call Stop on shutdown.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Limit <= 0 {
		cfg.Limit = 10
	}
	if cfg.Period <= 0 {
		cfg.Period = time.Minute
	}
	if cfg.Cleanup <= 0 {
		cfg.Cleanup = 5 * time.Minute
	}

	rl := &RateLimiter{
		windows:  make(map[string]*window),
		limit:    cfg.Limit,
		period:   cfg.Period,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	go rl.sweep(cfg.Cleanup)
	return rl
}

// Stop ends the sweeper goroutine
func (rl *RateLimiter) Stop() {
	close(rl.stopChan)
}

func (rl *RateLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropExpired()
		case <-rl.stopChan:
			return
		}
	}
}

func (rl *RateLimiter) dropExpired() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.windows {
		if !now.Before(w.resetAt) {
			delete(rl.windows, key)
		}
	}
}

// Allow records one attempt for key and reports whether it fits in the
// current window, how many attempts remain, and when the window resets.
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, resetAt time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(rl.period)}
		rl.windows[key] = w
	}

	if w.count >= rl.limit {
		return false, 0, w.resetAt
	}
	w.count++
	return true, rl.limit - w.count, w.resetAt
}

// RateLimit returns a middleware that applies limiter per client address
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, resetAt := limiter.Allow(clientKey(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				retryAfter := int(resetAt.Sub(limiter.now()).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey is the authenticated user when known, otherwise the remote host
func clientKey(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return "user:" + strconv.Itoa(userID)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
