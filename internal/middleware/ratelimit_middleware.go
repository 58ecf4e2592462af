package middleware

import (
	"sync"
	"time"
)

const (
	invalidAuthWindow = time.Minute
	invalidAuthLimit  = 5
)

// InvalidAuthRateLimiter throttles repeated invalid authentication attempts
// per client IP. Valid requests are never counted against the limit.
type InvalidAuthRateLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptInfo
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

// NewInvalidAuthRateLimiter constructs a limiter and starts its janitor.
func NewInvalidAuthRateLimiter() *InvalidAuthRateLimiter {
	rl := &InvalidAuthRateLimiter{
		attempts: make(map[string]*attemptInfo),
	}
	go rl.cleanup()
	return rl
}

// Allow reports whether the IP may make another invalid attempt within the
// current window.
func (r *InvalidAuthRateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	info, exists := r.attempts[ip]
	if !exists || now.Sub(info.firstAt) > invalidAuthWindow {
		r.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return true
	}

	if info.count >= invalidAuthLimit {
		return false
	}
	info.count++
	return true
}

func (r *InvalidAuthRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for ip, info := range r.attempts {
			if now.Sub(info.firstAt) > invalidAuthWindow {
				delete(r.attempts, ip)
			}
		}
		r.mu.Unlock()
	}
}
