package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/dto"
)

// RateLimiter is an in-memory fixed-window limiter keyed by client IP.
// Suitable for a single instance; a shared store is needed when the API
// runs behind a load balancer.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
	stop    chan struct{}
}

type clientWindow struct {
	count   int
	resetAt time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window
// and starts its stale-entry cleanup loop.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		stop:    make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow records a request for key and reports whether it is within the
// limit, together with the remaining allowance.
func (rl *RateLimiter) Allow(key string) (bool, int) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.clients[key]
	if !ok || now.After(cw.resetAt) {
		rl.clients[key] = &clientWindow{count: 1, resetAt: now.Add(rl.window)}
		return true, rl.limit - 1
	}
	if cw.count >= rl.limit {
		return false, 0
	}
	cw.count++
	return true, rl.limit - cw.count
}

// Stop ends the cleanup loop
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			rl.mu.Lock()
			for key, cw := range rl.clients {
				if now.After(cw.resetAt) {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// Middleware limits requests per client IP, answering 429 with rate
// limit headers when the allowance is exhausted.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := rl.Allow(c.ClientIP())
		c.Writer.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Writer.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse(dto.ErrCodeRateLimited, "Too many requests, slow down"))
			return
		}
		c.Next()
	}
}
