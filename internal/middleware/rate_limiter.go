package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"autoparts/internal/apierror"
)

// rateEntry tracks request counts per IP within a fixed window.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// RateLimiter is a per-IP fixed-window limiter. A non-positive limit
// disables it.
type RateLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	entries map[string]*rateEntry
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{limit: limit, window: window, entries: make(map[string]*rateEntry)}
}

// Handler returns the gin middleware.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}
		ip := c.ClientIP()

		rl.mu.Lock()
		entry, exists := rl.entries[ip]
		if !exists {
			entry = &rateEntry{}
			rl.entries[ip] = entry
		}
		rl.mu.Unlock()

		entry.mu.Lock()
		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(rl.window)
		}
		entry.count++
		over := entry.count > rl.limit
		windowEnd := entry.windowEnd
		entry.mu.Unlock()

		if over {
			c.Header("Retry-After", windowEnd.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Too many requests, try again shortly"))
			return
		}
		c.Next()
	}
}

// ── Purge goroutine ───────────────────────────────────────────────────────────

// StartPurge removes expired entries every interval until ctx is cancelled,
// so IPs that never return do not accumulate.
func (rl *RateLimiter) StartPurge(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := rl.purge(time.Now()); n > 0 {
					log.Debug().Int("purged", n).Msg("rate limiter entries purged")
				}
			}
		}
	}()
}

func (rl *RateLimiter) purge(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	purged := 0
	for ip, entry := range rl.entries {
		entry.mu.Lock()
		if now.After(entry.windowEnd) {
			delete(rl.entries, ip)
			purged++
		}
		entry.mu.Unlock()
	}
	return purged
}
