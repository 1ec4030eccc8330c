package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bsgreeks/internal/domain/dto"
)

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// rateLimiter is a fixed-window per-IP counter. Each RateLimiter call gets
// its own store.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time
}

func (rl *rateLimiter) allow(ip string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok || now.Sub(cl.windowStart) > rl.window {
		rl.clients[ip] = &client{windowStart: now, count: 1}
		rl.evict(now)
		return 1 <= rl.limit
	}
	cl.count++
	return cl.count <= rl.limit
}

// evict drops clients whose window is over. Called on new windows only, so
// the cost is spread over first requests.
func (rl *rateLimiter) evict(now time.Time) {
	for ip, cl := range rl.clients {
		if now.Sub(cl.windowStart) > rl.window {
			delete(rl.clients, ip)
		}
	}
}

// RateLimiter is an in-memory middleware that limits the number of requests
// per client IP.
//
// Behavior:
//   - Allows up to `limit` requests per `window` (e.g. 60 per minute).
//   - Identifies clients by their IP address.
//   - If limit exceeded, returns HTTP 429 with an ErrorResponse.
//   - A limit < 1 disables limiting.
//
// Usage:
//
//	router.Use(middleware.RateLimiter(60, time.Minute))
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit < 1 {
		return func(c *gin.Context) { c.Next() }
	}
	rl := &rateLimiter{clients: make(map[string]*client), limit: limit, window: window, now: time.Now}

	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}
