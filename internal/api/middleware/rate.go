package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/osa911/folio/internal/api/dto/common"
	"github.com/osa911/folio/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Requests per second
	RPS float64
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// RateLimitMiddleware limits all requests through a single shared bucket
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)

	return func(c *gin.Context) {
		if !allow(c, limiter, config) {
			return
		}
		c.Next()
	}
}

// clientIdleTTL is how long an untouched per-client bucket is kept
const clientIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter keeps one bucket per client IP
type ClientRateLimiter struct {
	config    RateLimitConfig
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
	now       func() time.Time
}

// NewClientRateLimiter creates a per-client limiter
func NewClientRateLimiter(config RateLimitConfig) *ClientRateLimiter {
	return &ClientRateLimiter{
		config:  config,
		clients: make(map[string]*clientLimiter),
		now:     time.Now,
	}
}

func (l *ClientRateLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	// Idle buckets are swept lazily, no background goroutine
	if now.Sub(l.lastSweep) > clientIdleTTL {
		for k, cl := range l.clients {
			if now.Sub(cl.lastSeen) > clientIdleTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(l.config.RPS), l.config.Burst)}
		l.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// Len returns the number of tracked clients
func (l *ClientRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Middleware limits requests per client IP
func (l *ClientRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allow(c, l.get(utils.GetRealIP(c)), l.config) {
			return
		}
		c.Next()
	}
}

// allow takes a token or aborts with 429
func allow(c *gin.Context, limiter *rate.Limiter, config RateLimitConfig) bool {
	c.Header("X-RateLimit-Limit", strconv.FormatFloat(config.RPS, 'f', -1, 64))

	if !limiter.Allow() {
		retryAfter := 1
		if config.RPS > 0 {
			retryAfter = int(math.Ceil(1 / config.RPS))
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.Header("X-RateLimit-Remaining", "0")
		c.AbortWithStatusJSON(http.StatusTooManyRequests,
			common.NewErrorResponse(common.ErrCodeTooManyRequests, "Rate limit exceeded. Please try again later.", nil))
		return false
	}

	remaining := int(limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	return true
}
