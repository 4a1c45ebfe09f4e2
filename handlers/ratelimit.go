package handlers

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientIdleTTL is how long a client's bucket is kept without requests.
const clientIdleTTL = 10 * time.Minute

// IPRateLimiter keeps one token bucket per client address. Buckets idle for
// longer than clientIdleTTL are dropped when a new client arrives, so the
// map stays bounded by the clients active in that window.
type IPRateLimiter struct {
	ips   map[string]*client
	mu    *sync.RWMutex
	r     rate.Limit
	b     int
	idle  time.Duration
	swept time.Time
	now   func() time.Time
}

type client struct {
	limiter *rate.Limiter
	seen    atomic.Int64 // unix nanoseconds of the last request
}

// NewIPRateLimiter returns a limiter that grants each client address r
// requests per second with bursts of up to b.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:   make(map[string]*client),
		mu:    &sync.RWMutex{},
		r:     r,
		b:     b,
		idle:  clientIdleTTL,
		swept: time.Now(),
		now:   time.Now,
	}
}

// GetLimiter returns the bucket for ip, creating it on first use, and marks
// the client as seen.
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	now := l.now()

	l.mu.RLock()
	c, exists := l.ips[ip]
	l.mu.RUnlock()
	if exists {
		c.seen.Store(now.UnixNano())
		return c.limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.swept) >= l.idle {
		l.sweep(now)
	}
	c, exists = l.ips[ip]
	if !exists {
		c = &client{limiter: rate.NewLimiter(l.r, l.b)}
		l.ips[ip] = c
	}
	c.seen.Store(now.UnixNano())

	return c.limiter
}

// sweep drops clients idle since before now-idle. l.mu must be held.
func (l *IPRateLimiter) sweep(now time.Time) {
	cutoff := now.Add(-l.idle).UnixNano()
	for ip, c := range l.ips {
		if c.seen.Load() < cutoff {
			delete(l.ips, ip)
		}
	}
	l.swept = now
}

// RateLimit rejects requests from clients over their budget with 429.
func RateLimit(l *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.GetLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
