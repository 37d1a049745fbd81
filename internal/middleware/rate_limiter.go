package middleware

import (
	"net/http"
	"sync"
	"time"

	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	ips map[string]*visitor
	mu  *sync.RWMutex
	r   rate.Limit
	b   int

	idleTTL time.Duration
	done    chan struct{}
	once    sync.Once
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter starts a background sweep that forgets IPs idle for
// more than three minutes. Call Stop to end it.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		ips:     make(map[string]*visitor),
		mu:      &sync.RWMutex{},
		r:       r,
		b:       b,
		idleTTL: 3 * time.Minute,
		done:    make(chan struct{}),
	}

	go i.cleanupVisitors(time.Minute)

	return i
}

// GetLimiter returns the limiter for ip, creating it on first sight.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	v, exists := i.ips[ip]
	if !exists {
		limiter := rate.NewLimiter(i.r, i.b)
		i.ips[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// Visitors reports how many IPs are tracked.
func (i *IPRateLimiter) Visitors() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.ips)
}

func (i *IPRateLimiter) Stop() {
	i.once.Do(func() { close(i.done) })
}

func (i *IPRateLimiter) cleanupVisitors(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-i.done:
			return
		case <-ticker.C:
			i.sweep(time.Now())
		}
	}
}

func (i *IPRateLimiter) sweep(now time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for ip, v := range i.ips {
		if now.Sub(v.lastSeen) > i.idleTTL {
			delete(i.ips, ip)
		}
	}
}

func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			utils.APIError(c, http.StatusTooManyRequests, "Too many requests", nil)
			return
		}
		c.Next()
	}
}
