package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Each key gets its own limiter plus lastSeen for cleanup.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter manages one token bucket per key (client IP, email, ...).
type KeyedLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	reqPerMin int
	burst     int
	ttl       time.Duration
}

// NewKeyedLimiter allows reqPerMin requests per key with the given burst;
// keys idle for longer than ttl are dropped by a background sweep.
func NewKeyedLimiter(reqPerMin, burst int, ttl time.Duration) *KeyedLimiter {
	rl := &KeyedLimiter{
		visitors:  make(map[string]*visitor),
		reqPerMin: reqPerMin,
		burst:     burst,
		ttl:       ttl,
	}
	go rl.cleanupVisitors()
	return rl
}

// Allow reports whether the key may proceed right now.
func (rl *KeyedLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

func (rl *KeyedLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = time.Now()
		return v.limiter
	}

	rps := float64(rl.reqPerMin) / 60.0
	limiter := rate.NewLimiter(rate.Limit(rps), rl.burst)
	rl.visitors[key] = &visitor{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

func (rl *KeyedLimiter) cleanupVisitors() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > rl.ttl {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimitByIP guards an endpoint per client IP.
func RateLimitByIP(rl *KeyedLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too Many Requests",
				"hint":    "Please try again in a few minutes.",
			})
			return
		}
		c.Next()
	}
}

// 10 submissions/minute/IP, burst 5; idle IPs dropped after 5 minutes.
var SubmitLimiter = NewKeyedLimiter(10, 5, 5*time.Minute)

// RateLimitSubmit guards POST /api/survey/submissions.
func RateLimitSubmit() gin.HandlerFunc {
	return RateLimitByIP(SubmitLimiter)
}

// ResendLimiter throttles verification-code sends per email: 1/minute
// with no burst, so two near-simultaneous resend requests cannot both
// trigger a send. The DB cooldown column backs this across restarts.
var ResendLimiter = NewKeyedLimiter(1, 1, 15*time.Minute)
