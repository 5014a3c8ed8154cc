package middleware

import (
	"sync"
	"time"

	"vidtube-go/internal/apperr"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var ErrTooManyRequests = apperr.New(apperr.KindTooManyRequests, "请求过于频繁，请稍后再试")

// 超过该时长没有请求的 IP 会被清理
const limiterIdleTTL = 10 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter 按客户端 IP 的令牌桶限流
type IPRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*ipLimiter
	rate      rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &IPRateLimiter{
		limiters: make(map[string]*ipLimiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow 消耗一个令牌，令牌不足时返回 false
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	now := l.now()
	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now
	l.sweepLocked(now)
	l.mu.Unlock()

	return entry.limiter.AllowN(now, 1)
}

func (l *IPRateLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < limiterIdleTTL {
		return
	}
	l.lastSweep = now
	cutoff := now.Add(-limiterIdleTTL)
	for ip, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
}

// RateLimit 限流中间件，超限返回 429
func RateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			_ = c.Error(ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
