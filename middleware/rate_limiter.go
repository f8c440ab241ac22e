package middleware

import (
	"net/http"
	"sync"

	"tripnest/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var (
	limiters   = make(map[string]*rate.Limiter)
	limitersMu sync.Mutex
)

func limiterFor(clientIP string) *rate.Limiter {
	limitersMu.Lock()
	defer limitersMu.Unlock()

	if l, ok := limiters[clientIP]; ok {
		return l
	}
	perSecond := rate.Limit(float64(config.AppConfig.MaxRequestsPerMin) / 60.0)
	l := rate.NewLimiter(perSecond, config.AppConfig.MaxRequestsPerMin)
	limiters[clientIP] = l
	return l
}

// RateLimitMiddleware throttles per client IP.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests",
			})
			return
		}
		c.Next()
	}
}
