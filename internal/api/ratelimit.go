package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware enforces a global requests-per-second budget with a
// token bucket shared across all routes. The map frontend refreshes on a
// timer, so a small budget suffices; burst matches the sustained rate.
func RateLimitMiddleware(rps int) gin.HandlerFunc {
	bucket := rate.NewLimiter(rate.Limit(rps), rps)

	return func(c *gin.Context) {
		if !bucket.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
