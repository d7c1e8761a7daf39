package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack-api/internal/service"
)

// RateLimitMiddleware throttles requests per key. Limiter failures that
// are not limit violations fail open.
func RateLimitMiddleware(rateLimiter *service.RateLimiter, limit int, window time.Duration, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)

		allowed, err := rateLimiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			if strings.Contains(err.Error(), "rate limit exceeded") {
				c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
				c.Header("X-RateLimit-Retry-After", extractRetryAfter(err.Error()))

				remaining, _ := rateLimiter.GetRemainingRequests(c.Request.Context(), key, limit, window)
				c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

				respondError(c, http.StatusTooManyRequests, "Too many requests", err.Error())
				c.Abort()
				return
			}

			// Redis trouble should not take the API down with it
			c.Next()
			return
		}

		if !allowed {
			respondError(c, http.StatusTooManyRequests, "Too many requests", nil)
			c.Abort()
			return
		}

		remaining, _ := rateLimiter.GetRemainingRequests(c.Request.Context(), key, limit, window)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		c.Next()
	}
}

// IPBasedKey keys the limiter on the originating client address
func IPBasedKey(c *gin.Context) string {
	return clientIP(c)
}

// extractRetryAfter pulls the wait hint out of the limiter error text
func extractRetryAfter(errMsg string) string {
	if _, after, ok := strings.Cut(errMsg, "try again in"); ok {
		return strings.TrimSpace(after)
	}
	return "60"
}
