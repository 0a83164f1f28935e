package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skillshare/skillshare/internal/observability/metrics"
)

// GinMiddleware enforces the given bucket for every request passing through
// it. Pass Limiter.AllowRequest for general traffic or Limiter.AllowAuth for
// the authentication routes.
func GinMiddleware(l *Limiter, m *metrics.Metrics, allow func(*gin.Context) *Result) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Enabled() {
			c.Next()
			return
		}

		res := allow(c)
		if res.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		}
		if res.Allowed {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		m.RecordRateLimited(route)

		if res.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": "too many requests, slow down and try again later",
		})
	}
}

// APIMiddleware throttles by client IP using the configured API rate.
func APIMiddleware(l *Limiter, m *metrics.Metrics) gin.HandlerFunc {
	return GinMiddleware(l, m, func(c *gin.Context) *Result {
		return l.AllowRequest(c.Request.Context(), c.ClientIP())
	})
}

// AuthMiddleware throttles by client IP using the stricter auth rate.
func AuthMiddleware(l *Limiter, m *metrics.Metrics) gin.HandlerFunc {
	return GinMiddleware(l, m, func(c *gin.Context) *Result {
		return l.AllowAuth(c.Request.Context(), c.ClientIP())
	})
}
