package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"cinebook/internal/shared/utils/response"
	"cinebook/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Middleware enforces per-IP request budgets, keyed by route class
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	log := logger.GetDefault()

	return func(c *gin.Context) {
		clientIP := clientAddress(c)
		limitType := classifyRoute(c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			// Rate limiter outage must not take the API down with it
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if !result.Allowed {
			log.LogRateLimitExceeded(c.Request.Context(), clientIP, c.FullPath())
			response.RespondJSON(c, "error", http.StatusTooManyRequests,
				"Rate limit exceeded", nil, map[string]interface{}{
					"limit":      result.Limit,
					"reset_time": result.ResetTime,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}

// classifyRoute maps a route to its budget class. Admin wins over everything
// because admin routes nest under the public resource paths.
func classifyRoute(path string) RateLimitType {
	switch {
	case strings.Contains(path, "/admin/"):
		return RateLimitTypeAdmin
	case strings.Contains(path, "/auth/"):
		return RateLimitTypeAuth
	case strings.Contains(path, "/bookings"),
		strings.Contains(path, "/seats"):
		return RateLimitTypeBooking
	case strings.Contains(path, "/movies"),
		strings.Contains(path, "/theatres"),
		strings.Contains(path, "/showtimes"):
		return RateLimitTypePublic
	default:
		return RateLimitTypeDefault
	}
}

// clientAddress resolves the caller's IP, trusting proxy headers when they
// carry a parseable address
func clientAddress(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}

	if realIP := c.GetHeader("X-Real-IP"); net.ParseIP(realIP) != nil {
		return realIP
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
