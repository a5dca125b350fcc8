package middleware

import (
	"context"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/daycare-api/internal/service"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
	"github.com/noah-isme/daycare-api/pkg/response"
)

// Limiter decides whether a client may proceed within a scope.
type Limiter interface {
	Allow(ctx context.Context, scope, client string, limit int) service.RateDecision
}

// RateLimit rejects clients exceeding limit requests per window with 429 and Retry-After.
func RateLimit(limiter Limiter, scope string, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}
		decision := limiter.Allow(c.Request.Context(), scope, c.ClientIP(), limit)
		if !decision.Allowed {
			seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			response.Abort(c, appErrors.ErrTooManyRequests)
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Next()
	}
}
