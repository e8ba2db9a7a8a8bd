package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-ownership/internal/api/shared/errors"
	"github.com/feral-file/ff-ownership/internal/identity"
	"github.com/feral-file/ff-ownership/internal/logger"
	"github.com/feral-file/ff-ownership/internal/ratelimit"
)

// RateLimit throttles requests per caller, falling back to the client IP for
// anonymous requests. A nil limiter disables throttling. Requests pass when the
// limiter itself fails.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if caller, ok := identity.FromContext(c.Request.Context()); ok {
			key = "user:" + caller.ID
		}

		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Rate limiter unavailable, allowing request",
				zap.Error(err),
				zap.String("key", key))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierrors.Response{
				Error: apierrors.NewRateLimitedError("retry after " + strconv.Itoa(seconds) + "s"),
			})
			return
		}

		c.Next()
	}
}
