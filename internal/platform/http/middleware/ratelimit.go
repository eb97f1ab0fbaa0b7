package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"ielts_backend/internal/api"
	"ielts_backend/internal/shared/ratelimiter"
)

// RateLimit rejects callers that exceed limiter with 429. Clients are keyed by
// IP and route so one endpoint's budget does not consume another's.
func RateLimit(limiter ratelimiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retryAfter := limiter.Allow(c.FullPath() + "|" + c.ClientIP())
		if ok {
			c.Next()
			return
		}
		log.Warn().Str("path", c.FullPath()).Str("remote_addr", c.ClientIP()).Msg("rate limit exceeded")
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "too many requests"})
	}
}
