package middleware

import (
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"ielts_backend/internal/api"
)

// Recover turns a handler panic into a logged 500 without a stack trace in the body.
func Recover(l zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, err any) {
		l.Error().
			Interface("error", err).
			Str("method", c.Request.Method).
			Str("url", c.Request.URL.String()).
			Str("remote_addr", c.ClientIP()).
			Str("stack_trace", string(debug.Stack())).
			Msg("internal server error")

		c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	})
}
