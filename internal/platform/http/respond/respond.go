// Package respond maps application errors to HTTP responses.
// It is the only place where error classes become status codes.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"ielts_backend/internal/api"
	"ielts_backend/internal/shared/apperr"
)

// Status returns the HTTP status and the client-facing message for err.
// Messages are fixed per class so internal details never leak.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, apperr.ErrAuthentication):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, apperr.ErrProvider), errors.Is(err, apperr.ErrSchemaValidation):
		return http.StatusInternalServerError, "scoring failed"
	case errors.Is(err, apperr.ErrPersistence):
		return http.StatusInternalServerError, "an internal error has occurred"
	default:
		return http.StatusInternalServerError, "an internal error has occurred"
	}
}

// Error logs err and writes the mapped status with a short message.
// A non-empty msg replaces the class default for 4xx responses.
func Error(c *gin.Context, err error, msg ...string) {
	status, text := Status(err)
	if status < http.StatusInternalServerError && len(msg) > 0 && msg[0] != "" {
		text = msg[0]
	}

	ev := log.Warn()
	if status >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).
		Int("status", status).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Str("remote_addr", c.ClientIP()).
		Msg("request failed")

	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: text})
}

// BadRequest writes a 400 for a body or parameter that failed to bind.
func BadRequest(c *gin.Context, err error, msg string) {
	log.Warn().Err(err).Str("path", c.FullPath()).Str("remote_addr", c.ClientIP()).Msg("request validation failed")
	c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Error: msg})
}
