// Package middleware gates the signed-in routes.
package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ielts_backend/internal/feature/auth/domain/entity"
	"ielts_backend/internal/feature/auth/usecase"
	"ielts_backend/internal/platform/http/respond"
	jwtmw "ielts_backend/internal/platform/jwt"
	"ielts_backend/internal/shared/apperr"
)

// UserLookup loads the caller's current user record.
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// RequireActive must run after jwtmw.AuthRequired. A user deactivated after
// signing in is rejected on the next request rather than when the token expires.
func RequireActive(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := jwtmw.UserID(c)
		if !ok {
			respond.Error(c, apperr.ErrAuthentication)
			return
		}
		u, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				respond.Error(c, apperr.ErrAuthentication, "user no longer exists")
				return
			}
			respond.Error(c, err)
			return
		}
		if !u.IsActive {
			respond.Error(c, usecase.ErrInactiveUser, "inactive user")
			return
		}
		c.Next()
	}
}
