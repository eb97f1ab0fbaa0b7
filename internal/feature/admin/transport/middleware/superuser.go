// Package middleware gates the admin routes.
package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ielts_backend/internal/feature/auth/domain/entity"
	"ielts_backend/internal/platform/http/respond"
	jwtmw "ielts_backend/internal/platform/jwt"
	"ielts_backend/internal/shared/apperr"
)

// UserLookup loads the caller's current user record.
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// RequireSuperuser must run after jwtmw.AuthRequired. It reloads the user so
// revoked privileges take effect before the token expires.
func RequireSuperuser(users UserLookup) gin.HandlerFunc {
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
		if !u.IsActive || !u.IsSuperuser {
			respond.Error(c, apperr.ErrForbidden, "superuser required")
			return
		}
		c.Next()
	}
}
