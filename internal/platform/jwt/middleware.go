// Package jwtmw issues access tokens and guards routes with them.
package jwtmw

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ielts_backend/internal/platform/http/respond"
	"ielts_backend/internal/shared/apperr"
)

// Context keys set by AuthRequired.
const (
	ContextUserID      = "userID"
	ContextTokenID     = "tokenID"
	ContextTokenExpiry = "tokenExpiry"
)

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthRequired returns a Gin middleware that validates bearer tokens signed
// with secret. When revoked is non-nil, revoked token ids are rejected too.
func AuthRequired(secret string, revoked RevocationChecker) gin.HandlerFunc {
	key := []byte(secret)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			respond.Error(c, apperr.ErrAuthentication, "missing bearer token")
			return
		}

		claims := &Claims{}
		token, err := parser.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims, func(*jwt.Token) (any, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			respond.Error(c, errors.Join(apperr.ErrAuthentication, err), "invalid token")
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			respond.Error(c, errors.Join(apperr.ErrAuthentication, err), "invalid token")
			return
		}

		if revoked != nil && claims.ID != "" {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				respond.Error(c, err)
				return
			}
			if isRevoked {
				respond.Error(c, apperr.ErrAuthentication, "token revoked")
				return
			}
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextTokenID, claims.ID)
		c.Set(ContextTokenExpiry, claims.ExpiresAt.Time)
		c.Next()
	}
}

// UserID returns the authenticated user id stored by AuthRequired.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// TokenID returns the id and expiry of the presented token.
func TokenID(c *gin.Context) (string, time.Time) {
	return c.GetString(ContextTokenID), c.GetTime(ContextTokenExpiry)
}
