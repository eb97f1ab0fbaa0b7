// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"ielts_backend/internal/api"
	"ielts_backend/internal/feature/auth/usecase"
	"ielts_backend/internal/platform/http/respond"
	jwtmw "ielts_backend/internal/platform/jwt"
)

// AuthUsecase defines the signup, verification and session operations.
type AuthUsecase interface {
	Signup(ctx context.Context, email, password string, fullName *string) error
	Verify(ctx context.Context, email, code string) error
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// AuthHandler handles the public authentication endpoints and logout.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /register.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req api.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err, "invalid request")
		return
	}
	if err := h.auth.Signup(c.Request.Context(), string(req.Email), req.Password, req.FullName); err != nil {
		respond.Error(c, err, signupMessage(err))
		return
	}
	log.Info().Str("remote_addr", c.ClientIP()).Msg("user signup successful")
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "verification code sent"})
}

func signupMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		return "email already registered"
	case errors.Is(err, usecase.ErrInvalidPassword):
		return "password must be between 8 and 40 characters"
	}
	return ""
}

// Verify handles POST /verify.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req api.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err, "invalid request")
		return
	}
	if err := h.auth.Verify(c.Request.Context(), string(req.Email), req.Code); err != nil {
		respond.Error(c, err, "invalid or expired verification code")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "email verified"})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err, "invalid request")
		return
	}
	token, err := h.auth.Login(c.Request.Context(), string(req.Email), req.Password)
	if err != nil {
		msg := "invalid email or password"
		if errors.Is(err, usecase.ErrInactiveUser) {
			msg = "inactive user"
		}
		respond.Error(c, err, msg)
		return
	}
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}

// Logout handles POST /main/user/logout. The presented token stops working immediately.
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID, expiresAt := jwtmw.TokenID(c)
	if err := h.auth.Logout(c.Request.Context(), tokenID, expiresAt); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
}
