package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"ielts_backend/internal/feature/auth/domain/entity"
)

// SignupRequest is the body of POST /register.
type SignupRequest struct {
	Email    openapi_types.Email `json:"email" binding:"required,email,max=255"`
	Password string              `json:"password" binding:"required,min=8,max=40"`
	FullName *string             `json:"full_name" binding:"omitempty,max=255"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required"`
}

// VerifyRequest is the body of POST /verify.
type VerifyRequest struct {
	Email openapi_types.Email `json:"email" binding:"required,email"`
	Code  string              `json:"code" binding:"required,len=6,numeric"`
}

// TokenResponse carries a signed access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// StorageRequest is the body of POST /main/user/storage.
type StorageRequest struct {
	APIKey       string `json:"api_key" binding:"required"`
	UserLanguage string `json:"user_language" binding:"required,max=64"`
}

// UserInfoResponse is the body of GET /main/user/info.
type UserInfoResponse struct {
	UserEmail string  `json:"user_email"`
	APIKey    *string `json:"api_key"`
	Language  string  `json:"language"`
}

// UserResponse is the public representation of a user.
// The password hash and verification code are never included.
type UserResponse struct {
	ID          openapi_types.UUID `json:"id"`
	Email       string             `json:"email"`
	FullName    *string            `json:"full_name"`
	IsActive    bool               `json:"is_active"`
	IsSuperuser bool               `json:"is_superuser"`
	IsVerified  bool               `json:"is_verified"`
	APIKey      *string            `json:"api_key"`
	Language    string             `json:"language"`
	CreatedAt   time.Time          `json:"created_at"`
}

// NewUserResponse converts a user entity into its response body.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		IsVerified:  u.IsVerified,
		APIKey:      u.APIKey,
		Language:    u.Language,
		CreatedAt:   u.CreatedAt,
	}
}

// NewUserInfoResponse converts a user entity into the /main/user/info body.
func NewUserInfoResponse(u *entity.User) UserInfoResponse {
	return UserInfoResponse{
		UserEmail: u.Email,
		APIKey:    u.APIKey,
		Language:  u.Language,
	}
}

// NewUserListResponse converts users into response bodies.
func NewUserListResponse(users []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
