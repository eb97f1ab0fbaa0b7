// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"fmt"

	"ielts_backend/internal/shared/apperr"
)

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = fmt.Errorf("email already exists: %w", apperr.ErrConflict)

	// ErrInvalidCredentials is returned when the email or password does not match.
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperr.ErrAuthentication)

	// ErrInactiveUser is returned when a deactivated user tries to authenticate.
	ErrInactiveUser = fmt.Errorf("inactive user: %w", apperr.ErrAuthentication)

	// ErrInvalidVerificationCode is returned when the code is wrong, expired or absent.
	ErrInvalidVerificationCode = fmt.Errorf("invalid or expired verification code: %w", apperr.ErrValidation)

	// ErrInvalidPassword is returned when a password does not meet the length rules.
	ErrInvalidPassword = fmt.Errorf("password must be between %d and %d characters: %w", minPasswordLength, maxPasswordLength, apperr.ErrValidation)
)
