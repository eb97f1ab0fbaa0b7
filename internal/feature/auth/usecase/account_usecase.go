package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ielts_backend/internal/feature/auth/domain/entity"
	"ielts_backend/internal/shared/apperr"
)

// ErrAPIKeyRequired is returned when a blank key is stored.
var ErrAPIKeyRequired = fmt.Errorf("api key is required: %w", apperr.ErrValidation)

type accountUsecase struct {
	users UserRepository
}

// NewAccountUsecase creates the use cases a signed-in user runs on their own account.
func NewAccountUsecase(users UserRepository) *accountUsecase {
	return &accountUsecase{users: users}
}

func isNotFound(err error) bool {
	return errors.Is(err, apperr.ErrNotFound)
}

// StoreCredential replaces the user's scoring key and feedback language.
func (u *accountUsecase) StoreCredential(ctx context.Context, userID uuid.UUID, apiKey, language string) (*entity.User, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}
	return u.users.UpdateCredential(ctx, userID, apiKey, strings.TrimSpace(language))
}

// GetInfo returns the user's stored email, key and language.
func (u *accountUsecase) GetInfo(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// CurrentUser returns the signed-in user, rejecting deactivated accounts.
func (u *accountUsecase) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return user, nil
}

// DeleteAccount removes the user together with their essays.
func (u *accountUsecase) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return u.users.Delete(ctx, userID)
}
