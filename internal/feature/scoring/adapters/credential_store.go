// Package adapters connects the scoring service to the rest of the application.
package adapters

import (
	"context"

	"github.com/google/uuid"

	authentity "ielts_backend/internal/feature/auth/domain/entity"
	"ielts_backend/internal/feature/scoring/usecase"
)

// UserFinder loads a user by id.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*authentity.User, error)
}

type credentialStore struct {
	users UserFinder
}

var _ usecase.CredentialStore = (*credentialStore)(nil)

// NewCredentialStore reads the API key and language stored on the user record.
func NewCredentialStore(users UserFinder) *credentialStore {
	return &credentialStore{users: users}
}

func (s *credentialStore) Credential(ctx context.Context, userID uuid.UUID) (string, string, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if u.APIKey == nil {
		return "", u.Language, nil
	}
	return *u.APIKey, u.Language, nil
}
