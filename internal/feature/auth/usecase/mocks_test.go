package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ielts_backend/internal/feature/auth/domain/entity"
)

type mockUserRepository struct {
	CreateFunc           func(user *entity.User) error
	FindByEmailFunc      func(email string) (*entity.User, error)
	FindByIDFunc         func(id uuid.UUID) (*entity.User, error)
	MarkVerifiedFunc     func(id uuid.UUID) error
	UpdateCredentialFunc func(id uuid.UUID, apiKey, language string) (*entity.User, error)
	DeleteFunc           func(id uuid.UUID) error
}

func (m *mockUserRepository) Create(_ context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) MarkVerified(_ context.Context, id uuid.UUID) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(id)
	}
	return nil
}

func (m *mockUserRepository) UpdateCredential(_ context.Context, id uuid.UUID, apiKey, language string) (*entity.User, error) {
	if m.UpdateCredentialFunc != nil {
		return m.UpdateCredentialFunc(id, apiKey, language)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) Delete(_ context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

type mockJWTGenerator struct {
	GenerateTokenFunc func(userID uuid.UUID, email string, superuser bool) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID uuid.UUID, email string, superuser bool) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email, superuser)
	}
	return "mock-jwt-token", nil
}

type mockCodeSender struct {
	sentTo   string
	sentCode string
	err      error
}

func (m *mockCodeSender) SendVerificationCode(_ context.Context, email, code string) error {
	m.sentTo, m.sentCode = email, code
	return m.err
}

type mockTokenRevoker struct {
	RevokeFunc func(tokenID string, expiresAt time.Time) error
}

func (m *mockTokenRevoker) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	return m.RevokeFunc(tokenID, expiresAt)
}
