// Package usecase implements superuser management of users and topics.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	authentity "ielts_backend/internal/feature/auth/domain/entity"
	essayentity "ielts_backend/internal/feature/essays/domain/entity"
	essaysusecase "ielts_backend/internal/feature/essays/usecase"
	"ielts_backend/internal/shared/apperr"
)

// ErrEmptyPatch is returned when a user update names no field.
var ErrEmptyPatch = fmt.Errorf("no fields to update: %w", apperr.ErrValidation)

// UserStore is the user repository as seen by administrators.
type UserStore interface {
	List(ctx context.Context) ([]authentity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*authentity.User, error)
	Update(ctx context.Context, id uuid.UUID, patch authentity.UserPatch) (*authentity.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PromoteSuperuser(ctx context.Context, email string) error
}

// TopicStore is the topic repository as seen by administrators.
type TopicStore interface {
	List(ctx context.Context) ([]essayentity.Topic, error)
	Create(ctx context.Context, t *essayentity.Topic) error
	Update(ctx context.Context, id uuid.UUID, text string) (*essayentity.Topic, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type adminUsecase struct {
	users  UserStore
	topics TopicStore
}

// NewAdminUsecase creates the administration service.
func NewAdminUsecase(users UserStore, topics TopicStore) *adminUsecase {
	return &adminUsecase{users: users, topics: topics}
}

func (u *adminUsecase) ListUsers(ctx context.Context) ([]authentity.User, error) {
	return u.users.List(ctx)
}

func (u *adminUsecase) UpdateUser(ctx context.Context, id uuid.UUID, patch authentity.UserPatch) (*authentity.User, error) {
	if patch.Empty() {
		return nil, ErrEmptyPatch
	}
	if patch.FullName != nil {
		name := strings.TrimSpace(*patch.FullName)
		patch.FullName = &name
	}
	user, err := u.users.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", id.String()).Msg("user updated by administrator")
	return user, nil
}

// DeleteUser removes the user and their published essays.
func (u *adminUsecase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := u.users.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("user_id", id.String()).Msg("user deleted by administrator")
	return nil
}

// ListTopics returns every topic. Unlike the public listing, no topics is not an error.
func (u *adminUsecase) ListTopics(ctx context.Context) ([]essayentity.Topic, error) {
	return u.topics.List(ctx)
}

func (u *adminUsecase) CreateTopic(ctx context.Context, text string) (*essayentity.Topic, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, essaysusecase.ErrEmptyTopic
	}
	t := &essayentity.Topic{Text: text}
	if err := u.topics.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (u *adminUsecase) UpdateTopic(ctx context.Context, id uuid.UUID, text string) (*essayentity.Topic, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, essaysusecase.ErrEmptyTopic
	}
	return u.topics.Update(ctx, id, text)
}

// DeleteTopic removes the topic together with its essays.
func (u *adminUsecase) DeleteTopic(ctx context.Context, id uuid.UUID) error {
	return u.topics.Delete(ctx, id)
}

// PromoteSuperuser grants superuser rights to an existing account.
func (u *adminUsecase) PromoteSuperuser(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("empty email: %w", apperr.ErrValidation)
	}
	if err := u.users.PromoteSuperuser(ctx, email); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("superuser granted")
	return nil
}
