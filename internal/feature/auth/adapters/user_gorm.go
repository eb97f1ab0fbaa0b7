// Package adapters provides the gorm persistence of users.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ielts_backend/internal/feature/auth/domain/entity"
	"ielts_backend/internal/feature/auth/usecase"
	"ielts_backend/internal/platform/db"
	"ielts_backend/internal/shared/apperr"
)

// userGorm implements the user repositories of the auth and admin use cases.
type userGorm struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a user repository on the given connection.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, apperr.ErrPersistence, err)
}

// Create inserts u. A taken email yields usecase.ErrEmailAlreadyExists.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return fmt.Errorf("create user: nil user: %w", apperr.ErrValidation)
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(u).Error
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return persistenceError("create user", err)
	}
	return nil
}

// FindByEmail returns usecase.ErrUserNotFound when no user has the email.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, persistenceError("find user by email", err)
	}
	return &u, nil
}

// FindByID returns usecase.ErrUserNotFound when the id is unknown.
func (r *userGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return findByID(r.db.WithContext(ctx), id)
}

func findByID(tx *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var u entity.User
	if err := tx.Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, persistenceError("find user", err)
	}
	return &u, nil
}

// List returns all users ordered by creation time.
func (r *userGorm) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, persistenceError("list users", err)
	}
	return users, nil
}

// updateColumns applies columns to the user and returns the stored row, all in one transaction.
func (r *userGorm) updateColumns(ctx context.Context, op string, id uuid.UUID, columns map[string]any) (*entity.User, error) {
	var out *entity.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.User{}).Where("id = ?", id).Updates(columns)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrUserNotFound
		}
		u, err := findByID(tx, id)
		if err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrPersistence) {
			return nil, err
		}
		return nil, persistenceError(op, err)
	}
	return out, nil
}

// UpdateCredential stores the scoring key and feedback language.
// On failure the previous values stay in place.
func (r *userGorm) UpdateCredential(ctx context.Context, id uuid.UUID, apiKey, language string) (*entity.User, error) {
	return r.updateColumns(ctx, "update credential", id, map[string]any{
		"api_key":  apiKey,
		"language": language,
	})
}

// MarkVerified flags the user as verified and clears the pending code.
func (r *userGorm) MarkVerified(ctx context.Context, id uuid.UUID) error {
	_, err := r.updateColumns(ctx, "mark verified", id, map[string]any{
		"is_verified":       true,
		"verification_code": nil,
		"code_expires_at":   nil,
	})
	return err
}

// Update applies an administrator patch.
func (r *userGorm) Update(ctx context.Context, id uuid.UUID, patch entity.UserPatch) (*entity.User, error) {
	columns := map[string]any{}
	if patch.FullName != nil {
		columns["full_name"] = *patch.FullName
	}
	if patch.IsActive != nil {
		columns["is_active"] = *patch.IsActive
	}
	if patch.IsSuperuser != nil {
		columns["is_superuser"] = *patch.IsSuperuser
	}
	if patch.IsVerified != nil {
		columns["is_verified"] = *patch.IsVerified
	}
	if len(columns) == 0 {
		return r.FindByID(ctx, id)
	}
	return r.updateColumns(ctx, "update user", id, columns)
}

// PromoteSuperuser grants superuser rights to the user with the given email.
func (r *userGorm) PromoteSuperuser(ctx context.Context, email string) error {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	_, err = r.updateColumns(ctx, "promote superuser", u.ID, map[string]any{"is_superuser": true})
	return err
}

// Delete removes the user and every essay they published in one transaction.
func (r *userGorm) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM essays WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&entity.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return persistenceError("delete user", err)
	}
	return nil
}
