package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ielts_backend/internal/feature/essays/domain/entity"
	"ielts_backend/internal/feature/essays/usecase"
	"ielts_backend/internal/shared/apperr"
)

type essayGorm struct {
	db *gorm.DB
}

var _ usecase.EssayRepository = (*essayGorm)(nil)

// NewEssayGorm creates an essay repository on the given connection.
func NewEssayGorm(db *gorm.DB) *essayGorm {
	return &essayGorm{db: db}
}

// Create inserts e after checking, in the same transaction, that its topic and author exist.
func (r *essayGorm) Create(ctx context.Context, e *entity.Essay) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entity.Topic{}).Where("id = ?", e.TopicID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return usecase.ErrTopicNotFound
		}
		if err := tx.Table("users").Where("id = ?", e.UserID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return usecase.ErrAuthorNotFound
		}
		return tx.Create(e).Error
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return persistenceError("create essay", err)
	}
	return nil
}

// ListByTopic returns the topic's essays, earliest published first.
func (r *essayGorm) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]entity.Essay, error) {
	var essays []entity.Essay
	err := r.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("published_at ASC").
		Find(&essays).Error
	if err != nil {
		return nil, persistenceError("list essays", err)
	}
	return essays, nil
}
