// Package adapters provides the gorm persistence of topics and essays.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ielts_backend/internal/feature/essays/domain/entity"
	"ielts_backend/internal/feature/essays/usecase"
	"ielts_backend/internal/shared/apperr"
)

type topicGorm struct {
	db *gorm.DB
}

var _ usecase.TopicRepository = (*topicGorm)(nil)

// NewTopicGorm creates a topic repository on the given connection.
func NewTopicGorm(db *gorm.DB) *topicGorm {
	return &topicGorm{db: db}
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, apperr.ErrPersistence, err)
}

// List returns all topics, oldest first.
func (r *topicGorm) List(ctx context.Context) ([]entity.Topic, error) {
	var topics []entity.Topic
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&topics).Error; err != nil {
		return nil, persistenceError("list topics", err)
	}
	return topics, nil
}

// FindByID returns usecase.ErrTopicNotFound for an unknown id.
func (r *topicGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.Topic, error) {
	var t entity.Topic
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTopicNotFound
		}
		return nil, persistenceError("find topic", err)
	}
	return &t, nil
}

// Create inserts a topic.
func (r *topicGorm) Create(ctx context.Context, t *entity.Topic) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(t).Error
	})
	if err != nil {
		return persistenceError("create topic", err)
	}
	return nil
}

// Update replaces the topic text.
func (r *topicGorm) Update(ctx context.Context, id uuid.UUID, text string) (*entity.Topic, error) {
	var out entity.Topic
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Topic{}).Where("id = ?", id).Update("text", text)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrTopicNotFound
		}
		return tx.Where("id = ?", id).First(&out).Error
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, persistenceError("update topic", err)
	}
	return &out, nil
}

// Delete removes the topic and every essay published under it in one transaction.
func (r *topicGorm) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", id).Delete(&entity.Essay{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&entity.Topic{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrTopicNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return persistenceError("delete topic", err)
	}
	return nil
}
