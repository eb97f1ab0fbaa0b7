package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"ielts_backend/internal/feature/essays/domain/entity"
)

// TopicRepository reads topics.
type TopicRepository interface {
	List(ctx context.Context) ([]entity.Topic, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Topic, error)
}

// EssayRepository persists published essays.
type EssayRepository interface {
	// Create inserts e, failing with a not-found error when its topic or author is missing.
	Create(ctx context.Context, e *entity.Essay) error
	// ListByTopic returns the topic's essays in publication order.
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]entity.Essay, error)
}

type essaysUsecase struct {
	topics TopicRepository
	essays EssayRepository
	now    func() time.Time
}

// NewEssaysUsecase creates the publishing and ranking use cases.
func NewEssaysUsecase(topics TopicRepository, essays EssayRepository) *essaysUsecase {
	return &essaysUsecase{topics: topics, essays: essays, now: time.Now}
}

// ListTopics returns every topic, or ErrNoTopics when there are none.
func (u *essaysUsecase) ListTopics(ctx context.Context) ([]entity.Topic, error) {
	topics, err := u.topics.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		return nil, ErrNoTopics
	}
	return topics, nil
}

// Publish stores an essay under topicID authored by userID.
func (u *essaysUsecase) Publish(ctx context.Context, topicID, userID uuid.UUID, content string, score *float64) (*entity.Essay, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if score != nil && (math.IsNaN(*score) || *score < 0 || *score > 9) {
		return nil, ErrInvalidScore
	}
	if _, err := u.topics.FindByID(ctx, topicID); err != nil {
		return nil, err
	}

	essay := &entity.Essay{
		UserID:      userID,
		TopicID:     topicID,
		Content:     content,
		Score:       score,
		PublishedAt: u.now(),
	}
	if err := u.essays.Create(ctx, essay); err != nil {
		return nil, err
	}
	return essay, nil
}

// GetTopicView returns the topic with its essays ranked by score and by time.
func (u *essaysUsecase) GetTopicView(ctx context.Context, topicID uuid.UUID) (*entity.TopicView, error) {
	topic, err := u.topics.FindByID(ctx, topicID)
	if err != nil {
		return nil, err
	}
	essays, err := u.essays.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	return &entity.TopicView{
		Topic:       *topic,
		ScoreRanked: RankByScore(essays),
		TimeRanked:  RankByTime(essays),
	}, nil
}
