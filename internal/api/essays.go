package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"ielts_backend/internal/feature/essays/domain/entity"
)

// TopicResponse is the public representation of a topic.
type TopicResponse struct {
	ID        openapi_types.UUID `json:"id"`
	Topic     string             `json:"topic"`
	CreatedAt time.Time          `json:"created_at"`
}

// EssayResponse is the public representation of a published essay.
type EssayResponse struct {
	ID          openapi_types.UUID `json:"id"`
	UserID      openapi_types.UUID `json:"user_id"`
	TopicID     openapi_types.UUID `json:"topic_id"`
	Content     string             `json:"content"`
	Score       *float64           `json:"score"`
	PublishedAt time.Time          `json:"published_at"`
}

// TopicViewResponse is the body of GET /main/topic/:topicId/essays.
type TopicViewResponse struct {
	Topic     TopicResponse   `json:"topic"`
	ScoreRank []EssayResponse `json:"score_rank"`
	TimeRank  []EssayResponse `json:"time_rank"`
}

// PublishEssayRequest is the body of POST /main/topic/:topicId/essays.
type PublishEssayRequest struct {
	Content string   `json:"content" binding:"required"`
	Score   *float64 `json:"score" binding:"omitempty,gte=0,lte=9"`
}

// TopicRequest is the body of the admin topic create and update endpoints.
type TopicRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// UpdateUserRequest is the body of PATCH /admin/users/:id. Absent fields are left unchanged.
type UpdateUserRequest struct {
	FullName    *string `json:"full_name" binding:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
	IsVerified  *bool   `json:"is_verified"`
}

// NewTopicResponse converts a topic entity into its response body.
func NewTopicResponse(t *entity.Topic) TopicResponse {
	return TopicResponse{ID: t.ID, Topic: t.Text, CreatedAt: t.CreatedAt}
}

// NewTopicListResponse converts topics into response bodies.
func NewTopicListResponse(topics []entity.Topic) []TopicResponse {
	out := make([]TopicResponse, 0, len(topics))
	for i := range topics {
		out = append(out, NewTopicResponse(&topics[i]))
	}
	return out
}

// NewEssayResponse converts an essay entity into its response body.
func NewEssayResponse(e *entity.Essay) EssayResponse {
	return EssayResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		TopicID:     e.TopicID,
		Content:     e.Content,
		Score:       e.Score,
		PublishedAt: e.PublishedAt,
	}
}

// NewEssayListResponse converts essays into response bodies, keeping their order.
func NewEssayListResponse(essays []entity.Essay) []EssayResponse {
	out := make([]EssayResponse, 0, len(essays))
	for i := range essays {
		out = append(out, NewEssayResponse(&essays[i]))
	}
	return out
}

// NewTopicViewResponse converts a topic view into its response body.
func NewTopicViewResponse(v *entity.TopicView) TopicViewResponse {
	return TopicViewResponse{
		Topic:     NewTopicResponse(&v.Topic),
		ScoreRank: NewEssayListResponse(v.ScoreRanked),
		TimeRank:  NewEssayListResponse(v.TimeRanked),
	}
}
