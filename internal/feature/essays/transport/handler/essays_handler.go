// Package handler provides the HTTP handlers for topics and published essays.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ielts_backend/internal/api"
	"ielts_backend/internal/feature/essays/domain/entity"
	"ielts_backend/internal/platform/http/respond"
	jwtmw "ielts_backend/internal/platform/jwt"
	"ielts_backend/internal/shared/apperr"
)

// EssaysUsecase defines topic listing, publishing and ranking.
type EssaysUsecase interface {
	ListTopics(ctx context.Context) ([]entity.Topic, error)
	Publish(ctx context.Context, topicID, userID uuid.UUID, content string, score *float64) (*entity.Essay, error)
	GetTopicView(ctx context.Context, topicID uuid.UUID) (*entity.TopicView, error)
}

// EssaysHandler serves the /main/topics and /main/topic endpoints.
type EssaysHandler struct {
	essays EssaysUsecase
}

// NewEssaysHandler creates a new EssaysHandler.
func NewEssaysHandler(essays EssaysUsecase) *EssaysHandler {
	return &EssaysHandler{essays: essays}
}

// ListTopics handles GET /main/topics.
func (h *EssaysHandler) ListTopics(c *gin.Context) {
	topics, err := h.essays.ListTopics(c.Request.Context())
	if err != nil {
		respond.Error(c, err, "no topics found")
		return
	}
	c.JSON(http.StatusOK, api.NewTopicListResponse(topics))
}

// topicID parses the :topicId path parameter. An unparseable id cannot name a topic.
func topicID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("topicId"))
	if err != nil {
		respond.Error(c, apperr.ErrNotFound, "topic not found")
		return uuid.Nil, false
	}
	return id, true
}

// TopicView handles GET /main/topic/:topicId/essays.
func (h *EssaysHandler) TopicView(c *gin.Context) {
	id, ok := topicID(c)
	if !ok {
		return
	}
	view, err := h.essays.GetTopicView(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err, "topic not found")
		return
	}
	c.JSON(http.StatusOK, api.NewTopicViewResponse(view))
}

// Publish handles POST /main/topic/:topicId/essays.
func (h *EssaysHandler) Publish(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		respond.Error(c, apperr.ErrAuthentication)
		return
	}
	id, ok := topicID(c)
	if !ok {
		return
	}
	var req api.PublishEssayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err, "invalid request")
		return
	}
	essay, err := h.essays.Publish(c.Request.Context(), id, userID, req.Content, req.Score)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.NewEssayResponse(essay))
}
