// Package handler provides the superuser HTTP handlers under /admin.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ielts_backend/internal/api"
	authentity "ielts_backend/internal/feature/auth/domain/entity"
	essayentity "ielts_backend/internal/feature/essays/domain/entity"
	"ielts_backend/internal/platform/http/respond"
	"ielts_backend/internal/shared/apperr"
)

// AdminUsecase defines user and topic management.
type AdminUsecase interface {
	ListUsers(ctx context.Context) ([]authentity.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, patch authentity.UserPatch) (*authentity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListTopics(ctx context.Context) ([]essayentity.Topic, error)
	CreateTopic(ctx context.Context, text string) (*essayentity.Topic, error)
	UpdateTopic(ctx context.Context, id uuid.UUID, text string) (*essayentity.Topic, error)
	DeleteTopic(ctx context.Context, id uuid.UUID) error
}

// AdminHandler serves /admin/users and /admin/topics.
type AdminHandler struct {
	admin AdminUsecase
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin AdminUsecase) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func pathID(c *gin.Context, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, apperr.ErrNotFound, notFound)
		return uuid.Nil, false
	}
	return id, true
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewUserListResponse(users))
}

// UpdateUser handles PATCH /admin/users/:id.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "user not found")
	if !ok {
		return
	}
	var req api.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err, "invalid request")
		return
	}
	u, err := h.admin.UpdateUser(c.Request.Context(), id, authentity.UserPatch{
		FullName:    req.FullName,
		IsActive:    req.IsActive,
		IsSuperuser: req.IsSuperuser,
		IsVerified:  req.IsVerified,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewUserResponse(u))
}

// DeleteUser handles DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "user not found")
	if !ok {
		return
	}
	if err := h.admin.DeleteUser(c.Request.Context(), id); err != nil {
		respond.Error(c, err, "user not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTopics handles GET /admin/topics.
func (h *AdminHandler) ListTopics(c *gin.Context) {
	topics, err := h.admin.ListTopics(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewTopicListResponse(topics))
}

// CreateTopic handles POST /admin/topics.
func (h *AdminHandler) CreateTopic(c *gin.Context) {
	var req api.TopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err, "topic is required")
		return
	}
	t, err := h.admin.CreateTopic(c.Request.Context(), req.Topic)
	if err != nil {
		respond.Error(c, err, "topic is required")
		return
	}
	c.JSON(http.StatusCreated, api.NewTopicResponse(t))
}

// UpdateTopic handles PATCH /admin/topics/:id.
func (h *AdminHandler) UpdateTopic(c *gin.Context) {
	id, ok := pathID(c, "topic not found")
	if !ok {
		return
	}
	var req api.TopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err, "topic is required")
		return
	}
	t, err := h.admin.UpdateTopic(c.Request.Context(), id, req.Topic)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewTopicResponse(t))
}

// DeleteTopic handles DELETE /admin/topics/:id.
func (h *AdminHandler) DeleteTopic(c *gin.Context) {
	id, ok := pathID(c, "topic not found")
	if !ok {
		return
	}
	if err := h.admin.DeleteTopic(c.Request.Context(), id); err != nil {
		respond.Error(c, err, "topic not found")
		return
	}
	c.Status(http.StatusNoContent)
}
