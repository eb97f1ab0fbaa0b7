package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ielts_backend/internal/api"
	"ielts_backend/internal/feature/auth/domain/entity"
	"ielts_backend/internal/platform/http/respond"
	jwtmw "ielts_backend/internal/platform/jwt"
	"ielts_backend/internal/shared/apperr"
)

// AccountUsecase defines the operations a signed-in user runs on their own account.
type AccountUsecase interface {
	StoreCredential(ctx context.Context, userID uuid.UUID, apiKey, language string) (*entity.User, error)
	GetInfo(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// AccountHandler serves the /main/user endpoints.
type AccountHandler struct {
	account AccountUsecase
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(account AccountUsecase) *AccountHandler {
	return &AccountHandler{account: account}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := jwtmw.UserID(c)
	if !ok {
		respond.Error(c, apperr.ErrAuthentication)
	}
	return id, ok
}

// Me handles GET /main/user/me.
func (h *AccountHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.account.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewUserResponse(user))
}

// StoreCredential handles POST /main/user/storage.
func (h *AccountHandler) StoreCredential(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req api.StorageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err, "invalid request")
		return
	}
	user, err := h.account.StoreCredential(c.Request.Context(), userID, req.APIKey, req.UserLanguage)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewUserResponse(user))
}

// Info handles GET /main/user/info.
func (h *AccountHandler) Info(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.account.GetInfo(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewUserInfoResponse(user))
}

// Delete handles DELETE /main/user/delete.
func (h *AccountHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.account.DeleteAccount(c.Request.Context(), userID); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
