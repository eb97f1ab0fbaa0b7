// Package handler provides the HTTP handler for essay scoring.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ielts_backend/internal/api"
	"ielts_backend/internal/feature/scoring/domain/entity"
	"ielts_backend/internal/feature/scoring/usecase"
	"ielts_backend/internal/platform/http/respond"
	jwtmw "ielts_backend/internal/platform/jwt"
	"ielts_backend/internal/shared/apperr"
)

// ScoringUsecase scores an essay with the caller's stored credential.
type ScoringUsecase interface {
	ScoreForUser(ctx context.Context, userID uuid.UUID, sub usecase.Submission) (*entity.Result, error)
}

// ScoringHandler serves POST /main/response.
type ScoringHandler struct {
	scoring ScoringUsecase
}

// NewScoringHandler creates a new ScoringHandler.
func NewScoringHandler(scoring ScoringUsecase) *ScoringHandler {
	return &ScoringHandler{scoring: scoring}
}

// Score handles POST /main/response.
func (h *ScoringHandler) Score(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		respond.Error(c, apperr.ErrAuthentication)
		return
	}

	var req api.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err, "input_topic and input_essay are required")
		return
	}

	res, err := h.scoring.ScoreForUser(c.Request.Context(), userID, usecase.Submission{
		Model: req.Model,
		Topic: req.InputTopic,
		Essay: req.InputEssay,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrCredentialMissing) {
			respond.Error(c, err, "no api key stored")
			return
		}
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewScoreResponse(res))
}
