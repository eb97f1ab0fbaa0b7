package respond

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"ielts_backend/internal/shared/apperr"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"not found", fmt.Errorf("topic x: %w", apperr.ErrNotFound), http.StatusNotFound},
		{"validation", fmt.Errorf("bad: %w", apperr.ErrValidation), http.StatusBadRequest},
		{"authentication", apperr.ErrAuthentication, http.StatusUnauthorized},
		{"forbidden", apperr.ErrForbidden, http.StatusForbidden},
		{"conflict", fmt.Errorf("dup: %w", apperr.ErrConflict), http.StatusConflict},
		{"persistence", fmt.Errorf("commit: %w", apperr.ErrPersistence), http.StatusInternalServerError},
		{"provider", fmt.Errorf("gemini: %w", apperr.ErrProvider), http.StatusInternalServerError},
		{"schema", fmt.Errorf("payload: %w", apperr.ErrSchemaValidation), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Status(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestError_DoesNotLeakDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/fail", func(c *gin.Context) {
		Error(c, fmt.Errorf("dial tcp 10.0.0.1:443: secret detail: %w", apperr.ErrProvider))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"scoring failed"}`, w.Body.String())
}

func TestError_CustomMessageOnlyFor4xx(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		err          error
		expectedBody string
	}{
		{"4xx uses custom message", apperr.ErrNotFound, `{"error":"topic not found"}`},
		{"5xx keeps class message", apperr.ErrPersistence, `{"error":"an internal error has occurred"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/fail", func(c *gin.Context) { Error(c, tt.err, "topic not found") })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/x", func(c *gin.Context) { BadRequest(c, errors.New("EOF"), "invalid request") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())
}
