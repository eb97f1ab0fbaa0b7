package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"ielts_backend/internal/feature/auth/domain/entity"
	"ielts_backend/internal/feature/auth/usecase"
	jwtmw "ielts_backend/internal/platform/jwt"
	"ielts_backend/internal/shared/apperr"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockAuthUsecase struct {
	SignupFunc func(email, password string, fullName *string) error
	VerifyFunc func(email, code string) error
	LoginFunc  func(email, password string) (string, error)
	LogoutFunc func(tokenID string, expiresAt time.Time) error
}

func (m *mockAuthUsecase) Signup(_ context.Context, email, password string, fullName *string) error {
	return m.SignupFunc(email, password, fullName)
}

func (m *mockAuthUsecase) Verify(_ context.Context, email, code string) error {
	return m.VerifyFunc(email, code)
}

func (m *mockAuthUsecase) Login(_ context.Context, email, password string) (string, error) {
	return m.LoginFunc(email, password)
}

func (m *mockAuthUsecase) Logout(_ context.Context, tokenID string, expiresAt time.Time) error {
	return m.LogoutFunc(tokenID, expiresAt)
}

type mockAccountUsecase struct {
	StoreCredentialFunc func(userID uuid.UUID, apiKey, language string) (*entity.User, error)
	GetInfoFunc         func(userID uuid.UUID) (*entity.User, error)
	CurrentUserFunc     func(userID uuid.UUID) (*entity.User, error)
	DeleteAccountFunc   func(userID uuid.UUID) error
}

func (m *mockAccountUsecase) StoreCredential(_ context.Context, userID uuid.UUID, apiKey, language string) (*entity.User, error) {
	return m.StoreCredentialFunc(userID, apiKey, language)
}

func (m *mockAccountUsecase) GetInfo(_ context.Context, userID uuid.UUID) (*entity.User, error) {
	return m.GetInfoFunc(userID)
}

func (m *mockAccountUsecase) CurrentUser(_ context.Context, userID uuid.UUID) (*entity.User, error) {
	return m.CurrentUserFunc(userID)
}

func (m *mockAccountUsecase) DeleteAccount(_ context.Context, userID uuid.UUID) error {
	return m.DeleteAccountFunc(userID)
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// withUser stands in for the JWT middleware.
func withUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, id)
		c.Set(jwtmw.ContextTokenID, "jti-1")
		c.Set(jwtmw.ContextTokenExpiry, time.Unix(1_900_000_000, 0))
		c.Next()
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name           string
		body           gin.H
		signupFunc     func(email, password string, fullName *string) error
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			body: gin.H{"email": "test@example.com", "password": "password123", "full_name": "Test"},
			signupFunc: func(email, password string, fullName *string) error {
				assert.Equal(t, "test@example.com", email)
				assert.Equal(t, "Test", *fullName)
				return nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"verification code sent"}`,
		},
		{
			name:           "invalid email",
			body:           gin.H{"email": "invalid-email", "password": "password123"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:           "short password",
			body:           gin.H{"email": "test@example.com", "password": "short"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:           "duplicate email",
			body:           gin.H{"email": "existing@example.com", "password": "password123"},
			signupFunc:     func(string, string, *string) error { return usecase.ErrEmailAlreadyExists },
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"email already registered"}`,
		},
		{
			name:           "store failure",
			body:           gin.H{"email": "test@example.com", "password": "password123"},
			signupFunc:     func(string, string, *string) error { return apperr.ErrPersistence },
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"an internal error has occurred"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{SignupFunc: func(e, p string, n *string) error {
				if tt.signupFunc == nil {
					t.Fatal("usecase must not be called")
				}
				return tt.signupFunc(e, p, n)
			}}
			router := gin.New()
			router.POST("/register", NewAuthHandler(mockUC).Signup)

			w := doJSON(router, http.MethodPost, "/register", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestAuthHandler_Verify(t *testing.T) {
	tests := []struct {
		name           string
		body           gin.H
		verifyErr      error
		expectedStatus int
	}{
		{"success", gin.H{"email": "a@example.com", "code": "123456"}, nil, http.StatusOK},
		{"code not numeric", gin.H{"email": "a@example.com", "code": "12ab56"}, nil, http.StatusBadRequest},
		{"code wrong length", gin.H{"email": "a@example.com", "code": "12345"}, nil, http.StatusBadRequest},
		{"wrong code", gin.H{"email": "a@example.com", "code": "654321"}, usecase.ErrInvalidVerificationCode, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{VerifyFunc: func(string, string) error { return tt.verifyErr }}
			router := gin.New()
			router.POST("/verify", NewAuthHandler(mockUC).Verify)

			w := doJSON(router, http.MethodPost, "/verify", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           gin.H
		loginFunc      func(email, password string) (string, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			body:           gin.H{"email": "test@example.com", "password": "password123"},
			loginFunc:      func(string, string) (string, error) { return "dummy-jwt-token", nil },
			expectedStatus: http.StatusOK,
			expectedBody:   `{"token":"dummy-jwt-token"}`,
		},
		{
			name:           "missing password",
			body:           gin.H{"email": "test@example.com"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:           "invalid credentials",
			body:           gin.H{"email": "wrong@example.com", "password": "wrong-password"},
			loginFunc:      func(string, string) (string, error) { return "", usecase.ErrInvalidCredentials },
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid email or password"}`,
		},
		{
			name:           "inactive user",
			body:           gin.H{"email": "off@example.com", "password": "password123"},
			loginFunc:      func(string, string) (string, error) { return "", usecase.ErrInactiveUser },
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"inactive user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{LoginFunc: tt.loginFunc}
			router := gin.New()
			router.POST("/login", NewAuthHandler(mockUC).Login)

			w := doJSON(router, http.MethodPost, "/login", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	mockUC := &mockAuthUsecase{LogoutFunc: func(tokenID string, exp time.Time) error {
		assert.Equal(t, "jti-1", tokenID)
		assert.Equal(t, int64(1_900_000_000), exp.Unix())
		return nil
	}}
	router := gin.New()
	router.POST("/logout", withUser(uuid.New()), NewAuthHandler(mockUC).Logout)

	w := doJSON(router, http.MethodPost, "/logout", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"logged out"}`, w.Body.String())
}

func TestAccountHandler(t *testing.T) {
	userID := uuid.New()
	key := "AIza-key"
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	user := &entity.User{ID: userID, Email: "a@example.com", IsActive: true, APIKey: &key, Language: "English", CreatedAt: created}

	mockUC := &mockAccountUsecase{
		StoreCredentialFunc: func(id uuid.UUID, apiKey, language string) (*entity.User, error) {
			assert.Equal(t, userID, id)
			if apiKey == "broken" {
				return nil, apperr.ErrPersistence
			}
			return user, nil
		},
		GetInfoFunc: func(uuid.UUID) (*entity.User, error) { return user, nil },
		CurrentUserFunc: func(uuid.UUID) (*entity.User, error) {
			return user, nil
		},
		DeleteAccountFunc: func(uuid.UUID) error { return nil },
	}
	h := NewAccountHandler(mockUC)

	router := gin.New()
	authed := router.Group("/main/user", withUser(userID))
	authed.GET("/me", h.Me)
	authed.GET("/info", h.Info)
	authed.POST("/storage", h.StoreCredential)
	authed.DELETE("/delete", h.Delete)
	router.GET("/anonymous/info", h.Info)

	t.Run("me", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/main/user/me", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, userID.String(), body["id"])
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "verification_code")
	})

	t.Run("info", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/main/user/info", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_email":"a@example.com","api_key":"AIza-key","language":"English"}`, w.Body.String())
	})

	t.Run("storage", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/main/user/storage", gin.H{"api_key": key, "user_language": "English"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("storage missing language", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/main/user/storage", gin.H{"api_key": key})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("storage persistence failure", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/main/user/storage", gin.H{"api_key": "broken", "user_language": "English"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"an internal error has occurred"}`, w.Body.String())
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/main/user/delete", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("no user in context", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/anonymous/info", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
