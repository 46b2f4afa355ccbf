package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace_backend/internal/feature/auth/domain/entity"
	"marketplace_backend/internal/feature/auth/usecase"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	RegisterFunc     func(ctx context.Context, email, username, password string, newsletter bool, avatar []byte) (*entity.User, error)
	LoginFunc        func(ctx context.Context, email, password string) (*entity.User, error)
	AuthenticateFunc func(ctx context.Context, token string) (*entity.User, error)
}

func (m *mockAuthUsecase) Register(ctx context.Context, email, username, password string, newsletter bool, avatar []byte) (*entity.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, username, password, newsletter, avatar)
	}
	return nil, errors.New("register failed")
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (*entity.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, errors.New("login failed")
}

func (m *mockAuthUsecase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, token)
	}
	return nil, usecase.ErrInvalidToken
}

// signupForm builds a multipart signup request body.
func signupForm(t *testing.T, fields map[string]string, avatar []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if avatar != nil {
		fw, err := w.CreateFormFile("avatar", "avatar.jpg")
		require.NoError(t, err)
		_, err = fw.Write(avatar)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestAuthHandler_Signup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		fields         map[string]string
		avatar         []byte
		mockRegister   func(ctx context.Context, email, username, password string, newsletter bool, avatar []byte) (*entity.User, error)
		expectedStatus int
	}{
		{
			name:   "success: registration returns token",
			fields: map[string]string{"email": "a@x.com", "username": "alice", "password": "secret", "newsletter": "true"},
			mockRegister: func(ctx context.Context, email, username, password string, newsletter bool, avatar []byte) (*entity.User, error) {
				return &entity.User{ID: 1, Email: email, Username: username, Newsletter: newsletter, Token: "issued-token"}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "success: avatar bytes forwarded",
			fields: map[string]string{"email": "a@x.com", "username": "alice", "password": "secret"},
			avatar: []byte{0xFF, 0xD8, 0xFF},
			mockRegister: func(ctx context.Context, email, username, password string, newsletter bool, avatar []byte) (*entity.User, error) {
				if len(avatar) != 3 {
					return nil, errors.New("avatar bytes not forwarded")
				}
				return &entity.User{ID: 1, Email: email, Username: username, Token: "issued-token"}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "failure: missing username",
			fields: map[string]string{"email": "a@x.com", "password": "secret"},
			mockRegister: func(ctx context.Context, email, username, password string, newsletter bool, avatar []byte) (*entity.User, error) {
				return nil, usecase.ErrMissingField
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "failure: duplicate email",
			fields: map[string]string{"email": "a@x.com", "username": "alice", "password": "secret"},
			mockRegister: func(ctx context.Context, email, username, password string, newsletter bool, avatar []byte) (*entity.User, error) {
				return nil, usecase.ErrEmailAlreadyExists
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "failure: unexpected store error",
			fields: map[string]string{"email": "a@x.com", "username": "alice", "password": "secret"},
			mockRegister: func(ctx context.Context, email, username, password string, newsletter bool, avatar []byte) (*entity.User, error) {
				return nil, errors.New("store down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&mockAuthUsecase{RegisterFunc: tt.mockRegister})

			router := gin.New()
			router.POST("/user/signup", handler.Signup)

			body, contentType := signupForm(t, tt.fields, tt.avatar)
			req, _ := http.NewRequest(http.MethodPost, "/user/signup", body)
			req.Header.Set("Content-Type", contentType)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusCreated {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "issued-token", resp["token"], "token missing from response")
				assert.NotContains(t, w.Body.String(), "hash", "credential material leaked")
				assert.NotContains(t, w.Body.String(), "salt", "credential material leaked")
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockLogin      func(ctx context.Context, email, password string) (*entity.User, error)
		expectedStatus int
	}{
		{
			name:        "success: login returns existing token",
			requestBody: gin.H{"email": "a@x.com", "password": "secret"},
			mockLogin: func(ctx context.Context, email, password string) (*entity.User, error) {
				return &entity.User{ID: 1, Username: "alice", Token: "issued-token"}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "failure: malformed email",
			requestBody:    gin.H{"email": "not-an-email", "password": "secret"},
			mockLogin:      nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "failure: bad credentials",
			requestBody: gin.H{"email": "a@x.com", "password": "wrong"},
			mockLogin: func(ctx context.Context, email, password string) (*entity.User, error) {
				return nil, usecase.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&mockAuthUsecase{LoginFunc: tt.mockLogin})

			router := gin.New()
			router.POST("/user/login", handler.Login)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/user/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "issued-token", resp["token"], "token missing from response")
			}
		})
	}
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	authUC := &mockAuthUsecase{
		AuthenticateFunc: func(ctx context.Context, token string) (*entity.User, error) {
			if token == "issued-token" {
				return &entity.User{ID: 1, Username: "alice", Token: token}, nil
			}
			return nil, usecase.ErrInvalidToken
		},
	}

	router := gin.New()
	router.GET("/protected", AuthRequired(authUC), func(c *gin.Context) {
		user, ok := UserFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": user.ID})
	})

	tests := []struct {
		name           string
		authorization  string
		expectedStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not a bearer scheme", "Basic abc", http.StatusUnauthorized},
		{"unissued token", "Bearer never-issued", http.StatusUnauthorized},
		{"issued token", "Bearer issued-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
