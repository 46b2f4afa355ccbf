// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace_backend/internal/api"
	"marketplace_backend/internal/feature/auth/domain/entity"
	"marketplace_backend/internal/feature/auth/usecase"
)

// AuthUsecase defines the authentication operations the transport layer
// depends on. Following Go convention, the interface is defined by the
// consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// Register creates a new account and returns it with its bearer token.
	Register(ctx context.Context, email, username, password string, newsletter bool, avatar []byte) (*entity.User, error)
	// Login authenticates by email and password and returns the account.
	Login(ctx context.Context, email, password string) (*entity.User, error)
	// Authenticate resolves a bearer token to the account holding it.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthHandler handles HTTP requests for signup and login.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles the user registration endpoint.
//
// Endpoint: POST /user/signup
// Content-Type: multipart/form-data
// Fields: email, username, password, newsletter, optional avatar file.
func (h *AuthHandler) Signup(c *gin.Context) {
	email := c.PostForm("email")
	username := c.PostForm("username")
	password := c.PostForm("password")
	newsletter, _ := strconv.ParseBool(c.DefaultPostForm("newsletter", "false"))

	var avatar []byte
	if file, err := c.FormFile("avatar"); err == nil {
		data, err := readFormFile(file)
		if err != nil {
			slog.Error("failed to read avatar upload", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read avatar"})
			return
		}
		avatar = data
	}

	user, err := h.auth.Register(c.Request.Context(), email, username, password, newsletter, avatar)
	if err != nil {
		slog.Warn("signup failed", "error", err, "email", email, "remote_addr", c.ClientIP())
		switch {
		case errors.Is(err, usecase.ErrMissingField):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "missing parameters"})
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "this email already has an account"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "signup failed"})
		}
		return
	}

	slog.Info("user signup successful", "email", email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Token: user.Token,
		Account: api.AccountResponse{
			Username: user.Username,
			Avatar:   user.AvatarURL,
		},
		Newsletter: user.Newsletter,
	})
}

// Login handles the user login endpoint.
//
// Endpoint: POST /user/login
// Returns the account's existing bearer token; tokens are not rotated.
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Do not reveal whether the email or the password was wrong.
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.SessionResponse{
		ID:    user.ID,
		Token: user.Token,
		Account: api.AccountResponse{
			Username: user.Username,
			Avatar:   user.AvatarURL,
		},
	})
}

// readFormFile opens and fully reads a multipart file.
func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded file", "error", err)
		}
	}()
	return io.ReadAll(f)
}
