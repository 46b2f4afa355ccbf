package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"marketplace_backend/internal/api"
	"marketplace_backend/internal/feature/auth/domain/entity"
	"marketplace_backend/internal/feature/auth/usecase"
)

// ContextUser is the gin context key under which the authenticated user is
// stored by AuthRequired.
const ContextUser = "authUser"

// AuthRequired returns a gin middleware that resolves the Authorization
// bearer token to an account and aborts with 401 when it cannot.
// The token is an opaque lookup key; there is no signature to verify.
func AuthRequired(auth AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, usecase.ErrMissingToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
				return
			}
			slog.Warn("token authentication failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid bearer token"})
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// UserFromContext returns the authenticated user stored by AuthRequired.
func UserFromContext(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}
