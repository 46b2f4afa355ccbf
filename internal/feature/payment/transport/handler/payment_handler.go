// Package handler provides the HTTP handlers for the payment feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace_backend/internal/api"
	authhandler "marketplace_backend/internal/feature/auth/transport/handler"

	authentity "marketplace_backend/internal/feature/auth/domain/entity"
)

// PaymentUsecase defines the charge operation the transport layer depends on.
type PaymentUsecase interface {
	Charge(ctx context.Context, actingUser *authentity.User, amount float64, title, sourceToken string) (string, error)
}

// PaymentHandler handles HTTP requests for card charges.
type PaymentHandler struct {
	payments PaymentUsecase
}

// NewPaymentHandler creates a new PaymentHandler instance.
func NewPaymentHandler(payments PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Charge handles the payment endpoint.
//
// Endpoint: POST /payment (bearer token required)
// Returns the processor's status verbatim on success.
func (h *PaymentHandler) Charge(c *gin.Context) {
	user, ok := authhandler.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return
	}

	var req api.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("charge validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	status, err := h.payments.Charge(c.Request.Context(), user, req.Amount, req.Title, req.StripeToken)
	if err != nil {
		// The processor's message is wrapped in the error, not exposed.
		slog.Warn("charge failed", "error", err, "user_id", user.ID, "title", req.Title)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "payment failed"})
		return
	}

	slog.Info("charge succeeded", "user_id", user.ID, "title", req.Title, "status", status)
	c.JSON(http.StatusOK, api.ChargeResponse{Status: status})
}
