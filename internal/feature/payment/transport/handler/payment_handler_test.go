package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "marketplace_backend/internal/feature/auth/domain/entity"
	authhandler "marketplace_backend/internal/feature/auth/transport/handler"
	"marketplace_backend/internal/feature/payment/usecase"
)

// mockPaymentUsecase is a mock implementation of the PaymentUsecase interface.
type mockPaymentUsecase struct {
	ChargeFunc func(ctx context.Context, actingUser *authentity.User, amount float64, title, sourceToken string) (string, error)
}

func (m *mockPaymentUsecase) Charge(ctx context.Context, actingUser *authentity.User, amount float64, title, sourceToken string) (string, error) {
	if m.ChargeFunc != nil {
		return m.ChargeFunc(ctx, actingUser, amount, title, sourceToken)
	}
	return "succeeded", nil
}

var actingUser = &authentity.User{ID: 7, Username: "alice"}

// withUser injects the acting user the way the auth middleware would.
func withUser(c *gin.Context) {
	c.Set(authhandler.ContextUser, actingUser)
	c.Next()
}

func TestPaymentHandler_Charge(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		authenticated  bool
		mockCharge     func(ctx context.Context, actingUser *authentity.User, amount float64, title, sourceToken string) (string, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:          "success: charge forwarded",
			requestBody:   gin.H{"title": "Blue Jacket", "amount": 42.5, "stripeToken": "tok_visa"},
			authenticated: true,
			mockCharge: func(ctx context.Context, actingUser *authentity.User, amount float64, title, sourceToken string) (string, error) {
				if amount != 42.5 || title != "Blue Jacket" || sourceToken != "tok_visa" {
					t.Errorf("request fields not forwarded: %v %q %q", amount, title, sourceToken)
				}
				return "succeeded", nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"status": "succeeded"},
		},
		{
			name:           "failure: missing source token",
			requestBody:    gin.H{"title": "Blue Jacket", "amount": 42.5},
			authenticated:  true,
			mockCharge:     nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:          "failure: processor declines",
			requestBody:   gin.H{"title": "Blue Jacket", "amount": 42.5, "stripeToken": "tok_visa"},
			authenticated: true,
			mockCharge: func(ctx context.Context, actingUser *authentity.User, amount float64, title, sourceToken string) (string, error) {
				return "", usecase.ErrPaymentFailed
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "payment failed"},
		},
		{
			name:           "failure: no authenticated user",
			requestBody:    gin.H{"title": "Blue Jacket", "amount": 42.5, "stripeToken": "tok_visa"},
			authenticated:  false,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPaymentHandler(&mockPaymentUsecase{ChargeFunc: tt.mockCharge})

			router := gin.New()
			if tt.authenticated {
				router.POST("/payment", withUser, handler.Charge)
			} else {
				router.POST("/payment", handler.Charge)
			}

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/payment", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedBody != nil {
				var resp gin.H
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedBody, resp)
			}
		})
	}
}
