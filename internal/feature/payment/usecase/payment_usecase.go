// Package usecase implements the business logic for the payment feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	authentity "marketplace_backend/internal/feature/auth/domain/entity"
)

// Currency is the fixed settlement currency for all charges.
const Currency = "eur"

// ErrPaymentFailed is returned when the payment processor rejects a charge.
// It wraps the processor's message.
var ErrPaymentFailed = errors.New("payment failed")

// PaymentGateway forwards a charge to the external payment processor.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (platform/externalapi).
type PaymentGateway interface {
	// Charge submits a single charge in minor currency units and returns
	// the processor's status verbatim.
	Charge(ctx context.Context, amountMinor int64, currency, description, source string) (string, error)
}

// paymentUsecase implements the charge business logic.
type paymentUsecase struct {
	gateway PaymentGateway
}

// NewPaymentUsecase creates a new instance of paymentUsecase.
func NewPaymentUsecase(gateway PaymentGateway) *paymentUsecase {
	return &paymentUsecase{gateway: gateway}
}

// Charge converts the amount from major to minor currency units and forwards
// it to the processor. One attempt per call: no idempotency key, no retry.
func (u *paymentUsecase) Charge(ctx context.Context, actingUser *authentity.User, amount float64, title, sourceToken string) (string, error) {
	amountMinor := int64(math.Round(amount * 100))
	description := fmt.Sprintf("Marketplace payment for: %s", title)

	status, err := u.gateway.Charge(ctx, amountMinor, Currency, description, sourceToken)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrPaymentFailed, err)
	}
	return status, nil
}
