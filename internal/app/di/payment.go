package di

import (
	"marketplace_backend/internal/platform/externalapi/stripe"
	infrahttp "marketplace_backend/internal/platform/http"
)

// NewPaymentGateway creates a fully configured Stripe client with HTTP client.
func NewPaymentGateway() *stripe.Client {
	cfg := stripe.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return stripe.NewClient(cfg, httpClient)
}
