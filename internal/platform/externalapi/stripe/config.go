// Package stripe provides a client for the Stripe charges API.
package stripe

import (
	"os"
	"time"
)

// defaultBaseURL is the production Stripe API endpoint.
const defaultBaseURL = "https://api.stripe.com"

// Config holds configuration for the Stripe client.
type Config struct {
	APISecret string        // secret key sent as a bearer credential
	BaseURL   string        // base URL for the API, overridable in tests
	Timeout   time.Duration // HTTP request timeout
}

// LoadConfig loads Stripe configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("STRIPE_BASE_URL")
	if base == "" {
		base = defaultBaseURL
	}
	return Config{
		APISecret: os.Getenv("STRIPE_API_SECRET"),
		BaseURL:   base,
		Timeout:   30 * time.Second,
	}
}
