// Package cloudinary provides a client for the Cloudinary image hosting API.
package cloudinary

import (
	"os"
	"time"
)

// defaultBaseURL is the production Cloudinary API endpoint.
const defaultBaseURL = "https://api.cloudinary.com"

// Config holds configuration for the Cloudinary client.
type Config struct {
	CloudName string        // account cloud name, part of the API path
	APIKey    string        // API key for authentication
	APISecret string        // API secret used to sign requests
	BaseURL   string        // base URL for the API, overridable in tests
	Timeout   time.Duration // HTTP request timeout
}

// LoadConfig loads Cloudinary configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("CLOUDINARY_BASE_URL")
	if base == "" {
		base = defaultBaseURL
	}
	return Config{
		CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		BaseURL:   base,
		Timeout:   30 * time.Second,
	}
}
