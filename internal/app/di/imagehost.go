// Package di provides dependency injection factories for creating application components.
package di

import (
	"marketplace_backend/internal/platform/externalapi/cloudinary"
	infrahttp "marketplace_backend/internal/platform/http"
)

// NewImageHost creates a fully configured Cloudinary client with HTTP client.
func NewImageHost() *cloudinary.Client {
	cfg := cloudinary.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return cloudinary.NewClient(cfg, httpClient)
}
