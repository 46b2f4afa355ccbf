// Package handler provides the HTTP handlers for the offers feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"marketplace_backend/internal/api"
	authhandler "marketplace_backend/internal/feature/auth/transport/handler"
	"marketplace_backend/internal/feature/offers/domain/entity"
	"marketplace_backend/internal/feature/offers/usecase"

	authentity "marketplace_backend/internal/feature/auth/domain/entity"
)

// OffersUsecase defines the listing operations the transport layer depends
// on. Following Go convention, the interface is defined by the consumer
// (handler), not the provider (usecase).
type OffersUsecase interface {
	Publish(ctx context.Context, owner *authentity.User, in usecase.PublishInput, image []byte) (*entity.Offer, error)
	Search(ctx context.Context, filter usecase.SearchFilter) ([]*entity.Offer, error)
	GetByID(ctx context.Context, id uint) (*entity.Offer, error)
	Delete(ctx context.Context, actingUser *authentity.User, id uint) error
}

// OfferHandler handles HTTP requests for the listing lifecycle.
type OfferHandler struct {
	offers OffersUsecase
}

// NewOfferHandler creates a new OfferHandler instance.
func NewOfferHandler(offers OffersUsecase) *OfferHandler {
	return &OfferHandler{offers: offers}
}

// Publish handles the offer publication endpoint.
//
// Endpoint: POST /offer/publish (bearer token required)
// Content-Type: multipart/form-data
// Fields: title, description, price, brand, size, condition, color,
// location, picture (image file).
func (h *OfferHandler) Publish(c *gin.Context) {
	user, ok := authhandler.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return
	}

	price, err := strconv.ParseFloat(c.DefaultPostForm("price", "0"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid price"})
		return
	}

	in := usecase.PublishInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Price:       price,
		Brand:       c.PostForm("brand"),
		Size:        c.PostForm("size"),
		Condition:   c.PostForm("condition"),
		Color:       c.PostForm("color"),
		Location:    c.PostForm("location"),
	}

	var image []byte
	if file, err := c.FormFile("picture"); err == nil {
		f, err := file.Open()
		if err != nil {
			slog.Error("failed to open uploaded picture", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read picture"})
			return
		}
		image, err = io.ReadAll(f)
		closeErr := f.Close()
		if err != nil || closeErr != nil {
			slog.Error("failed to read uploaded picture", "read_error", err, "close_error", closeErr)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read picture"})
			return
		}
	}

	offer, err := h.offers.Publish(c.Request.Context(), user, in, image)
	if err != nil {
		slog.Warn("publish failed", "error", err, "user_id", user.ID, "title", in.Title)
		switch {
		case errors.Is(err, usecase.ErrMissingImage):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "an offer image is required"})
		case errors.Is(err, usecase.ErrInvalidPrice):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "price must not be negative"})
		case errors.Is(err, usecase.ErrImageUploadFailed):
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "image upload failed"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "publish failed"})
		}
		return
	}

	slog.Info("offer published", "offer_id", offer.ID, "user_id", user.ID, "title", offer.Title)
	c.JSON(http.StatusCreated, toOfferResponse(offer))
}

// List handles the offer search endpoint.
//
// Endpoint: GET /offers
// Query: title (substring filter), priceMin, priceMax, sort=price-asc.
func (h *OfferHandler) List(c *gin.Context) {
	filter := usecase.SearchFilter{
		Title:       c.Query("title"),
		SortByPrice: c.Query("sort") == "price-asc",
	}
	if v := c.Query("priceMin"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid priceMin"})
			return
		}
		filter.PriceMin = &min
	}
	if v := c.Query("priceMax"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid priceMax"})
			return
		}
		filter.PriceMax = &max
	}

	offers, err := h.offers.Search(c.Request.Context(), filter)
	if err != nil {
		slog.Error("offer search failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "search failed"})
		return
	}

	out := make([]api.OfferResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, toOfferResponse(o))
	}
	c.JSON(http.StatusOK, out)
}

// GetByID handles the single-offer endpoint.
//
// Endpoint: GET /offer/:id
func (h *OfferHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid offer id"})
		return
	}

	offer, err := h.offers.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, usecase.ErrOfferNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "offer not found"})
			return
		}
		slog.Error("offer lookup failed", "error", err, "offer_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "lookup failed"})
		return
	}

	c.JSON(http.StatusOK, toOfferResponse(offer))
}

// Delete handles the offer deletion endpoint.
//
// Endpoint: DELETE /offer/delete/:id (bearer token required, owner only)
func (h *OfferHandler) Delete(c *gin.Context) {
	user, ok := authhandler.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid offer id"})
		return
	}

	if err := h.offers.Delete(c.Request.Context(), user, uint(id)); err != nil {
		slog.Warn("offer deletion failed", "error", err, "offer_id", id, "user_id", user.ID)
		switch {
		case errors.Is(err, usecase.ErrOfferNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "offer not found"})
		case errors.Is(err, usecase.ErrNotOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "you do not own this offer"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "deletion failed"})
		}
		return
	}

	slog.Info("offer deleted", "offer_id", id, "user_id", user.ID)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "offer deleted"})
}

// toOfferResponse converts an offer entity to its transport payload,
// embedding the limited owner view when the association is loaded.
func toOfferResponse(o *entity.Offer) api.OfferResponse {
	attrs := make([]api.AttributeResponse, 0, len(o.Attributes))
	for _, a := range o.Attributes {
		attrs = append(attrs, api.AttributeResponse{Key: a.Key, Value: a.Value})
	}

	resp := api.OfferResponse{
		ID:          o.ID,
		Title:       o.Title,
		Description: o.Description,
		Price:       o.Price,
		Attributes:  attrs,
		ImageURL:    o.ImageURL,
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
	}
	if o.Owner != nil {
		resp.Owner = &api.OwnerResponse{
			ID:       o.Owner.ID,
			Username: o.Owner.Username,
			Avatar:   o.Owner.AvatarURL,
		}
	}
	return resp
}
