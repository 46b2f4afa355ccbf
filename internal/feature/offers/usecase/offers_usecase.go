package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	authentity "marketplace_backend/internal/feature/auth/domain/entity"
	"marketplace_backend/internal/feature/offers/domain/entity"
)

// SearchFilter narrows and orders the offers returned by Search.
// The zero value matches every offer in stable store order.
type SearchFilter struct {
	// Title is a free-text fragment matched case-insensitively as a
	// substring against offer titles. Empty means no title filter.
	Title string
	// PriceMin and PriceMax bound the price range when non-nil.
	PriceMin *float64
	PriceMax *float64
	// SortByPrice orders results by ascending price instead of store order.
	SortByPrice bool
}

// OfferRepository abstracts the persistence layer for offer entities.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type OfferRepository interface {
	// Create persists a new offer. The offer must already carry a resolved
	// image reference.
	Create(ctx context.Context, offer *entity.Offer) error

	// FindByID retrieves an offer with its owner expanded.
	FindByID(ctx context.Context, id uint) (*entity.Offer, error)

	// Search retrieves the offers matching the filter, owners expanded.
	Search(ctx context.Context, filter SearchFilter) ([]*entity.Offer, error)

	// DeleteByID removes an offer record. It returns ErrOfferNotFound when
	// no row was deleted.
	DeleteByID(ctx context.Context, id uint) error
}

// ImageHost uploads and removes externally hosted offer images.
type ImageHost interface {
	Upload(ctx context.Context, data []byte, publicID string) (ref, url string, err error)
	Destroy(ctx context.Context, ref string) error
}

// PublishInput carries the listing fields supplied by the publisher.
// The five facet fields become the offer's attribute list in fixed order.
type PublishInput struct {
	Title       string
	Description string
	Price       float64
	Brand       string
	Size        string
	Condition   string
	Color       string
	Location    string
}

// facets returns the attribute list in the fixed facet order. Missing facets
// are recorded with an empty value, never omitted.
func (in PublishInput) facets() entity.AttributeList {
	return entity.AttributeList{
		{Key: "brand", Value: in.Brand},
		{Key: "size", Value: in.Size},
		{Key: "condition", Value: in.Condition},
		{Key: "color", Value: in.Color},
		{Key: "location", Value: in.Location},
	}
}

// offersUsecase implements the listing lifecycle business logic.
type offersUsecase struct {
	offers OfferRepository
	images ImageHost
}

// NewOffersUsecase creates a new instance of offersUsecase.
func NewOffersUsecase(offers OfferRepository, images ImageHost) *offersUsecase {
	return &offersUsecase{offers: offers, images: images}
}

// Publish creates a new offer owned by the acting user. The image is
// uploaded to the external host first; the record is only persisted once a
// resolved image reference exists, so a failed upload leaves no orphan row.
func (u *offersUsecase) Publish(ctx context.Context, owner *authentity.User, in PublishInput, image []byte) (*entity.Offer, error) {
	if len(image) == 0 {
		return nil, ErrMissingImage
	}
	if in.Price < 0 {
		return nil, ErrInvalidPrice
	}

	// The store assigns the row ID at insert time, after the upload, so the
	// destination path gets its own pre-persist unique key.
	publicID := fmt.Sprintf("offers/%s", uuid.NewString())
	ref, url, err := u.images.Upload(ctx, image, publicID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrImageUploadFailed, err)
	}

	offer := &entity.Offer{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Attributes:  in.facets(),
		ImageRef:    ref,
		ImageURL:    url,
		OwnerID:     owner.ID,
	}
	if err := u.offers.Create(ctx, offer); err != nil {
		return nil, err
	}
	offer.Owner = owner
	return offer, nil
}

// Search retrieves the offers matching the filter with owners expanded.
// A zero filter returns all offers in stable store order.
func (u *offersUsecase) Search(ctx context.Context, filter SearchFilter) ([]*entity.Offer, error) {
	return u.offers.Search(ctx, filter)
}

// GetByID retrieves a single offer with its owner expanded.
func (u *offersUsecase) GetByID(ctx context.Context, id uint) (*entity.Offer, error) {
	return u.offers.FindByID(ctx, id)
}

// Delete removes an offer and its hosted image. Only the owner may delete.
// Image removal is best-effort: a host failure is logged but does not block
// record deletion. Deleting an unknown ID is an error, not a no-op.
func (u *offersUsecase) Delete(ctx context.Context, actingUser *authentity.User, id uint) error {
	offer, err := u.offers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if offer.OwnerID != actingUser.ID {
		return ErrNotOwner
	}

	if err := u.images.Destroy(ctx, offer.ImageRef); err != nil {
		slog.Warn("failed to remove hosted image", "offer_id", id, "image_ref", offer.ImageRef, "error", err)
	}

	return u.offers.DeleteByID(ctx, id)
}
