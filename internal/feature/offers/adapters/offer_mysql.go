// Package adapters provides the repository implementations for the offers feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"marketplace_backend/internal/feature/offers/domain/entity"
	"marketplace_backend/internal/feature/offers/usecase"
)

// offerMySQL is the MySQL implementation of the OfferRepository interface.
// It uses GORM for database access.
type offerMySQL struct {
	db *gorm.DB
}

// Compile-time check that offerMySQL implements OfferRepository.
var _ usecase.OfferRepository = (*offerMySQL)(nil)

// NewOfferMySQL creates a new offerMySQL instance with the given gorm.DB
// connection.
func NewOfferMySQL(db *gorm.DB) *offerMySQL {
	return &offerMySQL{db: db}
}

// Create adds an offer to the database.
func (r *offerMySQL) Create(ctx context.Context, o *entity.Offer) error {
	// The association is set by the usecase for the response payload;
	// keep GORM from upserting the owner row.
	return r.db.WithContext(ctx).Omit("Owner").Create(o).Error
}

// FindByID retrieves an offer by ID with its owner expanded.
// It returns usecase.ErrOfferNotFound when no offer matches.
func (r *offerMySQL) FindByID(ctx context.Context, id uint) (*entity.Offer, error) {
	var o entity.Offer
	if err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrOfferNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Search retrieves the offers matching the filter, owners expanded.
// Title matching is a case-insensitive substring match; default ordering is
// primary-key order, which is the store's stable iteration order.
func (r *offerMySQL) Search(ctx context.Context, filter usecase.SearchFilter) ([]*entity.Offer, error) {
	q := r.db.WithContext(ctx).Model(&entity.Offer{}).Preload("Owner")

	if filter.Title != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Title)+"%")
	}
	if filter.PriceMin != nil {
		q = q.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		q = q.Where("price <= ?", *filter.PriceMax)
	}
	if filter.SortByPrice {
		q = q.Order("price ASC")
	} else {
		q = q.Order("id ASC")
	}

	var offers []*entity.Offer
	if err := q.Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// DeleteByID removes an offer row.
// It returns usecase.ErrOfferNotFound when the ID does not exist.
func (r *offerMySQL) DeleteByID(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Offer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrOfferNotFound
	}
	return nil
}
