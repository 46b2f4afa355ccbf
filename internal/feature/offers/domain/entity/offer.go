// Package entity defines the domain entities for the offers feature.
package entity

import (
	"time"

	authentity "marketplace_backend/internal/feature/auth/domain/entity"
)

// Attribute is a single named facet of an offer (brand, size, ...).
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AttributeList is the ordered list of offer facets. It is a list, not a
// map: insertion order is preserved and duplicate keys are representable.
type AttributeList []Attribute

// Offer represents a published listing.
// The owner is stored by reference only and expanded on read.
type Offer struct {
	// ID is the unique identifier for the offer.
	ID uint `gorm:"primaryKey"`

	// Title is the listing headline, searched by substring.
	Title string `gorm:"size:255;not null"`

	// Description is the free-text body of the listing.
	Description string `gorm:"type:text"`

	// Price is the asking price in major currency units. Never negative.
	Price float64 `gorm:"not null"`

	// Attributes holds the five fixed facets in insertion order,
	// serialized as a JSON column.
	Attributes AttributeList `gorm:"serializer:json"`

	// ImageRef is the image host's opaque reference. A persisted offer
	// always carries a resolved reference; the upload happens before the
	// record is created.
	ImageRef string `gorm:"size:255;not null"`

	// ImageURL is the delivery URL the image host returned.
	ImageURL string `gorm:"size:512"`

	// OwnerID references the user who published the offer.
	OwnerID uint `gorm:"index;not null"`

	// Owner is the expanded owner association, populated on reads.
	Owner *authentity.User `gorm:"foreignKey:OwnerID"`

	// CreatedAt is the timestamp when the offer was published.
	CreatedAt time.Time
}
