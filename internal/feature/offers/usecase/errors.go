// Package usecase implements the business logic for the offers feature.
package usecase

import "errors"

var (
	// ErrOfferNotFound is returned when no offer matches the given ID.
	ErrOfferNotFound = errors.New("offer not found")

	// ErrMissingImage is returned when publish is attempted without image bytes.
	ErrMissingImage = errors.New("missing offer image")

	// ErrImageUploadFailed is returned when the image host rejects the upload.
	// No offer record is persisted in that case.
	ErrImageUploadFailed = errors.New("image upload failed")

	// ErrNotOwner is returned when a user attempts to delete an offer they
	// do not own.
	ErrNotOwner = errors.New("offer belongs to a different user")

	// ErrInvalidPrice is returned when publish is attempted with a negative price.
	ErrInvalidPrice = errors.New("price must not be negative")
)
