// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email, ID or token.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to register an email that already has an account.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrMissingField is returned when a required signup field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidCredentials is returned when the email or password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrMissingToken is returned when a protected operation is attempted without a bearer token.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken is returned when the supplied bearer token matches no account.
	ErrInvalidToken = errors.New("invalid bearer token")
)
