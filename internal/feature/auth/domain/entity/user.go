// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account in the marketplace.
// It carries the salted credential hash and the opaque bearer token used to
// authenticate subsequent requests.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Username is the public display name.
	Username string `gorm:"size:255;not null"`

	// AvatarRef is the image host's opaque reference to the user's avatar.
	// Empty when no avatar has been uploaded.
	AvatarRef string `gorm:"size:255"`

	// AvatarURL is the delivery URL the image host returned for the avatar.
	AvatarURL string `gorm:"size:512"`

	// Newsletter records the signup-time newsletter opt-in.
	Newsletter bool

	// PasswordSalt is the base64-encoded random salt generated at signup.
	// It is immutable for the lifetime of the account.
	PasswordSalt string `gorm:"size:64;not null"`

	// PasswordHash is the base64-encoded scrypt digest of password and salt.
	// Plaintext passwords are never stored.
	PasswordHash string `gorm:"size:128;not null"`

	// Token is the opaque bearer credential issued once at signup.
	// It is never rotated and has no expiry; possession of the token is
	// equivalent to the credential.
	Token string `gorm:"uniqueIndex;size:64;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
