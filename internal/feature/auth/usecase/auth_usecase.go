package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists when a
	// user with the same email is already stored.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user matching the given email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves the user matching the given ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByToken retrieves the user holding the given bearer token.
	FindByToken(ctx context.Context, token string) (*entity.User, error)

	// SetAvatar records the image host reference and delivery URL for the
	// user's avatar.
	SetAvatar(ctx context.Context, id uint, ref, url string) error
}

// ImageUploader uploads image bytes to the external image host and returns
// the host's opaque reference and delivery URL.
type ImageUploader interface {
	Upload(ctx context.Context, data []byte, publicID string) (ref, url string, err error)
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users  UserRepository
	images ImageUploader
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository, images ImageUploader) *authUsecase {
	return &authUsecase{users: users, images: images}
}

// Register creates a new account with a salted credential hash and a freshly
// issued bearer token. The optional avatar is uploaded to the image host
// after the record exists; an avatar upload failure does not fail the signup.
func (u *authUsecase) Register(ctx context.Context, email, username, password string, newsletter bool, avatar []byte) (*entity.User, error) {
	if email == "" || username == "" || password == "" {
		return nil, ErrMissingField
	}

	salt, err := newSalt()
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(password, salt)
	if err != nil {
		return nil, err
	}
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        email,
		Username:     username,
		Newsletter:   newsletter,
		PasswordSalt: salt,
		PasswordHash: hash,
		Token:        token,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if len(avatar) > 0 {
		publicID := fmt.Sprintf("users/%d", user.ID)
		ref, url, err := u.images.Upload(ctx, avatar, publicID)
		if err != nil {
			// The account is already usable; the avatar can be re-uploaded.
			slog.Warn("avatar upload failed", "user_id", user.ID, "error", err)
			return user, nil
		}
		if err := u.users.SetAvatar(ctx, user.ID, ref, url); err != nil {
			slog.Warn("failed to persist avatar reference", "user_id", user.ID, "error", err)
			return user, nil
		}
		user.AvatarRef = ref
		user.AvatarURL = url
	}

	return user, nil
}

// dummySalt feeds the scrypt comparison that runs when no user matches the
// email, so login latency does not reveal whether an account exists.
var dummySalt = "AAAAAAAAAAAAAAAAAAAAAA=="

// Login authenticates a user by email and password and returns the account
// with its existing bearer token. The token is not rotated on login.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)

	salt, hash := dummySalt, ""
	if err == nil {
		salt, hash = user.PasswordSalt, user.PasswordHash
	}

	// Always run the derivation so unknown emails cost the same as bad
	// passwords.
	ok := verifyPassword(password, salt, hash)

	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Authenticate resolves a bearer token to the account holding it.
// The token is an opaque equality-lookup key: any holder of the token is the
// account, there is no signature or expiry to verify.
func (u *authUsecase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	user, err := u.users.FindByToken(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}
