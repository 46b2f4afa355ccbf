// Package adapters provides the repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"marketplace_backend/internal/feature/auth/domain/entity"
	"marketplace_backend/internal/feature/auth/usecase"
)

// userMySQL is the MySQL implementation of the UserRepository interface.
// It uses GORM for database access.
type userMySQL struct {
	db *gorm.DB
}

// Compile-time check that userMySQL implements UserRepository.
var _ usecase.UserRepository = (*userMySQL)(nil)

// NewUserMySQL creates a new userMySQL instance with the given gorm.DB
// connection.
func NewUserMySQL(db *gorm.DB) *userMySQL {
	return &userMySQL{db: db}
}

// isDuplicateKey reports whether err is a unique-constraint violation.
// MySQL reports error 1062; the SQLite driver used in tests reports a
// "UNIQUE constraint failed" message.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create adds a user to the database.
// It returns usecase.ErrEmailAlreadyExists when a user with the same email
// is already stored.
func (r *userMySQL) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by email address.
// It returns usecase.ErrUserNotFound when no user matches.
func (r *userMySQL) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by ID.
// It returns usecase.ErrUserNotFound when no user matches.
func (r *userMySQL) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByToken retrieves the user holding the given bearer token.
// It returns usecase.ErrUserNotFound when no user matches.
func (r *userMySQL) FindByToken(ctx context.Context, token string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SetAvatar records the avatar reference and delivery URL for a user.
// It returns usecase.ErrUserNotFound when no row was updated.
func (r *userMySQL) SetAvatar(ctx context.Context, id uint, ref, url string) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).
		Updates(map[string]any{"avatar_ref": ref, "avatar_url": url})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}
