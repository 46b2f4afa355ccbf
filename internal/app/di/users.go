package di

import (
	"marketplace_backend/internal/feature/auth/adapters"
	"marketplace_backend/internal/feature/auth/usecase"
	"marketplace_backend/internal/platform/cache"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewUserRepository creates the UserRepository implementation.
// If Redis is available, the MySQL repository is wrapped with a Redis
// bearer-token lookup cache. Otherwise the plain repository is returned.
func NewUserRepository(rdb *redis.Client, db *gorm.DB) usecase.UserRepository {
	repo := adapters.NewUserMySQL(db)
	if rdb != nil {
		return cache.NewCachingUserRepository(rdb, 0, repo, "tokens")
	}
	return repo
}
