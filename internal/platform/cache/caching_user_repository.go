// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"marketplace_backend/internal/feature/auth/domain/entity"
	"marketplace_backend/internal/feature/auth/usecase"
)

// CachingUserRepository decorates a UserRepository with Redis caching of
// bearer-token lookups. Every protected request resolves a token, so this is
// the one hot read path; all other methods delegate to the inner repository.
// Tokens are issued once and never rotated, which makes the cached mapping
// safe to hold for the TTL.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that CachingUserRepository implements UserRepository.
var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 15 minutes. If namespace is empty, it uses "tokens".
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if namespace == "" {
		namespace = "tokens"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// tokenKey generates the cache key for a bearer token.
func (c *CachingUserRepository) tokenKey(token string) string {
	return c.namespace + ":" + token
}

// FindByToken resolves a bearer token, checking cache first then falling
// back to the database.
func (c *CachingUserRepository) FindByToken(ctx context.Context, token string) (*entity.User, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByToken(ctx, token)
	}

	key := c.tokenKey(token)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var u entity.User
		if err := json.Unmarshal(b, &u); err == nil {
			return &u, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	u, err := c.inner.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(u); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return u, nil
}

// Create delegates to the inner repository. The fresh token cannot be cached
// yet and nothing needs invalidating.
func (c *CachingUserRepository) Create(ctx context.Context, u *entity.User) error {
	return c.inner.Create(ctx, u)
}

// FindByEmail delegates to the inner repository.
func (c *CachingUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return c.inner.FindByEmail(ctx, email)
}

// FindByID delegates to the inner repository.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return c.inner.FindByID(ctx, id)
}

// SetAvatar delegates to the inner repository and invalidates the owning
// user's cached token entry so the next resolve sees the new avatar.
func (c *CachingUserRepository) SetAvatar(ctx context.Context, id uint, ref, url string) error {
	if err := c.inner.SetAvatar(ctx, id, ref, url); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	u, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil // Best effort: the entry expires with the TTL anyway
	}
	_ = c.rdb.Del(ctx, c.tokenKey(u.Token)).Err()
	return nil
}
