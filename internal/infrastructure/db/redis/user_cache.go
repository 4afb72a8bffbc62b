package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/clinicflow/auth-service/internal/core/domain"
	"github.com/clinicflow/auth-service/internal/core/ports"
)

const defaultUserTTL = 5 * time.Minute

// Writes replace both keys with a tombstone for invalidationTTL. Fills use SETNX,
// so a lookup that read the record before the write cannot cache it afterwards.
// invalidationTTL must exceed the longest store lookup.
const (
	tombstone       = "-"
	invalidationTTL = 30 * time.Second
)

var _ ports.UserRepository = (*UserCache)(nil)

// UserCache is a read-through cache in front of another UserRepository.
// Key format: user:id:<id> and user:email:<email>, both holding the full record.
// Only hits are cached, so a freshly registered email is never reported missing.
type UserCache struct {
	next   ports.UserRepository
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewUserCache wraps next. A non-positive ttl falls back to defaultUserTTL.
func NewUserCache(next ports.UserRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger) *UserCache {
	if ttl <= 0 {
		ttl = defaultUserTTL
	}
	return &UserCache{next: next, client: client, ttl: ttl, log: log}
}

// cachedUser keeps the password hash, which domain.User hides from JSON.
type cachedUser struct {
	domain.User
	PasswordHash string `json:"password_hash"`
}

func (c *UserCache) FindAll(ctx context.Context) ([]*domain.User, error) {
	return c.next.FindAll(ctx)
}

func (c *UserCache) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return c.readThrough(ctx, idKey(id), func() (*domain.User, error) {
		return c.next.FindByID(ctx, id)
	})
}

func (c *UserCache) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return c.readThrough(ctx, emailKey(email), func() (*domain.User, error) {
		return c.next.FindByEmail(ctx, email)
	})
}

func (c *UserCache) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return c.next.Create(ctx, user)
}

func (c *UserCache) Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	user, err := c.next.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, user)
	return user, nil
}

func (c *UserCache) ChangePassword(ctx context.Context, id, newPassword string) (*domain.User, error) {
	user, err := c.next.ChangePassword(ctx, id, newPassword)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, user)
	return user, nil
}

// readThrough serves key from Redis, falling back to load on a miss. Redis
// failures are logged and never fail the lookup.
func (c *UserCache) readThrough(ctx context.Context, key string, load func() (*domain.User, error)) (*domain.User, error) {
	user, err := c.get(ctx, key)
	switch {
	case err == nil:
		return user, nil
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("user cache read failed, using store")
	}

	user, err = load()
	if err != nil {
		return nil, err
	}

	if err := c.set(ctx, user); err != nil {
		c.log.Warn().Err(err).Str("user_id", user.ID).Msg("user cache write failed")
	}
	return user, nil
}

func (c *UserCache) get(ctx context.Context, key string) (*domain.User, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	if string(data) == tombstone {
		return nil, redis.Nil
	}

	var cu cachedUser
	if err := json.Unmarshal(data, &cu); err != nil {
		return nil, fmt.Errorf("decode cached user: %w", err)
	}
	user := cu.User
	user.PasswordHash = cu.PasswordHash
	return &user, nil
}

func (c *UserCache) set(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(cachedUser{User: *user, PasswordHash: user.PasswordHash})
	if err != nil {
		return fmt.Errorf("encode cached user: %w", err)
	}

	pipe := c.client.Pipeline()
	pipe.SetNX(ctx, idKey(user.ID), data, c.ttl)
	pipe.SetNX(ctx, emailKey(user.Email), data, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *UserCache) invalidate(ctx context.Context, user *domain.User) {
	pipe := c.client.Pipeline()
	pipe.Set(ctx, idKey(user.ID), tombstone, invalidationTTL)
	pipe.Set(ctx, emailKey(user.Email), tombstone, invalidationTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn().Err(err).Str("user_id", user.ID).Msg("user cache invalidation failed")
	}
}

func idKey(id string) string {
	return "user:id:" + id
}

func emailKey(email string) string {
	return "user:email:" + email
}
