package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// UserCache caches directory lookups in Redis. Entries are short-lived: a
// role change in the directory must become visible quickly because policy
// decisions key off it.
type UserCache struct {
	client *redis.Client
}

// NewUserCache creates a new UserCache.
func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

// UserCacheTTL bounds how stale a cached directory entry may be.
const UserCacheTTL = 30 * time.Second

const userCachePrefix = "cache:user:"

// CachedUser represents a cached directory entry.
type CachedUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// GetUser retrieves a user from cache. A miss returns (nil, nil).
func (s *UserCache) GetUser(ctx context.Context, userID string) (*CachedUser, error) {
	key := userCachePrefix + userID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var user CachedUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUser stores a user in cache.
func (s *UserCache) SetUser(ctx context.Context, user *CachedUser) error {
	key := userCachePrefix + user.ID
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, UserCacheTTL).Err()
}

// InvalidateUser removes a user from cache.
func (s *UserCache) InvalidateUser(ctx context.Context, userID string) error {
	key := userCachePrefix + userID
	return s.client.Del(ctx, key).Err()
}
