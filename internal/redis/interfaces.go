package redis

import "context"

// UserCacheInterface defines the interface for directory entry caching.
type UserCacheInterface interface {
	GetUser(ctx context.Context, userID string) (*CachedUser, error)
	SetUser(ctx context.Context, user *CachedUser) error
	InvalidateUser(ctx context.Context, userID string) error
}

// Ensure concrete types implement interfaces.
var _ UserCacheInterface = (*UserCache)(nil)
