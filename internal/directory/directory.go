// Package directory resolves user identifiers to roles and display names.
// The user directory itself is owned by the external identity service; this
// client reads its table and caches entries in Redis.
package directory

import (
	"context"

	"safar/internal/domain"
	"safar/internal/policy"
	"safar/internal/redis"
	"safar/internal/repository"
)

// Service looks up directory entries with read-through caching.
type Service struct {
	users repository.UserRepository
	cache redis.UserCacheInterface
}

// NewService creates a directory Service. cache may be nil to disable
// caching.
func NewService(users repository.UserRepository, cache redis.UserCacheInterface) *Service {
	return &Service{users: users, cache: cache}
}

// GetUser resolves a user id to its directory entry.
func (s *Service) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if s.cache != nil {
		cached, err := s.cache.GetUser(ctx, id)
		if err == nil && cached != nil {
			if role, rerr := domain.ParseRole(cached.Role); rerr == nil {
				return &domain.User{ID: cached.ID, Name: cached.Name, Role: role}, nil
			}
		}
		// Cache errors fall through to the store.
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetUser(ctx, &redis.CachedUser{
			ID:   user.ID,
			Name: user.Name,
			Role: string(user.Role),
		})
	}

	return user, nil
}

// Identity resolves a user id to a caller identity for policy checks.
func (s *Service) Identity(ctx context.Context, id string) (policy.Identity, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return policy.Identity{}, err
	}

	return policy.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
	}, nil
}
