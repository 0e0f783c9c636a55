package repository

import (
	"context"

	"safar/internal/domain"
)

// RouteRepository defines the persistence operations for routes.
// Eligible driver and vehicle pools are loaded with the route in the order
// they were supplied.
type RouteRepository interface {
	// Create persists a new route with its eligible pools.
	Create(ctx context.Context, route *domain.Route) error

	// GetByID retrieves a route with its eligible pools.
	GetByID(ctx context.Context, id string) (*domain.Route, error)

	// GetAll retrieves all routes with their eligible pools.
	GetAll(ctx context.Context) ([]*domain.Route, error)

	// Update updates a route and replaces its eligible pools.
	Update(ctx context.Context, route *domain.Route) error

	// Delete removes a route.
	Delete(ctx context.Context, id string) error
}
