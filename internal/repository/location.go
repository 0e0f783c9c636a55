package repository

import (
	"context"

	"safar/internal/domain"
)

// LocationRepository defines the persistence operations for locations.
type LocationRepository interface {
	// Create persists a new location.
	Create(ctx context.Context, location *domain.Location) error

	// GetByID retrieves a location by ID.
	GetByID(ctx context.Context, id string) (*domain.Location, error)

	// GetAll retrieves all locations ordered by name.
	GetAll(ctx context.Context) ([]*domain.Location, error)

	// Update updates an existing location.
	Update(ctx context.Context, location *domain.Location) error

	// Delete removes a location. Fails with ErrReferenced while any route
	// uses it as pickup or drop.
	Delete(ctx context.Context, id string) error
}
