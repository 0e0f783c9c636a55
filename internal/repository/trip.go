package repository

import (
	"context"

	"safar/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetAll retrieves all trips ordered by request time, newest first.
	GetAll(ctx context.Context) ([]*domain.Trip, error)

	// GetByPassengerID retrieves a passenger's trips, newest first.
	GetByPassengerID(ctx context.Context, passengerID string) ([]*domain.Trip, error)

	// GetByDriverID retrieves a driver's assigned trips, newest first.
	GetByDriverID(ctx context.Context, driverID string) ([]*domain.Trip, error)

	// Update updates an existing trip.
	Update(ctx context.Context, trip *domain.Trip) error

	// Delete removes a trip.
	Delete(ctx context.Context, id string) error
}
