package repository

import (
	"context"

	"safar/internal/domain"
)

// UserRepository defines read access to the user directory table.
// Users are created and maintained by the external identity service; this
// service never writes them.
type UserRepository interface {
	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]*domain.User, error)
}
