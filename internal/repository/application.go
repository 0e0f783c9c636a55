package repository

import (
	"context"

	"safar/internal/domain"
)

// ApplicationRepository defines the persistence operations for driver
// applications.
type ApplicationRepository interface {
	// Create persists a new application.
	Create(ctx context.Context, app *domain.DriverApplication) error

	// GetByID retrieves an application by ID.
	GetByID(ctx context.Context, id string) (*domain.DriverApplication, error)

	// GetAll retrieves all applications ordered by status, then newest first.
	GetAll(ctx context.Context) ([]*domain.DriverApplication, error)

	// GetPendingByApplicantID retrieves the applicant's pending application,
	// or nil if none exists.
	GetPendingByApplicantID(ctx context.Context, applicantID string) (*domain.DriverApplication, error)

	// Update updates an existing application.
	Update(ctx context.Context, app *domain.DriverApplication) error
}
