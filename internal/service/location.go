package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"safar/internal/domain"
	"safar/internal/policy"
	"safar/internal/repository"
)

// LocationService handles location operations.
type LocationService struct {
	locationRepo repository.LocationRepository
	policy       *policy.Policy
}

// NewLocationService creates a new LocationService.
func NewLocationService(locationRepo repository.LocationRepository, pol *policy.Policy) *LocationService {
	return &LocationService{locationRepo: locationRepo, policy: pol}
}

// CreateLocation adds a named place. Admin only under the strict policy.
func (s *LocationService) CreateLocation(ctx context.Context, caller policy.Identity, name string) (*domain.Location, error) {
	if !s.policy.CanCreateLocation(caller) {
		return nil, ErrPermissionDenied
	}

	if name == "" {
		return nil, NewValidationError("name", "this field is required")
	}

	now := time.Now()
	location := &domain.Location{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewValidationError("name", "a location with this name already exists")
		}
		return nil, err
	}

	return location, nil
}

// GetLocation retrieves a location by ID.
func (s *LocationService) GetLocation(ctx context.Context, id string) (*domain.Location, error) {
	return s.locationRepo.GetByID(ctx, id)
}

// ListLocations retrieves all locations.
func (s *LocationService) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	return s.locationRepo.GetAll(ctx)
}

// UpdateLocation renames a location. Admin only.
func (s *LocationService) UpdateLocation(ctx context.Context, caller policy.Identity, id, name string) (*domain.Location, error) {
	if !s.policy.CanMutateLocation(caller) {
		return nil, ErrPermissionDenied
	}

	if name == "" {
		return nil, NewValidationError("name", "this field is required")
	}

	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	location.Name = name
	location.UpdatedAt = time.Now()

	if err := s.locationRepo.Update(ctx, location); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewValidationError("name", "a location with this name already exists")
		}
		return nil, err
	}

	return location, nil
}

// DeleteLocation removes a location. Admin only; blocked while any route
// still references it.
func (s *LocationService) DeleteLocation(ctx context.Context, caller policy.Identity, id string) error {
	if !s.policy.CanMutateLocation(caller) {
		return ErrPermissionDenied
	}

	if err := s.locationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return NewValidationError(NonFieldErrors, "location is referenced by existing routes")
		}
		return err
	}

	return nil
}
