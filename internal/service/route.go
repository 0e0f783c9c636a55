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

// RouteService handles route operations. All mutations are admin only.
type RouteService struct {
	routeRepo    repository.RouteRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
	vehicleRepo  repository.VehicleRepository
	policy       *policy.Policy
}

// NewRouteService creates a new RouteService.
func NewRouteService(
	routeRepo repository.RouteRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	vehicleRepo repository.VehicleRepository,
	pol *policy.Policy,
) *RouteService {
	return &RouteService{
		routeRepo:    routeRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		vehicleRepo:  vehicleRepo,
		policy:       pol,
	}
}

// RouteRequest contains the parameters for creating or replacing a route.
// DriverIDs and VehicleIDs are the eligible pools in priority order.
type RouteRequest struct {
	PickupID   string
	DropID     string
	Price      float64
	DriverIDs  []string
	VehicleIDs []string
}

// CreateRoute adds a pickup/drop pair with a price and eligible pools.
func (s *RouteService) CreateRoute(ctx context.Context, caller policy.Identity, req RouteRequest) (*domain.Route, error) {
	if !s.policy.CanMutateRoute(caller) {
		return nil, ErrPermissionDenied
	}

	if err := s.validateRouteRequest(ctx, &req); err != nil {
		return nil, err
	}

	now := time.Now()
	route := &domain.Route{
		ID:         uuid.New().String(),
		PickupID:   req.PickupID,
		DropID:     req.DropID,
		Price:      roundFare(req.Price),
		DriverIDs:  req.DriverIDs,
		VehicleIDs: req.VehicleIDs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.routeRepo.Create(ctx, route); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewValidationError(NonFieldErrors, "this route already exists")
		}
		return nil, err
	}

	return route, nil
}

// GetRoute retrieves a route by ID.
func (s *RouteService) GetRoute(ctx context.Context, id string) (*domain.Route, error) {
	return s.routeRepo.GetByID(ctx, id)
}

// ListRoutes retrieves all routes.
func (s *RouteService) ListRoutes(ctx context.Context) ([]*domain.Route, error) {
	return s.routeRepo.GetAll(ctx)
}

// UpdateRoute replaces a route's pair, price and eligible pools.
func (s *RouteService) UpdateRoute(ctx context.Context, caller policy.Identity, id string, req RouteRequest) (*domain.Route, error) {
	if !s.policy.CanMutateRoute(caller) {
		return nil, ErrPermissionDenied
	}

	route, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateRouteRequest(ctx, &req); err != nil {
		return nil, err
	}

	route.PickupID = req.PickupID
	route.DropID = req.DropID
	route.Price = roundFare(req.Price)
	route.DriverIDs = req.DriverIDs
	route.VehicleIDs = req.VehicleIDs
	route.UpdatedAt = time.Now()

	if err := s.routeRepo.Update(ctx, route); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewValidationError(NonFieldErrors, "this route already exists")
		}
		return nil, err
	}

	return route, nil
}

// DeleteRoute removes a route. Admin only; blocked while trips reference it.
func (s *RouteService) DeleteRoute(ctx context.Context, caller policy.Identity, id string) error {
	if !s.policy.CanMutateRoute(caller) {
		return ErrPermissionDenied
	}

	if err := s.routeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return NewValidationError(NonFieldErrors, "route is referenced by existing trips")
		}
		return err
	}

	return nil
}

// validateRouteRequest checks the pair, price and eligible pool references.
// Pool order is preserved; duplicates within a pool are rejected.
func (s *RouteService) validateRouteRequest(ctx context.Context, req *RouteRequest) error {
	verr := &ValidationError{}

	if req.PickupID == "" {
		verr.Add("pickup_id", "this field is required")
	}
	if req.DropID == "" {
		verr.Add("drop_id", "this field is required")
	}
	if req.Price < 0 {
		verr.Add("price", "must not be negative")
	}
	if !verr.Empty() {
		return verr
	}

	if _, err := s.locationRepo.GetByID(ctx, req.PickupID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			verr.Add("pickup_id", "location does not exist")
		} else {
			return err
		}
	}
	if _, err := s.locationRepo.GetByID(ctx, req.DropID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			verr.Add("drop_id", "location does not exist")
		} else {
			return err
		}
	}

	seenDrivers := make(map[string]bool, len(req.DriverIDs))
	for _, driverID := range req.DriverIDs {
		if seenDrivers[driverID] {
			verr.Add("drivers", "duplicate driver "+driverID)
			continue
		}
		seenDrivers[driverID] = true

		driver, err := s.userRepo.GetByID(ctx, driverID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				verr.Add("drivers", "user "+driverID+" does not exist")
				continue
			}
			return err
		}
		if driver.Role != domain.RoleDriver {
			return &InvalidRoleError{Field: "drivers", Want: domain.RoleDriver, Got: driver.Role}
		}
	}

	seenVehicles := make(map[string]bool, len(req.VehicleIDs))
	for _, vehicleID := range req.VehicleIDs {
		if seenVehicles[vehicleID] {
			verr.Add("vehicles", "duplicate vehicle "+vehicleID)
			continue
		}
		seenVehicles[vehicleID] = true

		if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				verr.Add("vehicles", "vehicle "+vehicleID+" does not exist")
				continue
			}
			return err
		}
	}

	if verr.Empty() {
		return nil
	}
	return verr
}
