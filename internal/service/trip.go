package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"safar/internal/domain"
	"safar/internal/policy"
	"safar/internal/repository"
	"safar/internal/repository/postgres"
)

// TripService is the trip assignment engine. It derives fare, driver and
// vehicle for new trips from the route's eligible pools, validates role
// invariants, and gates field mutability on update by caller role.
//
// Create and update each run inside one transaction so the eligibility read
// and the trip write are atomic; a failed validation leaves no partial
// record.
type TripService struct {
	db          *sql.DB
	tripRepo    repository.TripRepository
	routeRepo   repository.RouteRepository
	userRepo    repository.UserRepository
	vehicleRepo repository.VehicleRepository
	policy      *policy.Policy
	notifier    *NotificationService
}

// NewTripService creates a new TripService.
func NewTripService(
	db *sql.DB,
	tripRepo repository.TripRepository,
	routeRepo repository.RouteRepository,
	userRepo repository.UserRepository,
	vehicleRepo repository.VehicleRepository,
	pol *policy.Policy,
	notifier *NotificationService,
) *TripService {
	return &TripService{
		db:          db,
		tripRepo:    tripRepo,
		routeRepo:   routeRepo,
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
		policy:      pol,
		notifier:    notifier,
	}
}

// CreateTripRequest contains the parameters for requesting a trip. The
// passenger is always the caller; it is never client-supplied.
type CreateTripRequest struct {
	RouteID    string
	DistanceKm float64
}

// CreateTrip requests a trip on a route for the calling passenger and
// auto-assigns fare, driver and vehicle from the route.
func (s *TripService) CreateTrip(ctx context.Context, caller policy.Identity, req CreateTripRequest) (*domain.Trip, error) {
	if !s.policy.CanCreateTrip(caller) {
		return nil, ErrPermissionDenied
	}

	if req.RouteID == "" {
		return nil, NewValidationError("route_id", "this field is required")
	}
	if req.DistanceKm < 0 {
		return nil, NewValidationError("distance_km", "must not be negative")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txRouteRepo := postgres.NewRouteRepositoryWithTx(tx)
	txUserRepo := postgres.NewUserRepositoryWithTx(tx)
	txVehicleRepo := postgres.NewVehicleRepositoryWithTx(tx)
	txTripRepo := postgres.NewTripRepositoryWithTx(tx)

	var route *domain.Route
	route, err = txRouteRepo.GetByID(ctx, req.RouteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = NewValidationError("route_id", "route does not exist")
		}
		return nil, err
	}

	// The passenger reference must carry a role the policy accepts for the
	// passenger slot; the directory record is authoritative, not the token.
	var passenger *domain.User
	passenger, err = txUserRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !s.policy.ValidTripPassenger(passenger.Role) {
		err = &InvalidRoleError{Field: "passenger", Want: domain.RolePassenger, Got: passenger.Role}
		return nil, err
	}

	var eligibleVehicles []*domain.Vehicle
	eligibleVehicles, err = loadVehicles(ctx, txVehicleRepo, route.VehicleIDs)
	if err != nil {
		return nil, err
	}

	driverID, vehicleID := deriveAssignment(route, eligibleVehicles)

	if driverID != "" {
		var driver *domain.User
		driver, err = txUserRepo.GetByID(ctx, driverID)
		if err != nil {
			return nil, err
		}
		if driver.Role != domain.RoleDriver {
			err = &InvalidRoleError{Field: "driver", Want: domain.RoleDriver, Got: driver.Role}
			return nil, err
		}
	}

	now := time.Now()
	trip := &domain.Trip{
		ID:          uuid.New().String(),
		PassengerID: caller.UserID,
		DriverID:    driverID,
		VehicleID:   vehicleID,
		RouteID:     route.ID,
		DistanceKm:  req.DistanceKm,
		Fare:        roundFare(route.Price),
		Status:      domain.TripStatusRequested,
		RequestTime: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err = txTripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyTripRequested(ctx, trip)
		if trip.DriverID != "" {
			s.notifier.NotifyDriverAssigned(ctx, trip)
		}
	}

	return trip, nil
}

// UpdateTripRequest carries a partial trip update. Nil means "not supplied";
// for DriverID and VehicleID a pointer to the empty string clears the
// assignment.
type UpdateTripRequest struct {
	RouteID    *string
	Fare       *float64
	DistanceKm *float64
	DriverID   *string
	VehicleID  *string
	Status     *domain.TripStatus
}

// suppliedFields lists the policy field names present in the request.
func (r UpdateTripRequest) suppliedFields() []policy.TripField {
	var fields []policy.TripField
	if r.RouteID != nil {
		fields = append(fields, policy.TripFieldRoute)
	}
	if r.Fare != nil {
		fields = append(fields, policy.TripFieldFare)
	}
	if r.DistanceKm != nil {
		fields = append(fields, policy.TripFieldDistance)
	}
	if r.DriverID != nil {
		fields = append(fields, policy.TripFieldDriver)
	}
	if r.VehicleID != nil {
		fields = append(fields, policy.TripFieldVehicle)
	}
	if r.Status != nil {
		fields = append(fields, policy.TripFieldStatus)
	}
	return fields
}

// tripUpdateStores are the lookups a trip update validates its references
// against. UpdateTrip passes tx-scoped repositories.
type tripUpdateStores struct {
	routes   repository.RouteRepository
	users    repository.UserRepository
	vehicles repository.VehicleRepository
}

// applyTripUpdate gates the supplied fields by caller role and applies them
// to trip in place. Every locked field is reported at once; role invariants
// hold regardless of caller, so even an admin cannot assign a non-driver.
func applyTripUpdate(ctx context.Context, caller policy.Identity, trip *domain.Trip, req UpdateTripRequest, stores tripUpdateStores, now time.Time) error {
	var locked []string
	for _, field := range req.suppliedFields() {
		if !policy.CanEditTripField(caller.Role, field) {
			locked = append(locked, string(field))
		}
	}
	if len(locked) > 0 {
		return &FieldNotEditableError{Fields: locked}
	}

	if req.RouteID != nil {
		route, err := stores.routes.GetByID(ctx, *req.RouteID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NewValidationError("route_id", "route does not exist")
			}
			return err
		}
		trip.RouteID = route.ID
	}

	if req.Fare != nil {
		if *req.Fare < 0 {
			return NewValidationError("fare", "must not be negative")
		}
		trip.Fare = roundFare(*req.Fare)
	}

	if req.DistanceKm != nil {
		if *req.DistanceKm < 0 {
			return NewValidationError("distance_km", "must not be negative")
		}
		trip.DistanceKm = *req.DistanceKm
	}

	if req.DriverID != nil {
		if *req.DriverID == "" {
			trip.DriverID = ""
		} else {
			driver, err := stores.users.GetByID(ctx, *req.DriverID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return NewValidationError("driver_id", "user does not exist")
				}
				return err
			}
			if driver.Role != domain.RoleDriver {
				return &InvalidRoleError{Field: "driver_id", Want: domain.RoleDriver, Got: driver.Role}
			}
			trip.DriverID = driver.ID
		}
	}

	if req.VehicleID != nil {
		if *req.VehicleID == "" {
			trip.VehicleID = ""
		} else {
			vehicle, err := stores.vehicles.GetByID(ctx, *req.VehicleID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return NewValidationError("vehicle_id", "vehicle does not exist")
				}
				return err
			}
			trip.VehicleID = vehicle.ID
		}
	}

	if req.Status != nil {
		if err := applyStatusChange(trip, *req.Status, now); err != nil {
			return err
		}
	}

	trip.UpdatedAt = now

	return nil
}

// UpdateTrip mutates a trip. Non-admin owners may change only the status;
// admins may change any field, but role invariants still hold (assigning a
// non-driver fails InvalidRole even for admins).
func (s *TripService) UpdateTrip(ctx context.Context, caller policy.Identity, tripID string, req UpdateTripRequest) (*domain.Trip, error) {
	if tripID == "" {
		return nil, repository.ErrNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTripRepo := postgres.NewTripRepositoryWithTx(tx)
	txRouteRepo := postgres.NewRouteRepositoryWithTx(tx)
	txUserRepo := postgres.NewUserRepositoryWithTx(tx)
	txVehicleRepo := postgres.NewVehicleRepositoryWithTx(tx)

	var trip *domain.Trip
	trip, err = txTripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	// Out-of-scope callers get not-found, not forbidden.
	if !s.policy.CanViewTrip(caller, trip) {
		err = repository.ErrNotFound
		return nil, err
	}
	if !s.policy.CanMutateTrip(caller, trip) {
		err = ErrPermissionDenied
		return nil, err
	}

	prevStatus := trip.Status

	stores := tripUpdateStores{
		routes:   txRouteRepo,
		users:    txUserRepo,
		vehicles: txVehicleRepo,
	}
	if err = applyTripUpdate(ctx, caller, trip, req, stores, time.Now()); err != nil {
		return nil, err
	}

	if err = txTripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	if s.notifier != nil && trip.Status != prevStatus {
		s.notifier.NotifyTripStatusChanged(ctx, trip, prevStatus)
	}

	return trip, nil
}

// GetTrip retrieves a trip visible to the caller.
func (s *TripService) GetTrip(ctx context.Context, caller policy.Identity, tripID string) (*domain.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanViewTrip(caller, trip) {
		return nil, repository.ErrNotFound
	}

	return trip, nil
}

// DeleteTrip removes a trip. Owner or admin only; hidden trips report
// not-found.
func (s *TripService) DeleteTrip(ctx context.Context, caller policy.Identity, tripID string) error {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return err
	}

	if !s.policy.CanViewTrip(caller, trip) {
		return repository.ErrNotFound
	}
	if !s.policy.CanMutateTrip(caller, trip) {
		return ErrPermissionDenied
	}

	return s.tripRepo.Delete(ctx, trip.ID)
}

// ListOwnTrips returns the caller's trips as a passenger, newest first.
func (s *TripService) ListOwnTrips(ctx context.Context, caller policy.Identity) ([]*domain.Trip, error) {
	if !s.policy.CanCreateTrip(caller) && !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.tripRepo.GetByPassengerID(ctx, caller.UserID)
}

// ListAssignedTrips returns the trips assigned to the calling driver,
// newest first.
func (s *TripService) ListAssignedTrips(ctx context.Context, caller policy.Identity) ([]*domain.Trip, error) {
	if !caller.IsDriver() {
		return nil, ErrPermissionDenied
	}
	return s.tripRepo.GetByDriverID(ctx, caller.UserID)
}

// ListAllTrips returns every trip, newest first. Admin only.
func (s *TripService) ListAllTrips(ctx context.Context, caller policy.Identity) ([]*domain.Trip, error) {
	if !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.tripRepo.GetAll(ctx)
}

// loadVehicles resolves vehicle ids preserving their order. Vehicles that
// disappeared concurrently are skipped rather than failing the assignment.
func loadVehicles(ctx context.Context, repo repository.VehicleRepository, ids []string) ([]*domain.Vehicle, error) {
	var vehicles []*domain.Vehicle
	for _, id := range ids {
		v, err := repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}
