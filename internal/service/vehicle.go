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

// VehicleService handles vehicle operations.
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	policy      *policy.Policy
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(vehicleRepo repository.VehicleRepository, userRepo repository.UserRepository, pol *policy.Policy) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo, userRepo: userRepo, policy: pol}
}

// CreateVehicleRequest contains the parameters for registering a vehicle.
// DriverID is honored for admin callers only; drivers always self-assign.
type CreateVehicleRequest struct {
	DriverID    string
	Model       string
	PlateNumber string
	LicenseRef  string
	Type        domain.VehicleType
}

// CreateVehicle registers a vehicle. Drivers register for themselves; admins
// must name the owning driver.
func (s *VehicleService) CreateVehicle(ctx context.Context, caller policy.Identity, req CreateVehicleRequest) (*domain.Vehicle, error) {
	if !s.policy.CanCreateVehicle(caller) {
		return nil, ErrPermissionDenied
	}

	if verr := validateVehicleFields(req.Model, req.PlateNumber, req.Type); verr != nil {
		return nil, verr
	}

	driverID := req.DriverID
	if caller.IsDriver() {
		// Self-assignment: a client-supplied driver is ignored.
		driverID = caller.UserID
	} else if driverID == "" {
		return nil, NewValidationError("driver_id", "this field is required")
	}

	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewValidationError("driver_id", "user does not exist")
		}
		return nil, err
	}
	if driver.Role != domain.RoleDriver {
		return nil, &InvalidRoleError{Field: "driver_id", Want: domain.RoleDriver, Got: driver.Role}
	}

	now := time.Now()
	vehicle := &domain.Vehicle{
		ID:          uuid.New().String(),
		DriverID:    driver.ID,
		Model:       req.Model,
		PlateNumber: req.PlateNumber,
		LicenseRef:  req.LicenseRef,
		Type:        req.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewValidationError("plate_number", "a vehicle with this plate number already exists")
		}
		return nil, err
	}

	return vehicle, nil
}

// GetVehicle retrieves a vehicle by ID. Reads are open to any
// authenticated caller.
func (s *VehicleService) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

// ListVehicles retrieves all vehicles.
func (s *VehicleService) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.GetAll(ctx)
}

// UpdateVehicleRequest carries a partial vehicle update.
type UpdateVehicleRequest struct {
	DriverID    *string
	Model       *string
	PlateNumber *string
	LicenseRef  *string
	Type        *domain.VehicleType
}

// UpdateVehicle mutates a vehicle. Owner or admin only; reassigning the
// owning driver is admin only.
func (s *VehicleService) UpdateVehicle(ctx context.Context, caller policy.Identity, id string, req UpdateVehicleRequest) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanMutateVehicle(caller, vehicle) {
		return nil, ErrPermissionDenied
	}

	if req.DriverID != nil && *req.DriverID != vehicle.DriverID {
		if !caller.IsAdmin() {
			return nil, &FieldNotEditableError{Fields: []string{"driver_id"}}
		}
		driver, err := s.userRepo.GetByID(ctx, *req.DriverID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, NewValidationError("driver_id", "user does not exist")
			}
			return nil, err
		}
		if driver.Role != domain.RoleDriver {
			return nil, &InvalidRoleError{Field: "driver_id", Want: domain.RoleDriver, Got: driver.Role}
		}
		vehicle.DriverID = driver.ID
	}

	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.PlateNumber != nil {
		vehicle.PlateNumber = *req.PlateNumber
	}
	if req.LicenseRef != nil {
		vehicle.LicenseRef = *req.LicenseRef
	}
	if req.Type != nil {
		vehicle.Type = *req.Type
	}

	if verr := validateVehicleFields(vehicle.Model, vehicle.PlateNumber, vehicle.Type); verr != nil {
		return nil, verr
	}

	vehicle.UpdatedAt = time.Now()

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewValidationError("plate_number", "a vehicle with this plate number already exists")
		}
		return nil, err
	}

	return vehicle, nil
}

// DeleteVehicle removes a vehicle. Owner or admin only.
func (s *VehicleService) DeleteVehicle(ctx context.Context, caller policy.Identity, id string) error {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.policy.CanMutateVehicle(caller, vehicle) {
		return ErrPermissionDenied
	}

	return s.vehicleRepo.Delete(ctx, vehicle.ID)
}

func validateVehicleFields(model, plate string, vtype domain.VehicleType) *ValidationError {
	verr := &ValidationError{}
	if model == "" {
		verr.Add("model", "this field is required")
	}
	if plate == "" {
		verr.Add("plate_number", "this field is required")
	}
	if !domain.ValidVehicleType(vtype) {
		verr.Add("type", "must be one of luxury, economy, suv, van, electric")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}
