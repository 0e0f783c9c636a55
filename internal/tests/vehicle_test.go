package tests

import (
	"context"
	"errors"
	"testing"

	"safar/internal/domain"
	"safar/internal/policy"
	"safar/internal/service"
)

// Shared caller identities for the access-control suites.
var (
	adminCaller     = policy.Identity{UserID: "admin-1", Name: "Asel", Role: domain.RoleAdmin}
	driverCaller    = policy.Identity{UserID: "driver-1", Name: "Bakyt", Role: domain.RoleDriver}
	passengerCaller = policy.Identity{UserID: "passenger-1", Name: "Chinara", Role: domain.RolePassenger}
)

func seedUsers(userRepo *MockUserRepository) {
	userRepo.AddUser(&domain.User{ID: "admin-1", Name: "Asel", Role: domain.RoleAdmin})
	userRepo.AddUser(&domain.User{ID: "driver-1", Name: "Bakyt", Role: domain.RoleDriver})
	userRepo.AddUser(&domain.User{ID: "driver-2", Name: "Daniyar", Role: domain.RoleDriver})
	userRepo.AddUser(&domain.User{ID: "passenger-1", Name: "Chinara", Role: domain.RolePassenger})
}

func newVehicleService() (*service.VehicleService, *MockVehicleRepository, *MockUserRepository) {
	vehicleRepo := NewMockVehicleRepository()
	userRepo := NewMockUserRepository()
	seedUsers(userRepo)
	svc := service.NewVehicleService(vehicleRepo, userRepo, policy.New(policy.Options{}))
	return svc, vehicleRepo, userRepo
}

// ──────────────────────────────────────────────
// VEHICLE REGISTRATION
// ──────────────────────────────────────────────

func TestVehicleCreate_DriverSelfAssigns(t *testing.T) {
	t.Parallel()

	svc, _, _ := newVehicleService()

	vehicle, err := svc.CreateVehicle(context.Background(), driverCaller, service.CreateVehicleRequest{
		// A driver naming someone else is ignored, not an error.
		DriverID:    "driver-2",
		Model:       "Toyota Camry",
		PlateNumber: "01KG777AAA",
		Type:        domain.VehicleTypeEconomy,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if vehicle.DriverID != "driver-1" {
		t.Errorf("expected vehicle owned by caller driver-1, got %s", vehicle.DriverID)
	}
	if vehicle.ID == "" {
		t.Error("expected vehicle ID to be set")
	}
}

func TestVehicleCreate_PassengerDenied(t *testing.T) {
	t.Parallel()

	svc, vehicleRepo, _ := newVehicleService()

	_, err := svc.CreateVehicle(context.Background(), passengerCaller, service.CreateVehicleRequest{
		Model:       "Toyota Camry",
		PlateNumber: "01KG777AAA",
		Type:        domain.VehicleTypeEconomy,
	})
	if !errors.Is(err, service.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got: %v", err)
	}

	if vehicleRepo.CreateCallCount != 0 {
		t.Error("expected no repository write")
	}
}

func TestVehicleCreate_AdminRequiresDriver(t *testing.T) {
	t.Parallel()

	svc, _, _ := newVehicleService()

	_, err := svc.CreateVehicle(context.Background(), adminCaller, service.CreateVehicleRequest{
		Model:       "Toyota Camry",
		PlateNumber: "01KG777AAA",
		Type:        domain.VehicleTypeEconomy,
	})

	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if _, ok := verr.Fields["driver_id"]; !ok {
		t.Errorf("expected driver_id error, got: %v", verr.Fields)
	}
}

func TestVehicleCreate_AdminAssignsNamedDriver(t *testing.T) {
	t.Parallel()

	svc, _, _ := newVehicleService()

	vehicle, err := svc.CreateVehicle(context.Background(), adminCaller, service.CreateVehicleRequest{
		DriverID:    "driver-2",
		Model:       "Hyundai Sonata",
		PlateNumber: "01KG555BBB",
		Type:        domain.VehicleTypeSUV,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if vehicle.DriverID != "driver-2" {
		t.Errorf("expected driver-2, got %s", vehicle.DriverID)
	}
}

func TestVehicleCreate_NonDriverOwnerRejected(t *testing.T) {
	t.Parallel()

	svc, _, _ := newVehicleService()

	_, err := svc.CreateVehicle(context.Background(), adminCaller, service.CreateVehicleRequest{
		DriverID:    "passenger-1",
		Model:       "Hyundai Sonata",
		PlateNumber: "01KG555BBB",
		Type:        domain.VehicleTypeSUV,
	})

	var roleErr *service.InvalidRoleError
	if !errors.As(err, &roleErr) {
		t.Fatalf("expected InvalidRoleError, got: %v", err)
	}
	if roleErr.Field != "driver_id" {
		t.Errorf("expected field driver_id, got %s", roleErr.Field)
	}
}

func TestVehicleCreate_DuplicatePlate(t *testing.T) {
	t.Parallel()

	svc, _, _ := newVehicleService()

	req := service.CreateVehicleRequest{
		Model:       "Toyota Camry",
		PlateNumber: "01KG777AAA",
		Type:        domain.VehicleTypeEconomy,
	}
	if _, err := svc.CreateVehicle(context.Background(), driverCaller, req); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.CreateVehicle(context.Background(), driverCaller, req)

	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if _, ok := verr.Fields["plate_number"]; !ok {
		t.Errorf("expected plate_number error, got: %v", verr.Fields)
	}
}

func TestVehicleCreate_InvalidType(t *testing.T) {
	t.Parallel()

	svc, _, _ := newVehicleService()

	_, err := svc.CreateVehicle(context.Background(), driverCaller, service.CreateVehicleRequest{
		Model:       "Toyota Camry",
		PlateNumber: "01KG777AAA",
		Type:        "hovercraft",
	})

	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if _, ok := verr.Fields["type"]; !ok {
		t.Errorf("expected type error, got: %v", verr.Fields)
	}
}

// ──────────────────────────────────────────────
// VEHICLE MUTATION
// ──────────────────────────────────────────────

func seedVehicle(vehicleRepo *MockVehicleRepository) *domain.Vehicle {
	vehicle := &domain.Vehicle{
		ID:          "vehicle-1",
		DriverID:    "driver-1",
		Model:       "Toyota Camry",
		PlateNumber: "01KG777AAA",
		Type:        domain.VehicleTypeEconomy,
	}
	vehicleRepo.AddVehicle(vehicle)
	return vehicle
}

func TestVehicleUpdate_OwnerCanEdit(t *testing.T) {
	t.Parallel()

	svc, vehicleRepo, _ := newVehicleService()
	seedVehicle(vehicleRepo)

	model := "Toyota Corolla"
	vehicle, err := svc.UpdateVehicle(context.Background(), driverCaller, "vehicle-1", service.UpdateVehicleRequest{
		Model: &model,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if vehicle.Model != "Toyota Corolla" {
		t.Errorf("expected updated model, got %s", vehicle.Model)
	}
}

func TestVehicleUpdate_NonOwnerDriverDenied(t *testing.T) {
	t.Parallel()

	svc, vehicleRepo, _ := newVehicleService()
	seedVehicle(vehicleRepo)

	otherDriver := policy.Identity{UserID: "driver-2", Role: domain.RoleDriver}
	model := "Toyota Corolla"
	_, err := svc.UpdateVehicle(context.Background(), otherDriver, "vehicle-1", service.UpdateVehicleRequest{
		Model: &model,
	})
	if !errors.Is(err, service.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got: %v", err)
	}
}

func TestVehicleUpdate_ReassignDriverAdminOnly(t *testing.T) {
	t.Parallel()

	svc, vehicleRepo, _ := newVehicleService()
	seedVehicle(vehicleRepo)

	newDriver := "driver-2"

	// The owning driver may not hand the vehicle to someone else.
	_, err := svc.UpdateVehicle(context.Background(), driverCaller, "vehicle-1", service.UpdateVehicleRequest{
		DriverID: &newDriver,
	})
	var fieldErr *service.FieldNotEditableError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldNotEditableError, got: %v", err)
	}

	// An admin may.
	vehicle, err := svc.UpdateVehicle(context.Background(), adminCaller, "vehicle-1", service.UpdateVehicleRequest{
		DriverID: &newDriver,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if vehicle.DriverID != "driver-2" {
		t.Errorf("expected driver-2, got %s", vehicle.DriverID)
	}
}

func TestVehicleDelete_OwnerOrAdmin(t *testing.T) {
	t.Parallel()

	svc, vehicleRepo, _ := newVehicleService()
	seedVehicle(vehicleRepo)

	if err := svc.DeleteVehicle(context.Background(), passengerCaller, "vehicle-1"); !errors.Is(err, service.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for passenger, got: %v", err)
	}

	if err := svc.DeleteVehicle(context.Background(), driverCaller, "vehicle-1"); err != nil {
		t.Fatalf("expected owner delete to succeed, got: %v", err)
	}

	if vehicleRepo.GetVehicle("vehicle-1") != nil {
		t.Error("expected vehicle to be removed")
	}
}
