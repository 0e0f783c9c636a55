package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"safar/internal/domain"
	"safar/internal/policy"
	"safar/internal/repository"
)

// The stubs embed the repository interfaces so only the lookups the update
// path needs have to exist; an unexpected call panics on the nil embed.

type stubRouteStore struct {
	repository.RouteRepository
	routes map[string]*domain.Route
}

func (s stubRouteStore) GetByID(_ context.Context, id string) (*domain.Route, error) {
	if r, ok := s.routes[id]; ok {
		return r, nil
	}
	return nil, repository.ErrNotFound
}

type stubUserStore struct {
	repository.UserRepository
	users map[string]*domain.User
}

func (s stubUserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

type stubVehicleStore struct {
	repository.VehicleRepository
	vehicles map[string]*domain.Vehicle
}

func (s stubVehicleStore) GetByID(_ context.Context, id string) (*domain.Vehicle, error) {
	if v, ok := s.vehicles[id]; ok {
		return v, nil
	}
	return nil, repository.ErrNotFound
}

func updateStores() tripUpdateStores {
	return tripUpdateStores{
		routes: stubRouteStore{routes: map[string]*domain.Route{
			"route-1": {ID: "route-1", PickupID: "loc-1", DropID: "loc-2", Price: 500},
			"route-2": {ID: "route-2", PickupID: "loc-2", DropID: "loc-1", Price: 650},
		}},
		users: stubUserStore{users: map[string]*domain.User{
			"driver-1":    {ID: "driver-1", Role: domain.RoleDriver},
			"passenger-1": {ID: "passenger-1", Role: domain.RolePassenger},
		}},
		vehicles: stubVehicleStore{vehicles: map[string]*domain.Vehicle{
			"vehicle-1": {ID: "vehicle-1", DriverID: "driver-1"},
		}},
	}
}

func requestedTrip() *domain.Trip {
	return &domain.Trip{
		ID:          "trip-1",
		PassengerID: "passenger-1",
		DriverID:    "driver-1",
		VehicleID:   "vehicle-1",
		RouteID:     "route-1",
		DistanceKm:  12,
		Fare:        500,
		Status:      domain.TripStatusRequested,
	}
}

func strPtr(s string) *string { return &s }

func farePtr(f float64) *float64 { return &f }

func statusPtr(s domain.TripStatus) *domain.TripStatus { return &s }

func TestApplyTripUpdate_PassengerCancelsOwnTrip(t *testing.T) {
	t.Parallel()

	caller := policy.Identity{UserID: "passenger-1", Role: domain.RolePassenger}
	trip := requestedTrip()
	now := time.Now()

	req := UpdateTripRequest{Status: statusPtr(domain.TripStatusCancelled)}
	if err := applyTripUpdate(context.Background(), caller, trip, req, updateStores(), now); err != nil {
		t.Fatalf("applyTripUpdate: %v", err)
	}

	if trip.Status != domain.TripStatusCancelled {
		t.Errorf("status = %s, want cancelled", trip.Status)
	}
	if !trip.EndTime.Equal(now) {
		t.Errorf("end time = %v, want %v", trip.EndTime, now)
	}
	if !trip.UpdatedAt.Equal(now) {
		t.Errorf("updated at = %v, want %v", trip.UpdatedAt, now)
	}
}

func TestApplyTripUpdate_PassengerLockedFieldsReportedTogether(t *testing.T) {
	t.Parallel()

	caller := policy.Identity{UserID: "passenger-1", Role: domain.RolePassenger}
	trip := requestedTrip()

	req := UpdateTripRequest{
		RouteID: strPtr("route-2"),
		Fare:    farePtr(100),
		Status:  statusPtr(domain.TripStatusCancelled),
	}
	err := applyTripUpdate(context.Background(), caller, trip, req, updateStores(), time.Now())

	var fieldErr *FieldNotEditableError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldNotEditableError, got %v", err)
	}
	if want := []string{"route_id", "fare"}; !reflect.DeepEqual(fieldErr.Fields, want) {
		t.Errorf("locked fields = %v, want %v", fieldErr.Fields, want)
	}
	if trip.RouteID != "route-1" || trip.Fare != 500 || trip.Status != domain.TripStatusRequested {
		t.Error("trip must not change when a supplied field is locked")
	}
}

func TestApplyTripUpdate_DriverCannotReassignDriver(t *testing.T) {
	t.Parallel()

	caller := policy.Identity{UserID: "driver-1", Role: domain.RoleDriver}
	trip := requestedTrip()

	req := UpdateTripRequest{DriverID: strPtr("driver-1")}
	err := applyTripUpdate(context.Background(), caller, trip, req, updateStores(), time.Now())

	var fieldErr *FieldNotEditableError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldNotEditableError, got %v", err)
	}
	if want := []string{"driver_id"}; !reflect.DeepEqual(fieldErr.Fields, want) {
		t.Errorf("locked fields = %v, want %v", fieldErr.Fields, want)
	}
}

func TestApplyTripUpdate_AdminCannotAssignNonDriver(t *testing.T) {
	t.Parallel()

	caller := policy.Identity{UserID: "admin-1", Role: domain.RoleAdmin}
	trip := requestedTrip()

	req := UpdateTripRequest{DriverID: strPtr("passenger-1")}
	err := applyTripUpdate(context.Background(), caller, trip, req, updateStores(), time.Now())

	var roleErr *InvalidRoleError
	if !errors.As(err, &roleErr) {
		t.Fatalf("expected InvalidRoleError, got %v", err)
	}
	if roleErr.Got != domain.RolePassenger {
		t.Errorf("got role = %s, want passenger", roleErr.Got)
	}
	if trip.DriverID != "driver-1" {
		t.Error("driver assignment must survive a rejected update")
	}
}

func TestApplyTripUpdate_AdminEditsEveryField(t *testing.T) {
	t.Parallel()

	caller := policy.Identity{UserID: "admin-1", Role: domain.RoleAdmin}
	trip := requestedTrip()
	now := time.Now()

	req := UpdateTripRequest{
		RouteID:    strPtr("route-2"),
		Fare:       farePtr(199.999),
		DistanceKm: farePtr(15),
		DriverID:   strPtr("driver-1"),
		VehicleID:  strPtr("vehicle-1"),
		Status:     statusPtr(domain.TripStatusInProgress),
	}
	if err := applyTripUpdate(context.Background(), caller, trip, req, updateStores(), now); err != nil {
		t.Fatalf("applyTripUpdate: %v", err)
	}

	if trip.RouteID != "route-2" {
		t.Errorf("route = %s, want route-2", trip.RouteID)
	}
	if trip.Fare != 200 {
		t.Errorf("fare = %v, want 200 after rounding", trip.Fare)
	}
	if trip.DistanceKm != 15 {
		t.Errorf("distance = %v, want 15", trip.DistanceKm)
	}
	if trip.Status != domain.TripStatusInProgress {
		t.Errorf("status = %s, want in_progress", trip.Status)
	}
	if !trip.StartTime.Equal(now) {
		t.Errorf("start time = %v, want %v", trip.StartTime, now)
	}
}

func TestApplyTripUpdate_AdminClearsAssignment(t *testing.T) {
	t.Parallel()

	caller := policy.Identity{UserID: "admin-1", Role: domain.RoleAdmin}
	trip := requestedTrip()

	req := UpdateTripRequest{DriverID: strPtr(""), VehicleID: strPtr("")}
	if err := applyTripUpdate(context.Background(), caller, trip, req, updateStores(), time.Now()); err != nil {
		t.Fatalf("applyTripUpdate: %v", err)
	}

	if trip.DriverID != "" || trip.VehicleID != "" {
		t.Errorf("assignment = (%q, %q), want cleared", trip.DriverID, trip.VehicleID)
	}
}

func TestApplyTripUpdate_RejectsNegativeFare(t *testing.T) {
	t.Parallel()

	caller := policy.Identity{UserID: "admin-1", Role: domain.RoleAdmin}
	trip := requestedTrip()

	req := UpdateTripRequest{Fare: farePtr(-1)}
	err := applyTripUpdate(context.Background(), caller, trip, req, updateStores(), time.Now())

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := valErr.Fields["fare"]; !ok {
		t.Errorf("validation fields = %v, want fare", valErr.Fields)
	}
}

func TestApplyTripUpdate_RejectsUnknownRoute(t *testing.T) {
	t.Parallel()

	caller := policy.Identity{UserID: "admin-1", Role: domain.RoleAdmin}
	trip := requestedTrip()

	req := UpdateTripRequest{RouteID: strPtr("route-99")}
	err := applyTripUpdate(context.Background(), caller, trip, req, updateStores(), time.Now())

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := valErr.Fields["route_id"]; !ok {
		t.Errorf("validation fields = %v, want route_id", valErr.Fields)
	}
}

func TestApplyTripUpdate_RejectsBackwardStatusMove(t *testing.T) {
	t.Parallel()

	caller := policy.Identity{UserID: "passenger-1", Role: domain.RolePassenger}
	trip := requestedTrip()
	trip.Status = domain.TripStatusCompleted

	req := UpdateTripRequest{Status: statusPtr(domain.TripStatusRequested)}
	err := applyTripUpdate(context.Background(), caller, trip, req, updateStores(), time.Now())

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := valErr.Fields["status"]; !ok {
		t.Errorf("validation fields = %v, want status", valErr.Fields)
	}
}
