package service

import (
	"errors"
	"testing"
	"time"

	"safar/internal/domain"
)

func TestDeriveAssignment(t *testing.T) {
	t.Parallel()

	vehicles := []*domain.Vehicle{
		{ID: "vehicle-1", DriverID: "driver-2"},
		{ID: "vehicle-2", DriverID: "driver-1"},
		{ID: "vehicle-3", DriverID: "driver-1"},
	}

	testCases := []struct {
		name        string
		route       *domain.Route
		vehicles    []*domain.Vehicle
		wantDriver  string
		wantVehicle string
	}{
		{
			name:        "first driver, first of his vehicles",
			route:       &domain.Route{DriverIDs: []string{"driver-1", "driver-2"}},
			vehicles:    vehicles,
			wantDriver:  "driver-1",
			wantVehicle: "vehicle-2",
		},
		{
			name:        "pool order decides the driver",
			route:       &domain.Route{DriverIDs: []string{"driver-2", "driver-1"}},
			vehicles:    vehicles,
			wantDriver:  "driver-2",
			wantVehicle: "vehicle-1",
		},
		{
			name:        "empty driver pool yields nothing",
			route:       &domain.Route{},
			vehicles:    vehicles,
			wantDriver:  "",
			wantVehicle: "",
		},
		{
			name:        "driver without a pool vehicle rides unassigned",
			route:       &domain.Route{DriverIDs: []string{"driver-3"}},
			vehicles:    vehicles,
			wantDriver:  "driver-3",
			wantVehicle: "",
		},
		{
			name:        "empty vehicle pool",
			route:       &domain.Route{DriverIDs: []string{"driver-1"}},
			vehicles:    nil,
			wantDriver:  "driver-1",
			wantVehicle: "",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			driverID, vehicleID := deriveAssignment(tc.route, tc.vehicles)
			if driverID != tc.wantDriver {
				t.Errorf("expected driver %q, got %q", tc.wantDriver, driverID)
			}
			if vehicleID != tc.wantVehicle {
				t.Errorf("expected vehicle %q, got %q", tc.wantVehicle, vehicleID)
			}
		})
	}
}

func TestAssignmentScenario(t *testing.T) {
	t.Parallel()

	// One driver with one vehicle on the route: the new trip gets the
	// route's price as fare and both assignments filled.
	route := &domain.Route{
		Price:      500.00,
		DriverIDs:  []string{"d1"},
		VehicleIDs: []string{"v1"},
	}
	vehicles := []*domain.Vehicle{{ID: "v1", DriverID: "d1"}}

	driverID, vehicleID := deriveAssignment(route, vehicles)
	if driverID != "d1" || vehicleID != "v1" {
		t.Errorf("expected d1/v1, got %s/%s", driverID, vehicleID)
	}
	if fare := roundFare(route.Price); fare != 500.00 {
		t.Errorf("expected fare 500.00, got %v", fare)
	}
}

func TestApplyStatusChange_StampsTimes(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	trip := &domain.Trip{Status: domain.TripStatusRequested}

	if err := applyStatusChange(trip, domain.TripStatusInProgress, now); err != nil {
		t.Fatalf("expected transition to succeed, got: %v", err)
	}
	if !trip.StartTime.Equal(now) {
		t.Errorf("expected start time stamped, got %v", trip.StartTime)
	}
	if !trip.EndTime.IsZero() {
		t.Errorf("expected end time untouched, got %v", trip.EndTime)
	}

	later := now.Add(30 * time.Minute)
	if err := applyStatusChange(trip, domain.TripStatusCompleted, later); err != nil {
		t.Fatalf("expected completion to succeed, got: %v", err)
	}
	if !trip.EndTime.Equal(later) {
		t.Errorf("expected end time stamped, got %v", trip.EndTime)
	}
	// Start time is stamped once, not rewritten.
	if !trip.StartTime.Equal(now) {
		t.Errorf("expected start time preserved, got %v", trip.StartTime)
	}
}

func TestApplyStatusChange_RejectsBackwardMoves(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		from, to domain.TripStatus
		allowed  bool
	}{
		{domain.TripStatusRequested, domain.TripStatusInProgress, true},
		{domain.TripStatusRequested, domain.TripStatusCancelled, true},
		{domain.TripStatusRequested, domain.TripStatusCompleted, false},
		{domain.TripStatusInProgress, domain.TripStatusCompleted, true},
		{domain.TripStatusInProgress, domain.TripStatusCancelled, true},
		{domain.TripStatusInProgress, domain.TripStatusRequested, false},
		{domain.TripStatusCompleted, domain.TripStatusRequested, false},
		{domain.TripStatusCompleted, domain.TripStatusCancelled, false},
		{domain.TripStatusCancelled, domain.TripStatusInProgress, false},
		{domain.TripStatusCompleted, domain.TripStatusCompleted, true},
	}

	for _, tc := range testCases {
		trip := &domain.Trip{Status: tc.from}
		err := applyStatusChange(trip, tc.to, time.Now())
		if tc.allowed && err != nil {
			t.Errorf("%s -> %s: expected success, got: %v", tc.from, tc.to, err)
		}
		if !tc.allowed {
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("%s -> %s: expected ValidationError, got: %v", tc.from, tc.to, err)
			}
		}
	}
}

func TestApplyStatusChange_UnknownStatus(t *testing.T) {
	t.Parallel()

	trip := &domain.Trip{Status: domain.TripStatusRequested}
	err := applyStatusChange(trip, "teleported", time.Now())

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if trip.Status != domain.TripStatusRequested {
		t.Errorf("expected status untouched, got %s", trip.Status)
	}
}

func TestRoundFare(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in, want float64
	}{
		{250, 250},
		{250.005, 250.01},
		{250.004, 250},
		{0.1 + 0.2, 0.3},
		{-1.005, -1},
	}

	for _, tc := range testCases {
		if got := roundFare(tc.in); got != tc.want {
			t.Errorf("roundFare(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
