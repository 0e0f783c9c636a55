package domain

import "time"

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusRequested  TripStatus = "requested"
	TripStatusInProgress TripStatus = "in_progress"
	TripStatusCompleted  TripStatus = "completed"
	TripStatusCancelled  TripStatus = "cancelled"
)

// ValidTripStatus reports whether s is one of the known trip statuses.
func ValidTripStatus(s TripStatus) bool {
	switch s {
	case TripStatusRequested, TripStatusInProgress, TripStatusCompleted, TripStatusCancelled:
		return true
	default:
		return false
	}
}

// tripTransitions is the allowed forward-only status graph. Completed and
// cancelled are terminal.
var tripTransitions = map[TripStatus][]TripStatus{
	TripStatusRequested:  {TripStatusInProgress, TripStatusCancelled},
	TripStatusInProgress: {TripStatusCompleted, TripStatusCancelled},
}

// CanTransition reports whether a trip may move from one status to another.
// A no-op transition (same status) is always allowed.
func CanTransition(from, to TripStatus) bool {
	if from == to {
		return true
	}
	for _, next := range tripTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Trip represents one passenger's request for transport along a route.
// DriverID and VehicleID are empty until assigned; both are cleared (not
// blocking) when the referenced driver or vehicle is removed.
type Trip struct {
	ID          string
	PassengerID string
	DriverID    string
	VehicleID   string
	RouteID     string
	DistanceKm  float64
	Fare        float64
	Status      TripStatus
	RequestTime time.Time
	StartTime   time.Time
	EndTime     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
