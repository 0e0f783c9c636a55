package service

import (
	"math"
	"time"

	"safar/internal/domain"
)

// deriveAssignment picks the default driver and vehicle for a trip from a
// route's eligible pools. Pools are in insertion order; "first" is defined
// by that order, not by storage iteration order.
//
// The driver is the first eligible driver, or none. The vehicle is the first
// eligible vehicle owned by the assigned driver, or none; no driver means no
// vehicle. eligibleVehicles must be the route's vehicle pool, in pool order.
func deriveAssignment(route *domain.Route, eligibleVehicles []*domain.Vehicle) (driverID, vehicleID string) {
	if len(route.DriverIDs) == 0 {
		return "", ""
	}
	driverID = route.DriverIDs[0]

	for _, v := range eligibleVehicles {
		if v.DriverID == driverID {
			return driverID, v.ID
		}
	}
	return driverID, ""
}

// applyStatusChange moves a trip to the given status, enforcing the
// forward-only transition graph and stamping start/end times as side
// effects of the transition.
func applyStatusChange(trip *domain.Trip, to domain.TripStatus, now time.Time) error {
	if !domain.ValidTripStatus(to) {
		return NewValidationError("status", "unknown status "+string(to))
	}
	if !domain.CanTransition(trip.Status, to) {
		return NewValidationError("status",
			"cannot transition from "+string(trip.Status)+" to "+string(to))
	}
	if trip.Status == to {
		return nil
	}

	trip.Status = to
	switch to {
	case domain.TripStatusInProgress:
		if trip.StartTime.IsZero() {
			trip.StartTime = now
		}
	case domain.TripStatusCompleted, domain.TripStatusCancelled:
		if trip.EndTime.IsZero() {
			trip.EndTime = now
		}
	}

	return nil
}

// roundFare normalizes a money amount to two decimal places.
func roundFare(amount float64) float64 {
	return math.Round(amount*100) / 100
}
