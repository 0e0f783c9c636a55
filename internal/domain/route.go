package domain

import "time"

// Route is a fixed pickup/drop pair with a price and pools of eligible
// drivers and vehicles. The (pickup, drop) pair is unique across all routes.
//
// DriverIDs and VehicleIDs are ordered by when they were added to the route
// (ties broken by id); "first eligible" during trip auto-assignment means
// first in that order.
type Route struct {
	ID         string
	PickupID   string
	DropID     string
	Price      float64
	DriverIDs  []string
	VehicleIDs []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasDriver reports whether driverID is in the route's eligible driver pool.
func (r *Route) HasDriver(driverID string) bool {
	for _, id := range r.DriverIDs {
		if id == driverID {
			return true
		}
	}
	return false
}
