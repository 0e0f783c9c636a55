// Package policy decides, per action and caller, whether an operation is
// permitted. Caller identity is always an explicit parameter; nothing here
// reads ambient request state.
package policy

import "safar/internal/domain"

// Identity is the resolved caller: user id, directory role and display name.
type Identity struct {
	UserID string
	Name   string
	Role   domain.Role
}

// IsAdmin reports whether the caller is an admin.
func (id Identity) IsAdmin() bool { return id.Role == domain.RoleAdmin }

// IsDriver reports whether the caller is a driver.
func (id Identity) IsDriver() bool { return id.Role == domain.RoleDriver }

// IsPassenger reports whether the caller is a passenger.
func (id Identity) IsPassenger() bool { return id.Role == domain.RolePassenger }

// Options are the configurable policy relaxations. The strict variant is the
// default; both flags widen, never narrow, what the strict policy allows.
type Options struct {
	// OpenLocationCreate lets any authenticated caller create locations
	// instead of admins only.
	OpenLocationCreate bool

	// DriverTripCreate lets drivers request trips for themselves in
	// addition to passengers.
	DriverTripCreate bool
}

// Policy evaluates access rules for the API surface.
type Policy struct {
	opts Options
}

// New creates a Policy with the given options.
func New(opts Options) *Policy {
	return &Policy{opts: opts}
}

// CanCreateVehicle allows drivers (self-assigning) and admins.
func (p *Policy) CanCreateVehicle(caller Identity) bool {
	return caller.IsDriver() || caller.IsAdmin()
}

// CanMutateVehicle allows the owning driver and admins.
func (p *Policy) CanMutateVehicle(caller Identity, vehicle *domain.Vehicle) bool {
	return caller.IsAdmin() || caller.UserID == vehicle.DriverID
}

// CanCreateLocation allows admins, or anyone when OpenLocationCreate is set.
func (p *Policy) CanCreateLocation(caller Identity) bool {
	return caller.IsAdmin() || p.opts.OpenLocationCreate
}

// CanMutateLocation allows admins only.
func (p *Policy) CanMutateLocation(caller Identity) bool {
	return caller.IsAdmin()
}

// CanMutateRoute allows admins only.
func (p *Policy) CanMutateRoute(caller Identity) bool {
	return caller.IsAdmin()
}

// CanCreateTrip allows passengers, plus drivers when DriverTripCreate is set.
func (p *Policy) CanCreateTrip(caller Identity) bool {
	if caller.IsPassenger() {
		return true
	}
	return p.opts.DriverTripCreate && caller.IsDriver()
}

// ValidTripPassenger reports whether a user with the given directory role
// may hold the passenger reference on a trip. Strictly passengers; drivers
// too when DriverTripCreate is set.
func (p *Policy) ValidTripPassenger(role domain.Role) bool {
	if role == domain.RolePassenger {
		return true
	}
	return p.opts.DriverTripCreate && role == domain.RoleDriver
}

// CanViewTrip scopes trip reads to the passenger, the assigned driver and
// admins. Everyone else sees not-found, never forbidden, so existence does
// not leak.
func (p *Policy) CanViewTrip(caller Identity, trip *domain.Trip) bool {
	if caller.IsAdmin() {
		return true
	}
	return caller.UserID == trip.PassengerID ||
		(trip.DriverID != "" && caller.UserID == trip.DriverID)
}

// CanMutateTrip allows the trip's passenger, its assigned driver and admins.
// Which fields the caller may touch is a separate question answered by
// CanEditTripField.
func (p *Policy) CanMutateTrip(caller Identity, trip *domain.Trip) bool {
	return p.CanViewTrip(caller, trip)
}

// CanReviewApplications allows admins only.
func (p *Policy) CanReviewApplications(caller Identity) bool {
	return caller.IsAdmin()
}

// CanApplyAsDriver allows passengers only.
func (p *Policy) CanApplyAsDriver(caller Identity) bool {
	return caller.IsPassenger()
}
