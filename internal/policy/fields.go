package policy

import "safar/internal/domain"

// TripField names a mutable trip attribute in update requests. The names
// match the JSON payload keys so violations can be reported per field.
type TripField string

const (
	TripFieldRoute    TripField = "route_id"
	TripFieldFare     TripField = "fare"
	TripFieldDistance TripField = "distance_km"
	TripFieldDriver   TripField = "driver_id"
	TripFieldVehicle  TripField = "vehicle_id"
	TripFieldStatus   TripField = "status"
)

// tripFieldMutability is the single source of truth for which roles may
// mutate which trip fields. One table replaces per-role serializer variants.
var tripFieldMutability = map[TripField]map[domain.Role]bool{
	TripFieldRoute:    {domain.RoleAdmin: true},
	TripFieldFare:     {domain.RoleAdmin: true},
	TripFieldDistance: {domain.RoleAdmin: true},
	TripFieldDriver:   {domain.RoleAdmin: true},
	TripFieldVehicle:  {domain.RoleAdmin: true},
	TripFieldStatus: {
		domain.RoleAdmin:     true,
		domain.RoleDriver:    true,
		domain.RolePassenger: true,
	},
}

// CanEditTripField reports whether a caller with the given role may mutate
// the given trip field. Unknown fields are not editable by anyone.
func CanEditTripField(role domain.Role, field TripField) bool {
	return tripFieldMutability[field][role]
}
