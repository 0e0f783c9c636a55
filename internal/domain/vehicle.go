package domain

import "time"

// VehicleType represents the service class of a vehicle.
type VehicleType string

const (
	VehicleTypeLuxury   VehicleType = "luxury"
	VehicleTypeEconomy  VehicleType = "economy"
	VehicleTypeSUV      VehicleType = "suv"
	VehicleTypeVan      VehicleType = "van"
	VehicleTypeElectric VehicleType = "electric"
)

// ValidVehicleType reports whether t is one of the known vehicle types.
func ValidVehicleType(t VehicleType) bool {
	switch t {
	case VehicleTypeLuxury, VehicleTypeEconomy, VehicleTypeSUV, VehicleTypeVan, VehicleTypeElectric:
		return true
	default:
		return false
	}
}

// Vehicle represents a vehicle registered by a driver.
// PlateNumber is globally unique. LicenseRef points at the uploaded license
// document in external file storage.
type Vehicle struct {
	ID          string
	DriverID    string
	Model       string
	PlateNumber string
	LicenseRef  string
	Type        VehicleType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
