package booking

import (
	"strconv"
	"strings"
)

// vehiclePlaceholder is shown when no vehicle details were supplied.
const vehiclePlaceholder = "Vehicle details not provided"

// IsValid returns true if the vehicle type is a recognized pricing category.
func (v VehicleType) IsValid() bool {
	_, ok := vehicleMultipliers[v]
	return ok
}

// String returns the string representation of the vehicle type.
func (v VehicleType) String() string {
	return string(v)
}

// VehicleSpecification is an immutable value object describing the vehicle
// the service is booked for.
type VehicleSpecification struct {
	VehicleType  string `json:"vehicle_type"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Color        string `json:"color"`
	LicensePlate string `json:"license_plate"`
}

// Description derives a human-readable vehicle label by joining the non-empty
// year, make and model with spaces. Falls back to a fixed placeholder when
// all three are empty.
func (v VehicleSpecification) Description() string {
	parts := make([]string, 0, 3)
	if v.Year > 0 {
		parts = append(parts, strconv.Itoa(v.Year))
	}
	if v.Make != "" {
		parts = append(parts, v.Make)
	}
	if v.Model != "" {
		parts = append(parts, v.Model)
	}
	if len(parts) == 0 {
		return vehiclePlaceholder
	}
	return strings.Join(parts, " ")
}
