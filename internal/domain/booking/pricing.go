package booking

import (
	"fmt"
	"math"
)

// VehicleType identifies the customer's vehicle category for pricing.
type VehicleType string

const (
	VehicleTypeSedan VehicleType = "sedan"
	VehicleTypeSUV   VehicleType = "suv"
	VehicleTypeVan   VehicleType = "van"
	VehicleTypeTruck VehicleType = "truck"
)

// vehicleMultipliers scales the base price per vehicle type. Unrecognized
// types fall back to 1.0.
var vehicleMultipliers = map[VehicleType]float64{
	VehicleTypeSedan: 1.0,
	VehicleTypeSUV:   1.2,
	VehicleTypeVan:   1.4,
	VehicleTypeTruck: 1.6,
}

// MultiplierFor returns the price multiplier for the given vehicle type, or
// 1.0 when the type is empty or unrecognized.
func MultiplierFor(vehicleType VehicleType) float64 {
	if m, ok := vehicleMultipliers[vehicleType]; ok {
		return m
	}
	return 1.0
}

// ComputeTotalPrice computes a booking's total price from the base price, the
// vehicle-type multiplier, additional charges and a discount. The result is
// clamped at zero.
//
// The base price is a required numeric: a non-finite or negative value is an
// error rather than a silent zero. Additional charges and discount default to
// zero when non-finite but must not be negative.
func ComputeTotalPrice(basePrice float64, vehicleType VehicleType, additionalCharges, discountAmount float64) (float64, error) {
	if math.IsNaN(basePrice) || math.IsInf(basePrice, 0) {
		return 0, fmt.Errorf("base price is not a valid number")
	}
	if basePrice < 0 {
		return 0, fmt.Errorf("base price cannot be negative")
	}
	if math.IsNaN(additionalCharges) || math.IsInf(additionalCharges, 0) {
		additionalCharges = 0
	}
	if math.IsNaN(discountAmount) || math.IsInf(discountAmount, 0) {
		discountAmount = 0
	}
	if additionalCharges < 0 {
		return 0, fmt.Errorf("additional charges cannot be negative")
	}
	if discountAmount < 0 {
		return 0, fmt.Errorf("discount amount cannot be negative")
	}

	total := basePrice*MultiplierFor(vehicleType) + additionalCharges - discountAmount
	return math.Max(0, total), nil
}

// PricingStrategy defines the interface for calculating booking prices.
type PricingStrategy interface {
	// Calculate returns the total price for the given parameters.
	Calculate(params PricingParams) (float64, error)
}

// PricingParams holds the inputs for price calculation.
type PricingParams struct {
	BasePrice         float64
	VehicleType       VehicleType
	AdditionalCharges float64
	DiscountAmount    float64
}

// StandardPricingStrategy implements the platform's default pricing logic.
type StandardPricingStrategy struct{}

// NewStandardPricingStrategy creates a new StandardPricingStrategy.
func NewStandardPricingStrategy() *StandardPricingStrategy {
	return &StandardPricingStrategy{}
}

// Calculate computes the total price from the base price and vehicle-type
// multiplier, adds extra charges and subtracts the discount.
func (s *StandardPricingStrategy) Calculate(params PricingParams) (float64, error) {
	return ComputeTotalPrice(params.BasePrice, params.VehicleType, params.AdditionalCharges, params.DiscountAmount)
}
