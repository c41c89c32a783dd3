package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Form field names validated by the rules engine.
const (
	FieldCustomerID         = "customer_id"
	FieldServiceID          = "service_id"
	FieldScheduledDate      = "scheduled_date"
	FieldScheduledTime      = "scheduled_time"
	FieldServiceAddressText = "service_address_text"
	FieldVehicleType        = "vehicle_type"
	FieldBasePrice          = "base_price"
	FieldEstimatedDuration  = "estimated_duration"
	FieldVehicleYear        = "vehicle_year"
	FieldAdditionalCharges  = "additional_charges"
	FieldDiscountAmount     = "discount_amount"
)

const (
	minAddressLength   = 10
	minDurationMinutes = 15
	minVehicleYear     = 1990
	scheduledDateLayout = "2006-01-02"
)

// RequiredFields returns the set of form fields that must be filled for the
// given actor role. Admins and workers book on behalf of a customer and must
// name one; a customer booking for themselves is implicit.
func RequiredFields(role Role) []string {
	fields := []string{
		FieldServiceID,
		FieldScheduledDate,
		FieldScheduledTime,
		FieldServiceAddressText,
		FieldVehicleType,
		FieldBasePrice,
	}
	switch role {
	case RoleAdmin, RoleWorker:
		return append([]string{FieldCustomerID}, fields...)
	case RoleCustomer:
		return fields
	}
	return fields
}

// ValidateField checks a single raw form value against its business rule and
// returns a human-readable message, or an empty string when the value passes.
// Fields without a rule always pass. The role is accepted for parity with
// RequiredFields but no per-field rule currently depends on it.
func ValidateField(field, value string, role Role, now time.Time) string {
	value = strings.TrimSpace(value)

	switch field {
	case FieldCustomerID:
		if value == "" {
			return "Customer is required"
		}
	case FieldServiceID:
		if value == "" {
			return "Service is required"
		}
	case FieldScheduledDate:
		if value == "" {
			return "Scheduled date is required"
		}
		d, err := time.Parse(scheduledDateLayout, value)
		if err != nil {
			return "Scheduled date must be a valid date"
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if d.Before(today) {
			return "Scheduled date cannot be in the past"
		}
	case FieldScheduledTime:
		if value == "" {
			return "Scheduled time is required"
		}
	case FieldServiceAddressText:
		if value == "" {
			return "Service address is required"
		}
		if len(value) < minAddressLength {
			return fmt.Sprintf("Service address must be at least %d characters", minAddressLength)
		}
	case FieldVehicleType:
		if value == "" {
			return "Vehicle type is required"
		}
	case FieldBasePrice:
		if value == "" {
			return "Base price is required"
		}
		price, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "Base price must be a number"
		}
		if price <= 0 {
			return "Base price must be greater than zero"
		}
	case FieldEstimatedDuration:
		if value == "" {
			return ""
		}
		minutes, err := strconv.Atoi(value)
		if err != nil {
			return "Estimated duration must be a number"
		}
		if minutes < minDurationMinutes {
			return fmt.Sprintf("Estimated duration must be at least %d minutes", minDurationMinutes)
		}
	case FieldVehicleYear:
		if value == "" {
			return ""
		}
		year, err := strconv.Atoi(value)
		if err != nil {
			return "Vehicle year must be a number"
		}
		maxYear := now.Year() + 1
		if year < minVehicleYear || year > maxYear {
			return fmt.Sprintf("Vehicle year must be between %d and %d", minVehicleYear, maxYear)
		}
	case FieldAdditionalCharges:
		if value == "" {
			return ""
		}
		charges, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "Additional charges must be a number"
		}
		if charges < 0 {
			return "Additional charges cannot be negative"
		}
	case FieldDiscountAmount:
		if value == "" {
			return ""
		}
		discount, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "Discount amount must be a number"
		}
		if discount < 0 {
			return "Discount amount cannot be negative"
		}
	}
	return ""
}
