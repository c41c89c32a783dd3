package booking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/homeshine-platform/service-booking/internal/domain"
)

// FormModel is the text-input-friendly representation of a booking: every
// value is a string and never null, so it can bind directly to form inputs.
type FormModel struct {
	CustomerID         string `json:"customer_id"`
	ServiceID          string `json:"service_id"`
	ScheduledDate      string `json:"scheduled_date"`
	ScheduledTime      string `json:"scheduled_time"`
	ServiceAddressText string `json:"service_address_text"`
	VehicleType        string `json:"vehicle_type"`
	VehicleMake        string `json:"vehicle_make"`
	VehicleModel       string `json:"vehicle_model"`
	VehicleYear        string `json:"vehicle_year"`
	EstimatedDuration  string `json:"estimated_duration"`
	BasePrice          string `json:"base_price"`
	AdditionalCharges  string `json:"additional_charges"`
	DiscountAmount     string `json:"discount_amount"`
	Notes              string `json:"notes"`
}

// APIPayload is the normalized, typed representation of a booking suitable
// for persistence. Empty optional fields become nil rather than empty
// strings, and the total price is always recomputed.
type APIPayload struct {
	CustomerID         *string  `json:"customer_id"`
	ServiceID          *string  `json:"service_id"`
	ScheduledDate      *string  `json:"scheduled_date"`
	ScheduledTime      *string  `json:"scheduled_time"`
	ServiceAddressText *string  `json:"service_address_text"`
	VehicleType        *string  `json:"vehicle_type"`
	VehicleMake        *string  `json:"vehicle_make"`
	VehicleModel       *string  `json:"vehicle_model"`
	VehicleYear        *int     `json:"vehicle_year"`
	EstimatedDuration  *int     `json:"estimated_duration"`
	BasePrice          float64  `json:"base_price"`
	AdditionalCharges  float64  `json:"additional_charges"`
	DiscountAmount     float64  `json:"discount_amount"`
	TotalPrice         float64  `json:"total_price"`
	Notes              *string  `json:"notes"`
}

// ToAPIPayload normalizes raw form values into a typed payload. Optional
// numerics parse to integers or nil; charge and discount amounts default to
// zero when absent or non-numeric. The base price is required and must parse:
// it is never silently defaulted. The total price is recomputed.
func ToAPIPayload(form FormModel) (APIPayload, error) {
	basePrice, err := strconv.ParseFloat(strings.TrimSpace(form.BasePrice), 64)
	if err != nil {
		return APIPayload{}, domain.NewValidationError(fmt.Sprintf("base price is not a valid number: %q", form.BasePrice))
	}

	additionalCharges := parseAmountOrZero(form.AdditionalCharges)
	discountAmount := parseAmountOrZero(form.DiscountAmount)

	vehicleType := strings.TrimSpace(form.VehicleType)
	totalPrice, err := ComputeTotalPrice(basePrice, VehicleType(vehicleType), additionalCharges, discountAmount)
	if err != nil {
		return APIPayload{}, domain.NewValidationError(err.Error())
	}

	return APIPayload{
		CustomerID:         emptyToNil(form.CustomerID),
		ServiceID:          emptyToNil(form.ServiceID),
		ScheduledDate:      emptyToNil(form.ScheduledDate),
		ScheduledTime:      emptyToNil(form.ScheduledTime),
		ServiceAddressText: emptyToNil(form.ServiceAddressText),
		VehicleType:        emptyToNil(vehicleType),
		VehicleMake:        emptyToNil(form.VehicleMake),
		VehicleModel:       emptyToNil(form.VehicleModel),
		VehicleYear:        parseIntOrNil(form.VehicleYear),
		EstimatedDuration:  parseIntOrNil(form.EstimatedDuration),
		BasePrice:          basePrice,
		AdditionalCharges:  additionalCharges,
		DiscountAmount:     discountAmount,
		TotalPrice:         totalPrice,
		Notes:              emptyToNil(form.Notes),
	}, nil
}

// ToFormModel renders a payload back into form-bindable strings. Nil fields
// become empty strings so inputs never receive null.
func ToFormModel(api APIPayload) FormModel {
	return FormModel{
		CustomerID:         nilToEmpty(api.CustomerID),
		ServiceID:          nilToEmpty(api.ServiceID),
		ScheduledDate:      nilToEmpty(api.ScheduledDate),
		ScheduledTime:      nilToEmpty(api.ScheduledTime),
		ServiceAddressText: nilToEmpty(api.ServiceAddressText),
		VehicleType:        nilToEmpty(api.VehicleType),
		VehicleMake:        nilToEmpty(api.VehicleMake),
		VehicleModel:       nilToEmpty(api.VehicleModel),
		VehicleYear:        intToString(api.VehicleYear),
		EstimatedDuration:  intToString(api.EstimatedDuration),
		BasePrice:          formatAmount(api.BasePrice),
		AdditionalCharges:  formatAmount(api.AdditionalCharges),
		DiscountAmount:     formatAmount(api.DiscountAmount),
		Notes:              nilToEmpty(api.Notes),
	}
}

func emptyToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func nilToEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseIntOrNil(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func intToString(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func parseAmountOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
