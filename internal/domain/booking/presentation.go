package booking

import "time"

const (
	displayDateLayout = "Monday, January 2, 2006"
	displayTimeLayout = "3:04 PM"
	clockLayout       = "15:04"
)

// DisplayBooking is the presentation-ready view of a booking.
type DisplayBooking struct {
	BookingNumber      string           `json:"booking_number"`
	Status             string           `json:"status"`
	StatusInfo         StatusDescriptor `json:"status_info"`
	FormattedDate      string           `json:"formatted_date"`
	FormattedTime      string           `json:"formatted_time"`
	VehicleDescription string           `json:"vehicle_description"`
	TotalPrice         float64          `json:"total_price"`
}

// NormalizeForDisplay enriches a booking for presentation: long-form date,
// 12-hour time, status descriptor, derived vehicle description and a freshly
// recomputed total price. The stored total is never trusted for display.
func NormalizeForDisplay(b *Booking) DisplayBooking {
	total, err := ComputeTotalPrice(
		b.BasePrice(),
		VehicleType(b.Vehicle().VehicleType),
		b.AdditionalCharges(),
		b.DiscountAmount(),
	)
	if err != nil {
		total = b.TotalPrice()
	}

	return DisplayBooking{
		BookingNumber:      b.BookingNumber(),
		Status:             string(b.Status()),
		StatusInfo:         b.Status().Descriptor(),
		FormattedDate:      b.ScheduledDate().Format(displayDateLayout),
		FormattedTime:      formatClockTime(b.ScheduledTime()),
		VehicleDescription: b.Vehicle().Description(),
		TotalPrice:         total,
	}
}

// formatClockTime converts a 24-hour "HH:MM" value to a 12-hour clock label.
// Unparseable values are returned as-is.
func formatClockTime(value string) string {
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		return value
	}
	return t.Format(displayTimeLayout)
}
