package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeForDisplay(t *testing.T) {
	customerID := uuid.New()
	now := time.Now().UTC()
	scheduled := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC) // a Tuesday

	b := ReconstructBooking(
		uuid.New(),
		"BK-DSP001",
		customerID,
		nil,
		uuid.New(),
		StatusConfirmed,
		VehicleSpecification{VehicleType: "suv", Make: "Honda", Model: "CR-V", Year: 2022},
		Address{Text: "88 Harbour View Road, Unit 12"},
		scheduled,
		"14:30",
		100, 20, 5, 999, // stored total is deliberately wrong
		nil, nil, "", "", nil, nil,
		1, now, now,
	)

	display := NormalizeForDisplay(b)

	assert.Equal(t, "BK-DSP001", display.BookingNumber)
	assert.Equal(t, "confirmed", display.Status)
	assert.Equal(t, "Confirmed", display.StatusInfo.Label)
	assert.Equal(t, "Tuesday, September 15, 2026", display.FormattedDate)
	assert.Equal(t, "2:30 PM", display.FormattedTime)
	assert.Equal(t, "2022 Honda CR-V", display.VehicleDescription)
	assert.Equal(t, 135.0, display.TotalPrice, "display total must be recomputed, not read from storage")
}

func TestNormalizeForDisplay_FallsBackOnBadPricing(t *testing.T) {
	now := time.Now().UTC()
	b := ReconstructBooking(
		uuid.New(),
		"BK-DSP002",
		uuid.New(),
		nil,
		uuid.New(),
		StatusPending,
		VehicleSpecification{VehicleType: "sedan"},
		Address{Text: "88 Harbour View Road, Unit 12"},
		now, "09:00",
		-1, 0, 0, 42, // invalid base price in storage
		nil, nil, "", "", nil, nil,
		1, now, now,
	)

	display := NormalizeForDisplay(b)
	assert.Equal(t, 42.0, display.TotalPrice, "stored total is the fallback when recomputation fails")
}

func TestFormatClockTime(t *testing.T) {
	assert.Equal(t, "9:05 AM", formatClockTime("09:05"))
	assert.Equal(t, "12:00 PM", formatClockTime("12:00"))
	assert.Equal(t, "12:15 AM", formatClockTime("00:15"))
	assert.Equal(t, "half past nine", formatClockTime("half past nine"))
}

func TestVehicleDescription(t *testing.T) {
	full := VehicleSpecification{VehicleType: "van", Make: "Mercedes", Model: "Sprinter", Year: 2019}
	assert.Equal(t, "2019 Mercedes Sprinter", full.Description())

	empty := VehicleSpecification{VehicleType: "sedan"}
	assert.Equal(t, "Vehicle details not provided", empty.Description())
}
