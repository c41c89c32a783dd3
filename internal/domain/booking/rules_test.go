package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func bookingInStatus(t *testing.T, status BookingStatus, customerID uuid.UUID, workerID *uuid.UUID) *Booking {
	t.Helper()
	now := time.Now().UTC()
	return ReconstructBooking(
		uuid.New(),
		"BK-TEST01",
		customerID,
		workerID,
		uuid.New(),
		status,
		VehicleSpecification{VehicleType: "sedan", Make: "Toyota", Model: "Corolla", Year: 2020},
		Address{Text: "12 Example Street, Springfield"},
		now.AddDate(0, 0, 1),
		"10:00",
		100, 0, 0, 100,
		nil,
		nil,
		"",
		"",
		nil,
		nil,
		1,
		now,
		now,
	)
}

func TestCanEdit(t *testing.T) {
	customerID := uuid.New()
	workerID := uuid.New()
	admin := NewActor(uuid.New(), RoleAdmin)
	customer := NewActor(customerID, RoleCustomer)
	worker := NewActor(workerID, RoleWorker)

	t.Run("admin may edit any non-terminal booking", func(t *testing.T) {
		for _, status := range []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress} {
			b := bookingInStatus(t, status, customerID, &workerID)
			assert.True(t, CanEdit(b, admin), "admin should edit %s", status)
		}
	})

	t.Run("admin may edit terminal bookings", func(t *testing.T) {
		b := bookingInStatus(t, StatusCompleted, customerID, &workerID)
		assert.True(t, CanEdit(b, admin))
	})

	t.Run("customer may edit own pending booking only", func(t *testing.T) {
		assert.True(t, CanEdit(bookingInStatus(t, StatusPending, customerID, nil), customer))
		assert.False(t, CanEdit(bookingInStatus(t, StatusConfirmed, customerID, &workerID), customer))
		assert.False(t, CanEdit(bookingInStatus(t, StatusInProgress, customerID, &workerID), customer))
	})

	t.Run("customer may not edit another customer's booking", func(t *testing.T) {
		b := bookingInStatus(t, StatusPending, uuid.New(), nil)
		assert.False(t, CanEdit(b, customer))
	})

	t.Run("assigned worker may edit active bookings", func(t *testing.T) {
		for _, status := range []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress} {
			b := bookingInStatus(t, status, customerID, &workerID)
			assert.True(t, CanEdit(b, worker), "worker should edit %s", status)
		}
	})

	t.Run("unassigned worker may not edit", func(t *testing.T) {
		other := uuid.New()
		assert.False(t, CanEdit(bookingInStatus(t, StatusConfirmed, customerID, &other), worker))
		assert.False(t, CanEdit(bookingInStatus(t, StatusPending, customerID, nil), worker))
	})

	t.Run("nobody but admin may edit terminal bookings", func(t *testing.T) {
		for _, status := range []BookingStatus{StatusCompleted, StatusCancelled} {
			b := bookingInStatus(t, status, customerID, &workerID)
			assert.False(t, CanEdit(b, customer))
			assert.False(t, CanEdit(b, worker))
		}
	})
}

func TestCanCancel(t *testing.T) {
	customerID := uuid.New()
	workerID := uuid.New()
	admin := NewActor(uuid.New(), RoleAdmin)
	customer := NewActor(customerID, RoleCustomer)
	worker := NewActor(workerID, RoleWorker)

	t.Run("terminal bookings cannot be cancelled by anyone", func(t *testing.T) {
		for _, status := range []BookingStatus{StatusCompleted, StatusCancelled} {
			b := bookingInStatus(t, status, customerID, &workerID)
			assert.False(t, CanCancel(b, admin))
			assert.False(t, CanCancel(b, customer))
			assert.False(t, CanCancel(b, worker))
		}
	})

	t.Run("explicit can_cancel=false override beats admin", func(t *testing.T) {
		b := bookingInStatus(t, StatusPending, customerID, &workerID)
		b.SetCanCancel(false)
		assert.False(t, CanCancel(b, admin))
		assert.False(t, CanCancel(b, customer))
		assert.False(t, CanCancel(b, worker))
	})

	t.Run("explicit can_cancel=true behaves like unset", func(t *testing.T) {
		b := bookingInStatus(t, StatusPending, customerID, nil)
		b.SetCanCancel(true)
		assert.True(t, CanCancel(b, customer))
	})

	t.Run("admin may cancel any non-terminal booking", func(t *testing.T) {
		for _, status := range []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress} {
			b := bookingInStatus(t, status, customerID, &workerID)
			assert.True(t, CanCancel(b, admin), "admin should cancel %s", status)
		}
	})

	t.Run("customer may cancel own non-terminal booking", func(t *testing.T) {
		for _, status := range []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress} {
			b := bookingInStatus(t, status, customerID, &workerID)
			assert.True(t, CanCancel(b, customer), "customer should cancel own %s", status)
		}
	})

	t.Run("customer may not cancel another customer's booking", func(t *testing.T) {
		b := bookingInStatus(t, StatusPending, uuid.New(), nil)
		assert.False(t, CanCancel(b, customer))
	})

	t.Run("worker may cancel only assigned bookings", func(t *testing.T) {
		assert.True(t, CanCancel(bookingInStatus(t, StatusConfirmed, customerID, &workerID), worker))

		other := uuid.New()
		assert.False(t, CanCancel(bookingInStatus(t, StatusConfirmed, customerID, &other), worker))
		assert.False(t, CanCancel(bookingInStatus(t, StatusPending, customerID, nil), worker))
	})
}
