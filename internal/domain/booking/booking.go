package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/homeshine-platform/service-booking/internal/domain"
)

const bookingNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Address is a value object for the location the service is performed at.
type Address struct {
	Text      string  `json:"text"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Booking is the aggregate root for the booking domain.
type Booking struct {
	id            uuid.UUID
	bookingNumber string
	customerID    uuid.UUID
	workerID      *uuid.UUID
	serviceID     uuid.UUID
	status        BookingStatus
	vehicle       VehicleSpecification
	address       Address

	scheduledDate time.Time
	scheduledTime string

	basePrice         float64
	additionalCharges float64
	discountAmount    float64
	totalPrice        float64

	canCancel         *bool
	estimatedDuration *int
	notes             string
	cancelNote        string

	paidAt      *time.Time
	cancelledAt *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// generateBookingNumber creates a booking number in the format "BK-XXXXXX".
func generateBookingNumber() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(bookingNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking number: %w", err)
		}
		result[i] = bookingNumberChars[n.Int64()]
	}
	return "BK-" + string(result), nil
}

// NewBooking creates a new Booking aggregate with status=pending. The total
// price is recomputed from the pricing inputs and never taken from the caller.
func NewBooking(
	customerID uuid.UUID,
	serviceID uuid.UUID,
	vehicle VehicleSpecification,
	address Address,
	scheduledDate time.Time,
	scheduledTime string,
	basePrice float64,
	additionalCharges float64,
	discountAmount float64,
	estimatedDuration *int,
	notes string,
) (*Booking, error) {
	if customerID == uuid.Nil {
		return nil, domain.NewValidationError("customer ID is required")
	}
	if serviceID == uuid.Nil {
		return nil, domain.NewValidationError("service ID is required")
	}
	if len(address.Text) < minAddressLength {
		return nil, domain.NewValidationError(fmt.Sprintf("service address must be at least %d characters", minAddressLength))
	}
	if vehicle.VehicleType == "" {
		return nil, domain.NewValidationError("vehicle type is required")
	}
	if scheduledTime == "" {
		return nil, domain.NewValidationError("scheduled time is required")
	}
	if basePrice <= 0 {
		return nil, domain.NewValidationError("base price must be positive")
	}

	totalPrice, err := ComputeTotalPrice(basePrice, VehicleType(vehicle.VehicleType), additionalCharges, discountAmount)
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
	}

	bookingNumber, err := generateBookingNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Booking{
		id:                uuid.New(),
		bookingNumber:     bookingNumber,
		customerID:        customerID,
		serviceID:         serviceID,
		status:            StatusPending,
		vehicle:           vehicle,
		address:           address,
		scheduledDate:     scheduledDate,
		scheduledTime:     scheduledTime,
		basePrice:         basePrice,
		additionalCharges: additionalCharges,
		discountAmount:    discountAmount,
		totalPrice:        totalPrice,
		estimatedDuration: estimatedDuration,
		notes:             notes,
		version:           1,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	bookingNumber string,
	customerID uuid.UUID,
	workerID *uuid.UUID,
	serviceID uuid.UUID,
	status BookingStatus,
	vehicle VehicleSpecification,
	address Address,
	scheduledDate time.Time,
	scheduledTime string,
	basePrice float64,
	additionalCharges float64,
	discountAmount float64,
	totalPrice float64,
	canCancel *bool,
	estimatedDuration *int,
	notes string,
	cancelNote string,
	paidAt *time.Time,
	cancelledAt *time.Time,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                id,
		bookingNumber:     bookingNumber,
		customerID:        customerID,
		workerID:          workerID,
		serviceID:         serviceID,
		status:            status,
		vehicle:           vehicle,
		address:           address,
		scheduledDate:     scheduledDate,
		scheduledTime:     scheduledTime,
		basePrice:         basePrice,
		additionalCharges: additionalCharges,
		discountAmount:    discountAmount,
		totalPrice:        totalPrice,
		canCancel:         canCancel,
		estimatedDuration: estimatedDuration,
		notes:             notes,
		cancelNote:        cancelNote,
		paidAt:            paidAt,
		cancelledAt:       cancelledAt,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// BookingNumber returns the human-readable booking number.
func (b *Booking) BookingNumber() string { return b.bookingNumber }

// CustomerID returns the owning customer's user ID.
func (b *Booking) CustomerID() uuid.UUID { return b.customerID }

// WorkerID returns the assigned worker's user ID, or nil if unassigned.
func (b *Booking) WorkerID() *uuid.UUID { return b.workerID }

// ServiceID returns the booked catalog service's ID.
func (b *Booking) ServiceID() uuid.UUID { return b.serviceID }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// Vehicle returns the vehicle specification.
func (b *Booking) Vehicle() VehicleSpecification { return b.vehicle }

// Address returns the service address.
func (b *Booking) Address() Address { return b.address }

// ScheduledDate returns the calendar date the service is scheduled for.
func (b *Booking) ScheduledDate() time.Time { return b.scheduledDate }

// ScheduledTime returns the scheduled time of day in "HH:MM" form.
func (b *Booking) ScheduledTime() string { return b.scheduledTime }

// BasePrice returns the base price before adjustments.
func (b *Booking) BasePrice() float64 { return b.basePrice }

// AdditionalCharges returns the additional charges amount.
func (b *Booking) AdditionalCharges() float64 { return b.additionalCharges }

// DiscountAmount returns the discount amount.
func (b *Booking) DiscountAmount() float64 { return b.discountAmount }

// TotalPrice returns the derived total price.
func (b *Booking) TotalPrice() float64 { return b.totalPrice }

// CanCancelOverride returns the externally supplied cancellation override, or
// nil when unset.
func (b *Booking) CanCancelOverride() *bool { return b.canCancel }

// EstimatedDuration returns the estimated duration in minutes, or nil.
func (b *Booking) EstimatedDuration() *int { return b.estimatedDuration }

// Notes returns any additional notes for the booking.
func (b *Booking) Notes() string { return b.notes }

// CancelNote returns the cancellation reason.
func (b *Booking) CancelNote() string { return b.cancelNote }

// PaidAt returns the time payment was captured, or nil.
func (b *Booking) PaidAt() *time.Time { return b.paidAt }

// CancelledAt returns the time the booking was cancelled, or nil.
func (b *Booking) CancelledAt() *time.Time { return b.cancelledAt }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// Confirm transitions the booking from pending to confirmed and assigns the
// worker who will perform the service.
func (b *Booking) Confirm(role Role, workerID uuid.UUID) error {
	if !b.status.CanTransitionTo(StatusConfirmed, role) {
		return domain.NewInvalidStateError(string(b.status), string(StatusConfirmed))
	}
	if workerID == uuid.Nil {
		return domain.NewValidationError("worker ID is required")
	}
	b.workerID = &workerID
	b.status = StatusConfirmed
	b.updatedAt = time.Now().UTC()
	return nil
}

// Start transitions the booking from confirmed to in_progress.
func (b *Booking) Start(role Role) error {
	if !b.status.CanTransitionTo(StatusInProgress, role) {
		return domain.NewInvalidStateError(string(b.status), string(StatusInProgress))
	}
	b.status = StatusInProgress
	b.updatedAt = time.Now().UTC()
	return nil
}

// Complete transitions the booking from in_progress to completed.
func (b *Booking) Complete(role Role) error {
	if !b.status.CanTransitionTo(StatusCompleted, role) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCompleted))
	}
	b.status = StatusCompleted
	b.updatedAt = time.Now().UTC()
	return nil
}

// Cancel transitions the booking to cancelled if it is not already terminal.
// Role- and override-based cancellation policy lives in CanCancel; callers
// are expected to check it first.
func (b *Booking) Cancel(reason string) error {
	if b.status.IsTerminal() {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	now := time.Now().UTC()
	b.status = StatusCancelled
	b.cancelNote = reason
	b.cancelledAt = &now
	b.updatedAt = now
	return nil
}

// MarkPaid records the payment capture time.
func (b *Booking) MarkPaid(at time.Time) error {
	if b.paidAt != nil {
		return domain.NewConflictError("booking is already paid")
	}
	b.paidAt = &at
	b.updatedAt = time.Now().UTC()
	return nil
}

// SetCanCancel sets the external cancellation override flag.
func (b *Booking) SetCanCancel(allowed bool) {
	b.canCancel = &allowed
	b.updatedAt = time.Now().UTC()
}

// UpdateDetails applies an edit to the booking's schedule, address, vehicle
// and pricing inputs, and recomputes the total price.
func (b *Booking) UpdateDetails(
	vehicle VehicleSpecification,
	address Address,
	scheduledDate time.Time,
	scheduledTime string,
	basePrice float64,
	additionalCharges float64,
	discountAmount float64,
	estimatedDuration *int,
	notes string,
) error {
	if len(address.Text) < minAddressLength {
		return domain.NewValidationError(fmt.Sprintf("service address must be at least %d characters", minAddressLength))
	}
	if basePrice <= 0 {
		return domain.NewValidationError("base price must be positive")
	}

	totalPrice, err := ComputeTotalPrice(basePrice, VehicleType(vehicle.VehicleType), additionalCharges, discountAmount)
	if err != nil {
		return domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
	}

	b.vehicle = vehicle
	b.address = address
	b.scheduledDate = scheduledDate
	b.scheduledTime = scheduledTime
	b.basePrice = basePrice
	b.additionalCharges = additionalCharges
	b.discountAmount = discountAmount
	b.totalPrice = totalPrice
	b.estimatedDuration = estimatedDuration
	b.notes = notes
	b.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
