//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingDomain "github.com/homeshine-platform/service-booking/internal/domain/booking"
	bookingEvents "github.com/homeshine-platform/service-booking/internal/events"
)

// TestPaymentCaptured_MarksBookingPaid verifies that when a PaymentCapturedEvent
// is published to payment.events, the booking service picks it up and records
// the payment on the booking.
func TestPaymentCaptured_MarksBookingPaid(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	// Seed a confirmed booking.
	bookingID := uuid.New()
	customerID := uuid.New()
	workerID := uuid.New()
	seedConfirmedBooking(t, infra.DB, bookingID, customerID, workerID)

	// Start the consumer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	// Publish PaymentCapturedEvent.
	evt := bookingEvents.PaymentCapturedEvent{
		PaymentID:  uuid.New(),
		BookingID:  bookingID,
		Amount:     135,
		Currency:   "USD",
		OccurredAt: time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, bookingEvents.TopicPaymentEvents,
		"service-payment", bookingEvents.PaymentCaptured, evt)

	// Assert: the booking is marked paid and stays confirmed.
	model := waitForBookingPaid(t, infra.DB, bookingID, 15*time.Second)
	assert.Equal(t, "confirmed", model.Status)
	assert.Equal(t, int64(3), model.Version)
}

// TestCreateBooking_PublishesCreatedEvent verifies that creating a booking
// through the service persists it with a recomputed total price and publishes
// a BookingCreatedEvent on booking.events.
func TestCreateBooking_PublishesCreatedEvent(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	customer := bookingDomain.NewActor(uuid.New(), bookingDomain.RoleCustomer)
	form := bookingDomain.FormModel{
		ServiceID:          uuid.New().String(),
		ScheduledDate:      time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02"),
		ScheduledTime:      "14:30",
		ServiceAddressText: "88 Harbour View Road, Unit 12",
		VehicleType:        "suv",
		VehicleMake:        "Honda",
		VehicleModel:       "CR-V",
		VehicleYear:        "2022",
		BasePrice:          "100",
		AdditionalCharges:  "20",
		DiscountAmount:     "5",
	}

	dto, err := stack.Service.CreateBooking(context.Background(), customer, form)
	require.NoError(t, err)
	assert.Equal(t, "pending", dto.Status)
	assert.Equal(t, 135.0, dto.TotalPrice)
	assert.True(t, dto.CanEdit, "customer may edit their own pending booking")
	assert.True(t, dto.CanCancel, "customer may cancel their own pending booking")

	// Assert: BookingCreatedEvent on booking.events.
	ce := consumeOneEvent(t, infra.KafkaBrokers, bookingEvents.TopicBookingEvents,
		bookingEvents.BookingCreated, 15*time.Second)

	var created bookingEvents.BookingCreatedEvent
	require.NoError(t, ce.ParseData(&created))
	assert.Equal(t, dto.ID, created.BookingID)
	assert.Equal(t, customer.ID, created.CustomerID)
	assert.Equal(t, 135.0, created.TotalPrice)
	assert.Equal(t, "suv", created.VehicleType)
}
