package events

import (
	"context"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/homeshine-platform/service-booking/internal/kafka"
)

// PaymentMarker applies a captured payment to a booking.
type PaymentMarker interface {
	MarkBookingPaid(ctx context.Context, bookingID, paymentID uuid.UUID, amount float64) error
}

// PaymentConsumer processes payment events from the payment service and marks
// the affected bookings as paid.
type PaymentConsumer struct {
	consumer *kafka.Consumer
	bookings PaymentMarker
	logger   *zap.Logger
}

// NewPaymentConsumer creates a PaymentConsumer reading from the payment topic.
func NewPaymentConsumer(brokers []string, groupID string, bookings PaymentMarker, logger *zap.Logger) *PaymentConsumer {
	return &PaymentConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, TopicPaymentEvents, logger),
		bookings: bookings,
		logger:   logger,
	}
}

// Start consumes payment events until the context is cancelled.
func (pc *PaymentConsumer) Start(ctx context.Context) error {
	return pc.consumer.Consume(ctx, pc.handleMessage)
}

// Close closes the underlying Kafka reader.
func (pc *PaymentConsumer) Close() error {
	return pc.consumer.Close()
}

// handleMessage parses a cloud event envelope and dispatches by type. Malformed
// messages are logged and committed so they do not wedge the partition.
func (pc *PaymentConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	event, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		pc.logger.Warn("skipping malformed payment event",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return nil
	}

	switch event.Type {
	case PaymentCaptured:
		return pc.handlePaymentCaptured(ctx, event)
	default:
		pc.logger.Debug("ignoring payment event", zap.String("type", event.Type))
		return nil
	}
}

func (pc *PaymentConsumer) handlePaymentCaptured(ctx context.Context, event kafka.CloudEvent) error {
	var data PaymentCapturedEvent
	if err := event.ParseData(&data); err != nil {
		pc.logger.Warn("skipping payment.captured event with malformed data",
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
		return nil
	}

	if err := pc.bookings.MarkBookingPaid(ctx, data.BookingID, data.PaymentID, data.Amount); err != nil {
		pc.logger.Error("failed to mark booking paid",
			zap.String("booking_id", data.BookingID.String()),
			zap.String("payment_id", data.PaymentID.String()),
			zap.Error(err),
		)
		return err
	}

	pc.logger.Info("booking marked paid from payment event",
		zap.String("booking_id", data.BookingID.String()),
		zap.String("payment_id", data.PaymentID.String()),
	)
	return nil
}
