package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/homeshine-platform/service-booking/internal/domain"
	bookingDomain "github.com/homeshine-platform/service-booking/internal/domain/booking"
	notificationDomain "github.com/homeshine-platform/service-booking/internal/domain/notification"
	"github.com/homeshine-platform/service-booking/internal/events"
	"github.com/homeshine-platform/service-booking/internal/kafka"
)

// BookingDTO is the response representation of a booking, enriched with the
// rules-engine decisions for the requesting actor.
type BookingDTO struct {
	ID                 uuid.UUID                          `json:"id"`
	BookingNumber      string                             `json:"booking_number"`
	CustomerID         uuid.UUID                          `json:"customer_id"`
	WorkerID           *uuid.UUID                         `json:"worker_id,omitempty"`
	ServiceID          uuid.UUID                          `json:"service_id"`
	Status             string                             `json:"status"`
	Vehicle            bookingDomain.VehicleSpecification `json:"vehicle"`
	Address            bookingDomain.Address              `json:"address"`
	ScheduledDate      string                             `json:"scheduled_date"`
	ScheduledTime      string                             `json:"scheduled_time"`
	BasePrice          float64                            `json:"base_price"`
	AdditionalCharges  float64                            `json:"additional_charges"`
	DiscountAmount     float64                            `json:"discount_amount"`
	TotalPrice         float64                            `json:"total_price"`
	EstimatedDuration  *int                               `json:"estimated_duration,omitempty"`
	Notes              string                             `json:"notes,omitempty"`
	CancelNote         string                             `json:"cancel_note,omitempty"`
	PaidAt             *time.Time                         `json:"paid_at,omitempty"`
	CancelledAt        *time.Time                         `json:"cancelled_at,omitempty"`
	Version            int64                              `json:"version"`
	CreatedAt          time.Time                          `json:"created_at"`
	UpdatedAt          time.Time                          `json:"updated_at"`
	CanEdit            bool                               `json:"can_edit"`
	CanCancel          bool                               `json:"can_cancel"`
	AllowedTransitions []string                           `json:"allowed_transitions"`
	Display            bookingDomain.DisplayBooking       `json:"display"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo          bookingDomain.BookingRepository
	pricing       bookingDomain.PricingStrategy
	notifications *NotificationService
	producer      *kafka.Producer
	logger        *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	pricing bookingDomain.PricingStrategy,
	notifications *NotificationService,
	producer *kafka.Producer,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:          repo,
		pricing:       pricing,
		notifications: notifications,
		producer:      producer,
		logger:        logger,
	}
}

// CreateBooking validates the raw form against the actor's required fields,
// normalizes it and creates a new booking.
func (s *BookingService) CreateBooking(ctx context.Context, actor bookingDomain.Actor, form bookingDomain.FormModel) (*BookingDTO, error) {
	if err := validateBookingForm(form, actor.Role); err != nil {
		return nil, err
	}

	payload, err := bookingDomain.ToAPIPayload(form)
	if err != nil {
		return nil, err
	}

	customerID := actor.ID
	if actor.Role == bookingDomain.RoleAdmin || actor.Role == bookingDomain.RoleWorker {
		customerID, err = parseUUIDField(payload.CustomerID, "customer_id")
		if err != nil {
			return nil, err
		}
	}

	serviceID, err := parseUUIDField(payload.ServiceID, "service_id")
	if err != nil {
		return nil, err
	}

	scheduledDate, err := parseDateField(payload.ScheduledDate)
	if err != nil {
		return nil, err
	}

	total, err := s.pricing.Calculate(bookingDomain.PricingParams{
		BasePrice:         payload.BasePrice,
		VehicleType:       bookingDomain.VehicleType(derefString(payload.VehicleType)),
		AdditionalCharges: payload.AdditionalCharges,
		DiscountAmount:    payload.DiscountAmount,
	})
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
	}

	bk, err := bookingDomain.NewBooking(
		customerID,
		serviceID,
		vehicleFromPayload(payload),
		bookingDomain.Address{Text: derefString(payload.ServiceAddressText)},
		scheduledDate,
		derefString(payload.ScheduledTime),
		payload.BasePrice,
		payload.AdditionalCharges,
		payload.DiscountAmount,
		payload.EstimatedDuration,
		derefString(payload.Notes),
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("booking_number", bk.BookingNumber()),
		zap.Float64("total_price", total),
	)

	s.publishBookingCreated(ctx, bk)
	s.notify(ctx, bk.CustomerID(), bk.ID(), notificationDomain.TypeBookingCreated,
		"Booking received",
		fmt.Sprintf("Your booking %s is pending confirmation.", bk.BookingNumber()))

	result := s.toBookingDTO(bk, actor)
	return &result, nil
}

// UpdateBooking applies an edit to a booking, gated by the edit rules for the
// actor and the booking's current status.
func (s *BookingService) UpdateBooking(ctx context.Context, actor bookingDomain.Actor, bookingID uuid.UUID, form bookingDomain.FormModel) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !bookingDomain.CanEdit(bk, actor) {
		return nil, domain.NewForbiddenError("booking cannot be edited by this actor in its current status")
	}

	if err := validateBookingForm(form, actor.Role); err != nil {
		return nil, err
	}

	payload, err := bookingDomain.ToAPIPayload(form)
	if err != nil {
		return nil, err
	}

	scheduledDate, err := parseDateField(payload.ScheduledDate)
	if err != nil {
		return nil, err
	}

	if err := bk.UpdateDetails(
		vehicleFromPayload(payload),
		bookingDomain.Address{Text: derefString(payload.ServiceAddressText)},
		scheduledDate,
		derefString(payload.ScheduledTime),
		payload.BasePrice,
		payload.AdditionalCharges,
		payload.DiscountAmount,
		payload.EstimatedDuration,
		derefString(payload.Notes),
	); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	result := s.toBookingDTO(bk, actor)
	return &result, nil
}

// ConfirmBooking transitions a pending booking to confirmed and assigns the
// worker. Workers confirming for themselves may omit the worker ID.
func (s *BookingService) ConfirmBooking(ctx context.Context, actor bookingDomain.Actor, bookingID uuid.UUID, workerID uuid.UUID) (*BookingDTO, error) {
	if actor.Role == bookingDomain.RoleWorker && workerID == uuid.Nil {
		workerID = actor.ID
	}

	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	from := bk.Status()
	if err := bk.Confirm(actor.Role, workerID); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingConfirmedEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		CustomerID:    bk.CustomerID(),
		WorkerID:      workerID,
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingConfirmed, evt)
	s.publishStatusChanged(ctx, bk, from, actor)
	s.notify(ctx, bk.CustomerID(), bk.ID(), notificationDomain.TypeBookingConfirmed,
		"Booking confirmed",
		fmt.Sprintf("Your booking %s has been confirmed.", bk.BookingNumber()))

	result := s.toBookingDTO(bk, actor)
	return &result, nil
}

// StartBooking transitions a confirmed booking to in_progress.
func (s *BookingService) StartBooking(ctx context.Context, actor bookingDomain.Actor, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	from := bk.Status()
	if err := bk.Start(actor.Role); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, bk, from, actor)

	result := s.toBookingDTO(bk, actor)
	return &result, nil
}

// CompleteBooking transitions an in-progress booking to completed.
func (s *BookingService) CompleteBooking(ctx context.Context, actor bookingDomain.Actor, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	from := bk.Status()
	if err := bk.Complete(actor.Role); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, bk, from, actor)

	result := s.toBookingDTO(bk, actor)
	return &result, nil
}

// CancelBooking cancels a booking, gated by the cancellation rules.
func (s *BookingService) CancelBooking(ctx context.Context, actor bookingDomain.Actor, bookingID uuid.UUID, reason string) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !bookingDomain.CanCancel(bk, actor) {
		return nil, domain.NewForbiddenError("booking cannot be cancelled by this actor")
	}

	if err := bk.Cancel(reason); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingCancelledEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		CancelledBy:   actor.ID,
		Reason:        reason,
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCancelled, evt)
	s.notify(ctx, bk.CustomerID(), bk.ID(), notificationDomain.TypeBookingCancelled,
		"Booking cancelled",
		fmt.Sprintf("Booking %s has been cancelled.", bk.BookingNumber()))

	result := s.toBookingDTO(bk, actor)
	return &result, nil
}

// MarkBookingPaid records a captured payment against the booking. Driven by
// the payment events consumer, not by an HTTP actor.
func (s *BookingService) MarkBookingPaid(ctx context.Context, bookingID, paymentID uuid.UUID, amount float64) error {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := bk.MarkPaid(time.Now().UTC()); err != nil {
		return err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return err
	}

	s.logger.Info("booking marked paid",
		zap.String("booking_id", bookingID.String()),
		zap.String("payment_id", paymentID.String()),
		zap.Float64("amount", amount),
	)

	s.notify(ctx, bk.CustomerID(), bk.ID(), notificationDomain.TypePaymentCaptured,
		"Payment received",
		fmt.Sprintf("Payment for booking %s has been received.", bk.BookingNumber()))
	return nil
}

// GetBooking retrieves a single booking, enforcing visibility per actor.
func (s *BookingService) GetBooking(ctx context.Context, actor bookingDomain.Actor, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case bookingDomain.RoleAdmin:
	case bookingDomain.RoleCustomer:
		if bk.CustomerID() != actor.ID {
			return nil, domain.NewForbiddenError("booking does not belong to this customer")
		}
	case bookingDomain.RoleWorker:
		if bk.WorkerID() == nil || *bk.WorkerID() != actor.ID {
			return nil, domain.NewForbiddenError("booking is not assigned to this worker")
		}
	}

	result := s.toBookingDTO(bk, actor)
	return &result, nil
}

// GetCustomerBookings retrieves paginated bookings for a specific customer.
func (s *BookingService) GetCustomerBookings(ctx context.Context, actor bookingDomain.Actor, customerID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.FindByCustomerID(ctx, customerID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(s.toBookingDTOs(bookings, actor), total, page, limit)
	return &result, nil
}

// GetWorkerBookings retrieves paginated bookings assigned to a worker.
func (s *BookingService) GetWorkerBookings(ctx context.Context, actor bookingDomain.Actor, workerID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.FindByWorkerID(ctx, workerID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(s.toBookingDTOs(bookings, actor), total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, actor bookingDomain.Actor, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return s.toBookingDTOs(bookings, actor), total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// --- Helpers ---

// validatedFormFields is every form field the rules engine has a rule for.
var validatedFormFields = []string{
	bookingDomain.FieldCustomerID,
	bookingDomain.FieldServiceID,
	bookingDomain.FieldScheduledDate,
	bookingDomain.FieldScheduledTime,
	bookingDomain.FieldServiceAddressText,
	bookingDomain.FieldVehicleType,
	bookingDomain.FieldBasePrice,
	bookingDomain.FieldEstimatedDuration,
	bookingDomain.FieldVehicleYear,
	bookingDomain.FieldAdditionalCharges,
	bookingDomain.FieldDiscountAmount,
}

// validateBookingForm runs every per-field rule relevant to the actor's role
// and aggregates the failures into a single validation error.
func validateBookingForm(form bookingDomain.FormModel, role bookingDomain.Role) error {
	now := time.Now().UTC()
	required := make(map[string]bool)
	for _, f := range bookingDomain.RequiredFields(role) {
		required[f] = true
	}

	var messages []string
	for _, field := range validatedFormFields {
		value := formValue(form, field)
		if !required[field] && field == bookingDomain.FieldCustomerID {
			continue
		}
		if msg := bookingDomain.ValidateField(field, value, role, now); msg != "" {
			messages = append(messages, msg)
		}
	}

	if len(messages) > 0 {
		return domain.NewValidationError(strings.Join(messages, "; "))
	}
	return nil
}

func formValue(form bookingDomain.FormModel, field string) string {
	switch field {
	case bookingDomain.FieldCustomerID:
		return form.CustomerID
	case bookingDomain.FieldServiceID:
		return form.ServiceID
	case bookingDomain.FieldScheduledDate:
		return form.ScheduledDate
	case bookingDomain.FieldScheduledTime:
		return form.ScheduledTime
	case bookingDomain.FieldServiceAddressText:
		return form.ServiceAddressText
	case bookingDomain.FieldVehicleType:
		return form.VehicleType
	case bookingDomain.FieldBasePrice:
		return form.BasePrice
	case bookingDomain.FieldEstimatedDuration:
		return form.EstimatedDuration
	case bookingDomain.FieldVehicleYear:
		return form.VehicleYear
	case bookingDomain.FieldAdditionalCharges:
		return form.AdditionalCharges
	case bookingDomain.FieldDiscountAmount:
		return form.DiscountAmount
	}
	return ""
}

func vehicleFromPayload(p bookingDomain.APIPayload) bookingDomain.VehicleSpecification {
	spec := bookingDomain.VehicleSpecification{
		VehicleType: derefString(p.VehicleType),
		Make:        derefString(p.VehicleMake),
		Model:       derefString(p.VehicleModel),
	}
	if p.VehicleYear != nil {
		spec.Year = *p.VehicleYear
	}
	return spec
}

func parseUUIDField(value *string, field string) (uuid.UUID, error) {
	if value == nil {
		return uuid.Nil, domain.NewValidationError(fmt.Sprintf("%s is required", field))
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(fmt.Sprintf("%s is not a valid ID", field))
	}
	return id, nil
}

func parseDateField(value *string) (time.Time, error) {
	if value == nil {
		return time.Time{}, domain.NewValidationError("scheduled_date is required")
	}
	d, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return time.Time{}, domain.NewValidationError("scheduled_date is not a valid date")
	}
	return d, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *BookingService) toBookingDTO(bk *bookingDomain.Booking, actor bookingDomain.Actor) BookingDTO {
	allowed := bookingDomain.AllowedTransitions(bk.Status(), actor.Role)
	transitions := make([]string, len(allowed))
	for i, t := range allowed {
		transitions[i] = string(t)
	}

	return BookingDTO{
		ID:                 bk.ID(),
		BookingNumber:      bk.BookingNumber(),
		CustomerID:         bk.CustomerID(),
		WorkerID:           bk.WorkerID(),
		ServiceID:          bk.ServiceID(),
		Status:             string(bk.Status()),
		Vehicle:            bk.Vehicle(),
		Address:            bk.Address(),
		ScheduledDate:      bk.ScheduledDate().Format("2006-01-02"),
		ScheduledTime:      bk.ScheduledTime(),
		BasePrice:          bk.BasePrice(),
		AdditionalCharges:  bk.AdditionalCharges(),
		DiscountAmount:     bk.DiscountAmount(),
		TotalPrice:         bk.TotalPrice(),
		EstimatedDuration:  bk.EstimatedDuration(),
		Notes:              bk.Notes(),
		CancelNote:         bk.CancelNote(),
		PaidAt:             bk.PaidAt(),
		CancelledAt:        bk.CancelledAt(),
		Version:            bk.Version(),
		CreatedAt:          bk.CreatedAt(),
		UpdatedAt:          bk.UpdatedAt(),
		CanEdit:            bookingDomain.CanEdit(bk, actor),
		CanCancel:          bookingDomain.CanCancel(bk, actor),
		AllowedTransitions: transitions,
		Display:            bookingDomain.NormalizeForDisplay(bk),
	}
}

func (s *BookingService) toBookingDTOs(bookings []*bookingDomain.Booking, actor bookingDomain.Actor) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = s.toBookingDTO(bk, actor)
	}
	return dtos
}

func (s *BookingService) publishBookingCreated(ctx context.Context, bk *bookingDomain.Booking) {
	evt := events.BookingCreatedEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		CustomerID:    bk.CustomerID(),
		ServiceID:     bk.ServiceID(),
		VehicleType:   bk.Vehicle().VehicleType,
		TotalPrice:    bk.TotalPrice(),
		ScheduledDate: bk.ScheduledDate().Format("2006-01-02"),
		ScheduledTime: bk.ScheduledTime(),
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCreated, evt)
}

func (s *BookingService) publishStatusChanged(ctx context.Context, bk *bookingDomain.Booking, from bookingDomain.BookingStatus, actor bookingDomain.Actor) {
	evt := events.BookingStatusChangedEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		FromStatus:    string(from),
		ToStatus:      string(bk.Status()),
		ChangedBy:     actor.ID,
		ChangedByRole: string(actor.Role),
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingStatusChanged, evt)
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	if s.producer == nil {
		return
	}
	cloudEvent, err := kafka.NewCloudEvent("service-booking", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func (s *BookingService) notify(ctx context.Context, userID, bookingID uuid.UUID, nType notificationDomain.NotificationType, title, body string) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.Notify(ctx, userID, bookingID, nType, title, body); err != nil {
		s.logger.Warn("failed to create notification",
			zap.String("booking_id", bookingID.String()),
			zap.Error(err),
		)
	}
}
