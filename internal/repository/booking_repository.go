package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homeshine-platform/service-booking/internal/domain"
	bookingDomain "github.com/homeshine-platform/service-booking/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BookingNumber     string          `gorm:"uniqueIndex;not null;size:20"`
	CustomerID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	WorkerID          *uuid.UUID      `gorm:"type:uuid;index"`
	ServiceID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	Status            string          `gorm:"not null;size:30;index"`
	Vehicle           json.RawMessage `gorm:"type:jsonb;not null"`
	ServiceAddress    json.RawMessage `gorm:"type:jsonb;not null"`
	ScheduledDate     time.Time       `gorm:"type:date;not null"`
	ScheduledTime     string          `gorm:"not null;size:10"`
	BasePrice         float64         `gorm:"type:numeric(12,2);not null"`
	AdditionalCharges float64         `gorm:"type:numeric(12,2);not null;default:0"`
	DiscountAmount    float64         `gorm:"type:numeric(12,2);not null;default:0"`
	TotalPrice        float64         `gorm:"type:numeric(12,2);not null"`
	CanCancel         *bool           `gorm:""`
	EstimatedDuration *int            `gorm:""`
	Notes             string          `gorm:"size:1000"`
	CancelNote        string          `gorm:"size:500"`
	PaidAt            *time.Time      `gorm:""`
	CancelledAt       *time.Time      `gorm:""`
	Version           int64           `gorm:"not null;default:1"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByNumber retrieves a booking by its booking number.
func (r *GormBookingRepository) FindByNumber(ctx context.Context, number string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("booking_number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", number)
		}
		return nil, fmt.Errorf("failed to find booking by number: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByCustomerID retrieves bookings for a specific customer with pagination.
func (r *GormBookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("customer_id = ?", customerID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customer bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find customer bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// FindByWorkerID retrieves bookings assigned to a worker with pagination.
func (r *GormBookingRepository) FindByWorkerID(ctx context.Context, workerID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("worker_id = ?", workerID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count worker bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find worker bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	// Optimistic locking: only update if the version matches (current version - 1 since IncrementVersion was called)
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"worker_id":          model.WorkerID,
			"status":             model.Status,
			"vehicle":            model.Vehicle,
			"service_address":    model.ServiceAddress,
			"scheduled_date":     model.ScheduledDate,
			"scheduled_time":     model.ScheduledTime,
			"base_price":         model.BasePrice,
			"additional_charges": model.AdditionalCharges,
			"discount_amount":    model.DiscountAmount,
			"total_price":        model.TotalPrice,
			"can_cancel":         model.CanCancel,
			"estimated_duration": model.EstimatedDuration,
			"notes":              model.Notes,
			"cancel_note":        model.CancelNote,
			"paid_at":            model.PaidAt,
			"cancelled_at":       model.CancelledAt,
			"version":            model.Version,
			"updated_at":         model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}

	return nil
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) (*BookingModel, error) {
	vehicleJSON, err := json.Marshal(bk.Vehicle())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vehicle: %w", err)
	}

	addressJSON, err := json.Marshal(bk.Address())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal service address: %w", err)
	}

	return &BookingModel{
		ID:                bk.ID(),
		BookingNumber:     bk.BookingNumber(),
		CustomerID:        bk.CustomerID(),
		WorkerID:          bk.WorkerID(),
		ServiceID:         bk.ServiceID(),
		Status:            string(bk.Status()),
		Vehicle:           vehicleJSON,
		ServiceAddress:    addressJSON,
		ScheduledDate:     bk.ScheduledDate(),
		ScheduledTime:     bk.ScheduledTime(),
		BasePrice:         bk.BasePrice(),
		AdditionalCharges: bk.AdditionalCharges(),
		DiscountAmount:    bk.DiscountAmount(),
		TotalPrice:        bk.TotalPrice(),
		CanCancel:         bk.CanCancelOverride(),
		EstimatedDuration: bk.EstimatedDuration(),
		Notes:             bk.Notes(),
		CancelNote:        bk.CancelNote(),
		PaidAt:            bk.PaidAt(),
		CancelledAt:       bk.CancelledAt(),
		Version:           bk.Version(),
		CreatedAt:         bk.CreatedAt(),
		UpdatedAt:         bk.UpdatedAt(),
	}, nil
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	var vehicle bookingDomain.VehicleSpecification
	if err := json.Unmarshal(m.Vehicle, &vehicle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vehicle: %w", err)
	}

	var address bookingDomain.Address
	if err := json.Unmarshal(m.ServiceAddress, &address); err != nil {
		return nil, fmt.Errorf("failed to unmarshal service address: %w", err)
	}

	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.BookingNumber,
		m.CustomerID,
		m.WorkerID,
		m.ServiceID,
		status,
		vehicle,
		address,
		m.ScheduledDate,
		m.ScheduledTime,
		m.BasePrice,
		m.AdditionalCharges,
		m.DiscountAmount,
		m.TotalPrice,
		m.CanCancel,
		m.EstimatedDuration,
		m.Notes,
		m.CancelNote,
		m.PaidAt,
		m.CancelledAt,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel, total int64) ([]*bookingDomain.Booking, int64, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}
