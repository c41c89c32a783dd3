package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/homeshine-platform/service-booking/internal/domain"
)

// ServiceStatus represents the lifecycle state of a catalog service.
type ServiceStatus string

const (
	ServiceStatusActive   ServiceStatus = "active"
	ServiceStatusArchived ServiceStatus = "archived"
)

// Service is the aggregate root for a bookable catalog service offering.
type Service struct {
	id              uuid.UUID
	name            string
	category        string
	description     string
	basePrice       float64
	durationMinutes int
	status          ServiceStatus
	version         int64
	createdAt       time.Time
	updatedAt       time.Time
}

// NewService creates a new active catalog service with validated fields.
func NewService(name, category, description string, basePrice float64, durationMinutes int) (*Service, error) {
	if name == "" {
		return nil, domain.NewValidationError("service name is required")
	}
	if category == "" {
		return nil, domain.NewValidationError("service category is required")
	}
	if basePrice <= 0 {
		return nil, domain.NewValidationError("base price must be positive")
	}

	now := time.Now().UTC()
	return &Service{
		id:              uuid.New(),
		name:            name,
		category:        category,
		description:     description,
		basePrice:       basePrice,
		durationMinutes: durationMinutes,
		status:          ServiceStatusActive,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct rebuilds a Service from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	name, category, description string,
	basePrice float64,
	durationMinutes int,
	status ServiceStatus,
	version int64,
	createdAt, updatedAt time.Time,
) *Service {
	return &Service{
		id:              id,
		name:            name,
		category:        category,
		description:     description,
		basePrice:       basePrice,
		durationMinutes: durationMinutes,
		status:          status,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Getters ---

func (s *Service) ID() uuid.UUID        { return s.id }
func (s *Service) Name() string         { return s.name }
func (s *Service) Category() string     { return s.category }
func (s *Service) Description() string  { return s.description }
func (s *Service) BasePrice() float64   { return s.basePrice }
func (s *Service) DurationMinutes() int { return s.durationMinutes }
func (s *Service) Status() ServiceStatus { return s.status }
func (s *Service) Version() int64       { return s.version }
func (s *Service) CreatedAt() time.Time { return s.createdAt }
func (s *Service) UpdatedAt() time.Time { return s.updatedAt }

// --- Behavior ---

// Update applies partial updates to the catalog service.
func (s *Service) Update(name, category, description string, basePrice float64, durationMinutes int) {
	if name != "" {
		s.name = name
	}
	if category != "" {
		s.category = category
	}
	if description != "" {
		s.description = description
	}
	if basePrice > 0 {
		s.basePrice = basePrice
	}
	if durationMinutes > 0 {
		s.durationMinutes = durationMinutes
	}
	s.version++
	s.updatedAt = time.Now().UTC()
}

// Archive marks the service as no longer bookable.
func (s *Service) Archive() {
	s.status = ServiceStatusArchived
	s.version++
	s.updatedAt = time.Now().UTC()
}

// IsActive returns true if the service can be booked.
func (s *Service) IsActive() bool {
	return s.status == ServiceStatusActive
}
