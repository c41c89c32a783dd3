package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homeshine-platform/service-booking/internal/domain"
	serviceDomain "github.com/homeshine-platform/service-booking/internal/domain/service"
)

// ServiceModel is the GORM model for the services table.
type ServiceModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"not null;size:200"`
	Category        string    `gorm:"not null;size:100;index"`
	Description     string    `gorm:"size:1000"`
	BasePrice       float64   `gorm:"type:numeric(12,2);not null"`
	DurationMinutes int       `gorm:"not null;default:0"`
	Status          string    `gorm:"not null;size:30;index"`
	Version         int64     `gorm:"not null;default:1"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ServiceModel) TableName() string {
	return "services"
}

// GormServiceRepository is the GORM-based implementation of ServiceRepository.
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository.
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByID retrieves a catalog service by ID.
func (r *GormServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*serviceDomain.Service, error) {
	var model ServiceModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Service", id.String())
		}
		return nil, fmt.Errorf("failed to find service by ID: %w", err)
	}
	return toDomainService(&model), nil
}

// ListActive retrieves all active catalog services.
func (r *GormServiceRepository) ListActive(ctx context.Context) ([]*serviceDomain.Service, error) {
	var models []ServiceModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(serviceDomain.ServiceStatusActive)).
		Order("category, name").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list active services: %w", err)
	}
	return toDomainServices(models), nil
}

// ListAll retrieves every catalog service, archived included.
func (r *GormServiceRepository) ListAll(ctx context.Context) ([]*serviceDomain.Service, error) {
	var models []ServiceModel
	if err := r.db.WithContext(ctx).
		Order("category, name").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return toDomainServices(models), nil
}

// Save persists a new catalog service.
func (r *GormServiceRepository) Save(ctx context.Context, svc *serviceDomain.Service) error {
	if err := r.db.WithContext(ctx).Create(toServiceModel(svc)).Error; err != nil {
		return fmt.Errorf("failed to save service: %w", err)
	}
	return nil
}

// Update persists changes to an existing catalog service with optimistic locking.
func (r *GormServiceRepository) Update(ctx context.Context, svc *serviceDomain.Service) error {
	model := toServiceModel(svc)
	expectedVersion := svc.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&ServiceModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":             model.Name,
			"category":         model.Category,
			"description":      model.Description,
			"base_price":       model.BasePrice,
			"duration_minutes": model.DurationMinutes,
			"status":           model.Status,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("service was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func toServiceModel(svc *serviceDomain.Service) *ServiceModel {
	return &ServiceModel{
		ID:              svc.ID(),
		Name:            svc.Name(),
		Category:        svc.Category(),
		Description:     svc.Description(),
		BasePrice:       svc.BasePrice(),
		DurationMinutes: svc.DurationMinutes(),
		Status:          string(svc.Status()),
		Version:         svc.Version(),
		CreatedAt:       svc.CreatedAt(),
		UpdatedAt:       svc.UpdatedAt(),
	}
}

func toDomainService(m *ServiceModel) *serviceDomain.Service {
	return serviceDomain.Reconstruct(
		m.ID,
		m.Name,
		m.Category,
		m.Description,
		m.BasePrice,
		m.DurationMinutes,
		serviceDomain.ServiceStatus(m.Status),
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainServices(models []ServiceModel) []*serviceDomain.Service {
	services := make([]*serviceDomain.Service, len(models))
	for i, m := range models {
		services[i] = toDomainService(&m)
	}
	return services
}
