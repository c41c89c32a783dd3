package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	serviceDomain "github.com/homeshine-platform/service-booking/internal/domain/service"
)

// CreateServiceRequest is the request DTO for creating a catalog service.
type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	Description     string  `json:"description"`
	BasePrice       float64 `json:"base_price" binding:"required"`
	DurationMinutes int     `json:"duration_minutes"`
}

// UpdateServiceRequest is the request DTO for updating a catalog service.
type UpdateServiceRequest struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	BasePrice       float64 `json:"base_price"`
	DurationMinutes int     `json:"duration_minutes"`
}

// ServiceDTO is the API response representation of a catalog service.
type ServiceDTO struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Description     string    `json:"description,omitempty"`
	BasePrice       float64   `json:"base_price"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CatalogService implements use cases for the bookable service catalog.
type CatalogService struct {
	repo   serviceDomain.ServiceRepository
	logger *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo serviceDomain.ServiceRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// CreateService adds a new offering to the catalog.
func (s *CatalogService) CreateService(ctx context.Context, req CreateServiceRequest) (*ServiceDTO, error) {
	svc, err := serviceDomain.NewService(req.Name, req.Category, req.Description, req.BasePrice, req.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("invalid service data: %w", err)
	}

	if err := s.repo.Save(ctx, svc); err != nil {
		s.logger.Error("failed to create catalog service", zap.Error(err))
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	s.logger.Info("catalog service created",
		zap.String("service_id", svc.ID().String()),
		zap.String("name", svc.Name()),
	)
	result := toServiceDTO(svc)
	return &result, nil
}

// GetService returns a single catalog service by ID.
func (s *CatalogService) GetService(ctx context.Context, serviceID uuid.UUID) (*ServiceDTO, error) {
	svc, err := s.repo.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	result := toServiceDTO(svc)
	return &result, nil
}

// ListActiveServices returns all bookable catalog services.
func (s *CatalogService) ListActiveServices(ctx context.Context) ([]ServiceDTO, error) {
	services, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return toServiceDTOs(services), nil
}

// ListAllServices returns every catalog service, archived included (admin).
func (s *CatalogService) ListAllServices(ctx context.Context) ([]ServiceDTO, error) {
	services, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return toServiceDTOs(services), nil
}

// UpdateService applies partial updates to a catalog service.
func (s *CatalogService) UpdateService(ctx context.Context, serviceID uuid.UUID, req UpdateServiceRequest) (*ServiceDTO, error) {
	svc, err := s.repo.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	svc.Update(req.Name, req.Category, req.Description, req.BasePrice, req.DurationMinutes)

	if err := s.repo.Update(ctx, svc); err != nil {
		s.logger.Error("failed to update catalog service", zap.Error(err))
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	result := toServiceDTO(svc)
	return &result, nil
}

// ArchiveService removes a service from the bookable catalog.
func (s *CatalogService) ArchiveService(ctx context.Context, serviceID uuid.UUID) error {
	svc, err := s.repo.FindByID(ctx, serviceID)
	if err != nil {
		return err
	}

	svc.Archive()
	if err := s.repo.Update(ctx, svc); err != nil {
		s.logger.Error("failed to archive catalog service", zap.Error(err))
		return fmt.Errorf("failed to archive service: %w", err)
	}

	s.logger.Info("catalog service archived", zap.String("service_id", serviceID.String()))
	return nil
}

func toServiceDTO(svc *serviceDomain.Service) ServiceDTO {
	return ServiceDTO{
		ID:              svc.ID(),
		Name:            svc.Name(),
		Category:        svc.Category(),
		Description:     svc.Description(),
		BasePrice:       svc.BasePrice(),
		DurationMinutes: svc.DurationMinutes(),
		Status:          string(svc.Status()),
		CreatedAt:       svc.CreatedAt(),
		UpdatedAt:       svc.UpdatedAt(),
	}
}

func toServiceDTOs(services []*serviceDomain.Service) []ServiceDTO {
	dtos := make([]ServiceDTO, len(services))
	for i, svc := range services {
		dtos[i] = toServiceDTO(svc)
	}
	return dtos
}
