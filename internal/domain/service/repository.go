package service

import (
	"context"

	"github.com/google/uuid"
)

// ServiceRepository defines persistence operations for catalog services.
type ServiceRepository interface {
	Save(ctx context.Context, svc *Service) error
	Update(ctx context.Context, svc *Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*Service, error)
	ListActive(ctx context.Context) ([]*Service, error)
	ListAll(ctx context.Context) ([]*Service, error)
}
