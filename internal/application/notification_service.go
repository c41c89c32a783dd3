package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/homeshine-platform/service-booking/internal/domain"
	notificationDomain "github.com/homeshine-platform/service-booking/internal/domain/notification"
)

// NotificationDTO is the API response representation of a notification.
type NotificationDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	BookingID uuid.UUID `json:"booking_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationService implements use cases for user notifications.
type NotificationService struct {
	repo   notificationDomain.NotificationRepository
	logger *zap.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo notificationDomain.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// Notify creates a notification for the given user. Failures are logged and
// returned but callers on the booking path treat them as non-fatal.
func (s *NotificationService) Notify(ctx context.Context, userID, bookingID uuid.UUID, nType notificationDomain.NotificationType, title, body string) error {
	n, err := notificationDomain.NewNotification(userID, bookingID, nType, title, body)
	if err != nil {
		return fmt.Errorf("invalid notification: %w", err)
	}

	if err := s.repo.Save(ctx, n); err != nil {
		s.logger.Error("failed to save notification",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

// ListForUser returns paginated notifications for the given user.
func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID, page, limit int) (*domain.PaginatedResult[NotificationDTO], error) {
	items, total, err := s.repo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	dtos := make([]NotificationDTO, len(items))
	for i, n := range items {
		dtos[i] = toNotificationDTO(n)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID() != userID {
		return domain.NewForbiddenError("notification does not belong to this user")
	}
	return s.repo.MarkRead(ctx, notificationID)
}

func toNotificationDTO(n *notificationDomain.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID(),
		UserID:    n.UserID(),
		BookingID: n.BookingID(),
		Type:      string(n.Type()),
		Title:     n.Title(),
		Body:      n.Body(),
		Read:      n.IsRead(),
		CreatedAt: n.CreatedAt(),
	}
}
