package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes what triggered a notification.
type NotificationType string

const (
	TypeBookingCreated   NotificationType = "booking_created"
	TypeBookingConfirmed NotificationType = "booking_confirmed"
	TypeBookingCancelled NotificationType = "booking_cancelled"
	TypePaymentCaptured  NotificationType = "payment_captured"
)

// IsValid returns true if the notification type is recognized.
func (t NotificationType) IsValid() bool {
	switch t {
	case TypeBookingCreated, TypeBookingConfirmed, TypeBookingCancelled, TypePaymentCaptured:
		return true
	}
	return false
}

// Notification is a persisted per-user notification.
type Notification struct {
	id        uuid.UUID
	userID    uuid.UUID
	bookingID uuid.UUID
	nType     NotificationType
	title     string
	body      string
	read      bool
	createdAt time.Time
}

// NewNotification creates a new unread notification.
func NewNotification(userID, bookingID uuid.UUID, nType NotificationType, title, body string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user ID is required")
	}
	if !nType.IsValid() {
		return nil, fmt.Errorf("invalid notification type: %s", nType)
	}
	if title == "" {
		return nil, fmt.Errorf("notification title is required")
	}

	return &Notification{
		id:        uuid.New(),
		userID:    userID,
		bookingID: bookingID,
		nType:     nType,
		title:     title,
		body:      body,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Notification from persistence.
func Reconstruct(id, userID, bookingID uuid.UUID, nType NotificationType, title, body string, read bool, createdAt time.Time) *Notification {
	return &Notification{
		id:        id,
		userID:    userID,
		bookingID: bookingID,
		nType:     nType,
		title:     title,
		body:      body,
		read:      read,
		createdAt: createdAt,
	}
}

// Getters.
func (n *Notification) ID() uuid.UUID          { return n.id }
func (n *Notification) UserID() uuid.UUID      { return n.userID }
func (n *Notification) BookingID() uuid.UUID   { return n.bookingID }
func (n *Notification) Type() NotificationType { return n.nType }
func (n *Notification) Title() string          { return n.title }
func (n *Notification) Body() string           { return n.body }
func (n *Notification) IsRead() bool           { return n.read }
func (n *Notification) CreatedAt() time.Time   { return n.createdAt }

// MarkRead marks the notification as read.
func (n *Notification) MarkRead() {
	n.read = true
}
