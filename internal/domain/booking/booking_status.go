package booking

import "fmt"

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// roleTransitions defines the state machine for booking status transitions,
// keyed by current status and then by acting role. Statuses with no entry for
// a role admit no transitions for that role.
var roleTransitions = map[BookingStatus]map[Role][]BookingStatus{
	StatusPending: {
		RoleAdmin:    {StatusConfirmed, StatusCancelled},
		RoleWorker:   {StatusConfirmed, StatusCancelled},
		RoleCustomer: {StatusCancelled},
	},
	StatusConfirmed: {
		RoleAdmin:    {StatusInProgress, StatusCancelled},
		RoleWorker:   {StatusInProgress, StatusCancelled},
		RoleCustomer: {},
	},
	StatusInProgress: {
		RoleAdmin:  {StatusCompleted, StatusCancelled},
		RoleWorker: {StatusCompleted},
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

// AllowedTransitions returns the set of statuses the given role may move a
// booking into from the current status. Unknown status/role pairs yield an
// empty set.
func AllowedTransitions(s BookingStatus, role Role) []BookingStatus {
	byRole, exists := roleTransitions[s]
	if !exists {
		return nil
	}
	allowed, exists := byRole[role]
	if !exists {
		return nil
	}
	out := make([]BookingStatus, len(allowed))
	copy(out, allowed)
	return out
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := roleTransitions[s]
	return exists
}

// CanTransitionTo returns true if the given role may transition a booking from
// this status to the target.
func (s BookingStatus) CanTransitionTo(target BookingStatus, role Role) bool {
	for _, t := range AllowedTransitions(s, role) {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this
// status for any role.
func (s BookingStatus) IsTerminal() bool {
	byRole, exists := roleTransitions[s]
	if !exists {
		return true
	}
	for _, allowed := range byRole {
		if len(allowed) > 0 {
			return false
		}
	}
	return true
}

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, returning an error if invalid.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

// StatusDescriptor carries the display metadata for a booking status.
type StatusDescriptor struct {
	Label       string `json:"label"`
	CSSClass    string `json:"css_class"`
	Description string `json:"description"`
}

var statusDescriptors = map[BookingStatus]StatusDescriptor{
	StatusPending:    {Label: "Pending", CSSClass: "status-pending", Description: "Waiting for confirmation"},
	StatusConfirmed:  {Label: "Confirmed", CSSClass: "status-confirmed", Description: "Confirmed and scheduled"},
	StatusInProgress: {Label: "In Progress", CSSClass: "status-in-progress", Description: "Service is underway"},
	StatusCompleted:  {Label: "Completed", CSSClass: "status-completed", Description: "Service has been completed"},
	StatusCancelled:  {Label: "Cancelled", CSSClass: "status-cancelled", Description: "Booking was cancelled"},
}

// Descriptor returns the display metadata for the status. Unknown statuses
// fall back to a descriptor built from the raw value.
func (s BookingStatus) Descriptor() StatusDescriptor {
	if d, ok := statusDescriptors[s]; ok {
		return d
	}
	return StatusDescriptor{Label: string(s), CSSClass: "status-unknown", Description: "Unknown status"}
}
