package booking

import (
	"fmt"

	"github.com/google/uuid"
)

// Role identifies the kind of user acting on a booking.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleWorker   Role = "worker"
	RoleCustomer Role = "customer"
)

// IsValid returns true if the role is a recognized platform role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleWorker, RoleCustomer:
		return true
	}
	return false
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// ParseRole converts a string to a Role, returning an error if invalid.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}

// Actor is the role+identity pair on whose behalf an authorization
// decision is made.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// NewActor creates an Actor from a verified identity.
func NewActor(id uuid.UUID, role Role) Actor {
	return Actor{ID: id, Role: role}
}
