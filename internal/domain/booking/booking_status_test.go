package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedTransitions(t *testing.T) {
	tests := []struct {
		name     string
		status   BookingStatus
		role     Role
		expected []BookingStatus
	}{
		{"pending admin", StatusPending, RoleAdmin, []BookingStatus{StatusConfirmed, StatusCancelled}},
		{"pending worker", StatusPending, RoleWorker, []BookingStatus{StatusConfirmed, StatusCancelled}},
		{"pending customer", StatusPending, RoleCustomer, []BookingStatus{StatusCancelled}},
		{"confirmed admin", StatusConfirmed, RoleAdmin, []BookingStatus{StatusInProgress, StatusCancelled}},
		{"confirmed worker", StatusConfirmed, RoleWorker, []BookingStatus{StatusInProgress, StatusCancelled}},
		{"confirmed customer", StatusConfirmed, RoleCustomer, []BookingStatus{}},
		{"in_progress admin", StatusInProgress, RoleAdmin, []BookingStatus{StatusCompleted, StatusCancelled}},
		{"in_progress worker", StatusInProgress, RoleWorker, []BookingStatus{StatusCompleted}},
		{"in_progress customer", StatusInProgress, RoleCustomer, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllowedTransitions(tt.status, tt.role)
			assert.ElementsMatch(t, tt.expected, got)
		})
	}
}

func TestAllowedTransitions_TerminalStates(t *testing.T) {
	roles := []Role{RoleAdmin, RoleWorker, RoleCustomer}
	for _, role := range roles {
		assert.Empty(t, AllowedTransitions(StatusCompleted, role), "completed must admit no transitions for %s", role)
		assert.Empty(t, AllowedTransitions(StatusCancelled, role), "cancelled must admit no transitions for %s", role)
	}
}

func TestAllowedTransitions_UnknownStatus(t *testing.T) {
	assert.Nil(t, AllowedTransitions("archived", RoleAdmin))
}

func TestAllowedTransitions_ReturnsCopy(t *testing.T) {
	first := AllowedTransitions(StatusPending, RoleAdmin)
	require.NotEmpty(t, first)
	first[0] = StatusCompleted

	second := AllowedTransitions(StatusPending, RoleAdmin)
	assert.Equal(t, StatusConfirmed, second[0])
}

func TestCanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed, RoleWorker))
	assert.False(t, StatusPending.CanTransitionTo(StatusConfirmed, RoleCustomer))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled, RoleCustomer))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusCancelled, RoleCustomer))
	assert.True(t, StatusInProgress.CanTransitionTo(StatusCancelled, RoleAdmin))
	assert.False(t, StatusInProgress.CanTransitionTo(StatusCancelled, RoleWorker))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCancelled, RoleAdmin))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, BookingStatus("archived").IsTerminal())
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, status)

	_, err = ParseBookingStatus("driving")
	assert.Error(t, err)
}

func TestStatusDescriptor(t *testing.T) {
	d := StatusInProgress.Descriptor()
	assert.Equal(t, "In Progress", d.Label)
	assert.Equal(t, "status-in-progress", d.CSSClass)
	assert.NotEmpty(t, d.Description)

	unknown := BookingStatus("limbo").Descriptor()
	assert.Equal(t, "limbo", unknown.Label)
	assert.Equal(t, "status-unknown", unknown.CSSClass)
}
