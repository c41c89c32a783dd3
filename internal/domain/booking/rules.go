package booking

// CanEdit reports whether the actor may edit the booking in its current
// status. Evaluated in order, first match wins: admins always may; terminal
// bookings never may; the owning customer only while pending; the assigned
// worker while pending, confirmed or in progress.
func CanEdit(b *Booking, actor Actor) bool {
	if actor.Role == RoleAdmin {
		return true
	}
	if b.Status().IsTerminal() {
		return false
	}

	switch actor.Role {
	case RoleCustomer:
		if b.CustomerID() != actor.ID {
			return false
		}
		return b.Status() == StatusPending
	case RoleWorker:
		if b.WorkerID() == nil || *b.WorkerID() != actor.ID {
			return false
		}
		switch b.Status() {
		case StatusPending, StatusConfirmed, StatusInProgress:
			return true
		}
		return false
	case RoleAdmin:
		return true
	}
	return false
}

// CanCancel reports whether the actor may cancel the booking. A terminal
// status forbids cancellation for everyone, and an explicit can_cancel=false
// override forbids it even for admins.
func CanCancel(b *Booking, actor Actor) bool {
	if b.Status().IsTerminal() {
		return false
	}
	if override := b.CanCancelOverride(); override != nil && !*override {
		return false
	}

	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleCustomer:
		return b.CustomerID() == actor.ID
	case RoleWorker:
		return b.WorkerID() != nil && *b.WorkerID() == actor.ID
	}
	return false
}
