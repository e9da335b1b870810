package scheduling

import "fmt"

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// validTransitions defines the state machine for booking status changes.
// completed and cancelled are terminal.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	return !exists || len(allowed) == 0
}

// CanTransitionTo returns true if a transition from this status to the target
// is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ParseStatus converts a string to a Status, rejecting anything outside the
// known set.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

// InvalidTransitionError reports an illegal status edge, naming both states.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

// ValidateTransition checks a requested status change against the state
// machine. Self-transitions and edges out of terminal states are rejected.
func ValidateTransition(current, requested Status) error {
	if !current.CanTransitionTo(requested) {
		return &InvalidTransitionError{From: current, To: requested}
	}
	return nil
}
