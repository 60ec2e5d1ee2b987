// Package state provides session state management.
package state

// Phase represents the session lifecycle phase.
type Phase int

const (
	PhaseWaiting    Phase = iota // Loading the catalog
	PhaseActive                  // Accepting commands
	PhaseTerminated              // Session has ended
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseActive:
		return "active"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
