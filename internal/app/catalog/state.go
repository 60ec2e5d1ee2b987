package catalog

// State represents the catalog lifecycle.
type State int

const (
	StateNonInitialized State = iota // Not loaded, or the last load failed
	StateInitializing                // Load in progress
	StateInitialized                 // Ready to serve queries
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateNonInitialized:
		return "non_initialized"
	case StateInitializing:
		return "initializing"
	case StateInitialized:
		return "initialized"
	default:
		return "unknown"
	}
}
