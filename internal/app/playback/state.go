// Package playback mediates transport commands between the play queue and
// a playback engine.
package playback

// State represents the playback state of an engine.
type State int

const (
	StateNone      State = iota // Nothing loaded yet
	StateStopped                // Stopped, position kept
	StatePaused                 // Paused at the current position
	StatePlaying                // Playing
	StateBuffering              // Preparing the current item
	StateError                  // Last command failed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateStopped:
		return "stopped"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	case StateBuffering:
		return "buffering"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// IsActive reports whether the engine is playing or about to play.
func (s State) IsActive() bool {
	return s == StatePlaying || s == StateBuffering
}
