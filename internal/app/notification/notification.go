package notification

import (
	"time"

	"github.com/osa030/musicbox/internal/app/playback"
	"github.com/osa030/musicbox/internal/domain/track"
)

// Type identifies the kind of a notification.
type Type int

const (
	TypeStateChanged      Type = iota // Playback state published
	TypeMetadataChanged               // Current track changed
	TypeMetadataError                 // Current item has no catalog track
	TypeQueueUpdated                  // Queue replaced
	TypeQueueIndexUpdated             // Current position moved
	TypePlaybackStopped               // Playback stopped
	TypeError                         // Command or engine failure
)

// String returns the string representation of the type.
func (t Type) String() string {
	switch t {
	case TypeStateChanged:
		return "state_changed"
	case TypeMetadataChanged:
		return "metadata_changed"
	case TypeMetadataError:
		return "metadata_error"
	case TypeQueueUpdated:
		return "queue_updated"
	case TypeQueueIndexUpdated:
		return "queue_index_updated"
	case TypePlaybackStopped:
		return "playback_stopped"
	case TypeError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is a session event delivered to subscribers. Only the
// fields relevant to Type are set.
type Notification struct {
	SequenceNo uint64
	Type       Type
	Timestamp  time.Time

	State      *playback.PlaybackState
	Track      *track.Track
	QueueTitle string
	Queue      []track.QueueItem
	QueueIndex int
	ErrorCode  string
	Message    string
}
