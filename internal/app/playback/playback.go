package playback

import (
	"time"

	"github.com/osa030/musicbox/internal/domain/track"
)

// Callback receives events from a playback engine.
type Callback interface {
	// OnCompletion is called when the current item played to its end.
	OnCompletion()
	// OnPlaybackStatusChanged is called on every engine state change.
	OnPlaybackStatusChanged(state State)
	// OnError is called when the engine fails asynchronously.
	OnError(err error)
	// SetCurrentMediaID is called when the engine switches items by itself.
	SetCurrentMediaID(mediaID string)
}

// Playback is a playback engine.
type Playback interface {
	// Start connects the engine.
	Start()
	// Stop stops playback. Listeners are notified when notify is true.
	Stop(notify bool)
	State() State
	IsConnected() bool
	IsPlaying() bool
	CurrentStreamPosition() time.Duration
	SetCurrentStreamPosition(position time.Duration)
	// Play starts item, resuming from the kept position when item is the
	// current media.
	Play(item track.QueueItem) error
	Pause()
	SeekTo(position time.Duration)
	SetCurrentMediaID(mediaID string)
	CurrentMediaID() string
	SetCallback(cb Callback)
}

// ServiceCallback receives the outward-facing playback events.
type ServiceCallback interface {
	OnPlaybackStart()
	OnNotificationRequired()
	OnPlaybackStop()
	OnPlaybackStateUpdated(state PlaybackState)
	OnError(err error)
}
