package playback

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/musicbox/internal/domain/errdefs"
	"github.com/osa030/musicbox/internal/domain/mediaid"
	"github.com/osa030/musicbox/internal/domain/track"
)

// Default LocalPlayback settings.
const (
	DefaultTickInterval  = 100 * time.Millisecond
	DefaultTrackDuration = 3 * time.Minute
)

// TrackLookup resolves music ids to catalog tracks.
type TrackLookup interface {
	Track(id string) (track.Track, bool)
}

// LocalConfig holds LocalPlayback configuration.
type LocalConfig struct {
	TickInterval    time.Duration // Wall clock polling interval of the completion timer
	DefaultDuration time.Duration // Duration of tracks without a known duration
	Dispatch        func(func())  // Runs timer callbacks, nil runs them on the timer goroutine
}

// LocalPlayback is a clock-driven engine. It tracks the stream position on
// the wall clock and reports completion when the current track's duration
// has elapsed.
type LocalPlayback struct {
	mu sync.Mutex

	tracks   TrackLookup
	config   LocalConfig
	callback Callback

	state          State
	connected      bool
	currentMediaID string
	duration       time.Duration
	position       time.Duration // Position at startedAt while playing
	startedAt      time.Time

	// generation invalidates completion timers started for earlier plays.
	generation  uint64
	timerCancel func()
}

// NewLocalPlayback creates a disconnected engine.
func NewLocalPlayback(tracks TrackLookup, config LocalConfig) *LocalPlayback {
	if config.TickInterval <= 0 {
		config.TickInterval = DefaultTickInterval
	}
	if config.DefaultDuration <= 0 {
		config.DefaultDuration = DefaultTrackDuration
	}
	if config.Dispatch == nil {
		config.Dispatch = func(f func()) { f() }
	}
	return &LocalPlayback{
		tracks: tracks,
		config: config,
		state:  StateNone,
	}
}

// Start connects the engine.
func (l *LocalPlayback) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.connected = true
}

// Close stops playback and disconnects the engine.
func (l *LocalPlayback) Close() {
	l.Stop(false)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.connected = false
}

// Stop stops playback and keeps the position, so that playing the same
// media again resumes where it stopped.
func (l *LocalPlayback) Stop(notify bool) {
	l.mu.Lock()
	l.position = l.positionLocked()
	l.cancelTimerLocked()
	l.state = StateStopped
	cb := l.callback
	l.mu.Unlock()

	if notify && cb != nil {
		cb.OnPlaybackStatusChanged(StateStopped)
	}
}

// State returns the engine state.
func (l *LocalPlayback) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// IsConnected reports whether Start was called.
func (l *LocalPlayback) IsConnected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.connected
}

// IsPlaying reports whether the engine is playing.
func (l *LocalPlayback) IsPlaying() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == StatePlaying
}

// CurrentStreamPosition returns the position within the current item.
func (l *LocalPlayback) CurrentStreamPosition() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.positionLocked()
}

// SetCurrentStreamPosition sets the position the next play resumes from.
func (l *LocalPlayback) SetCurrentStreamPosition(position time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = max(position, 0)
	l.startedAt = toWallTime(time.Now())
}

// Play starts item. Playing the current media again resumes from the kept
// position.
func (l *LocalPlayback) Play(item track.QueueItem) error {
	musicID, ok := mediaid.ExtractMusicID(item.MediaID)
	if !ok {
		return errors.Wrapf(errdefs.ErrInvalidArgument, "media id %q is not playable", item.MediaID)
	}
	t, ok := l.tracks.Track(musicID)
	if !ok {
		return errors.Wrapf(errdefs.ErrNotFound, "music id %q", musicID)
	}

	l.mu.Lock()
	if !l.connected {
		l.mu.Unlock()
		return errors.Wrap(errdefs.ErrEngineUnavailable, "local playback is not started")
	}
	if item.MediaID != l.currentMediaID {
		l.currentMediaID = item.MediaID
		l.position = 0
	}
	l.duration = t.Duration
	if l.duration <= 0 {
		l.duration = l.config.DefaultDuration
	}
	if l.position >= l.duration {
		l.position = 0
	}
	l.state = StatePlaying
	l.startedAt = toWallTime(time.Now())
	l.startCompletionTimerLocked(l.duration - l.position)
	cb := l.callback
	zlog.Debug().Msgf("playback: local play: media_id=%s position=%v duration=%v", item.MediaID, l.position, l.duration)
	l.mu.Unlock()

	if cb != nil {
		cb.OnPlaybackStatusChanged(StatePlaying)
	}
	return nil
}

// Pause pauses playback at the current position.
func (l *LocalPlayback) Pause() {
	l.mu.Lock()
	if l.state != StatePlaying {
		l.state = StatePaused
		l.mu.Unlock()
		return
	}
	l.position = l.positionLocked()
	l.cancelTimerLocked()
	l.state = StatePaused
	cb := l.callback
	l.mu.Unlock()

	if cb != nil {
		cb.OnPlaybackStatusChanged(StatePaused)
	}
}

// SeekTo moves the position, clamped to the current item's duration.
func (l *LocalPlayback) SeekTo(position time.Duration) {
	l.mu.Lock()
	position = max(position, 0)
	if l.duration > 0 {
		position = min(position, l.duration)
	}
	l.position = position
	l.startedAt = toWallTime(time.Now())
	if l.state == StatePlaying {
		l.startCompletionTimerLocked(l.duration - position)
	}
	state := l.state
	cb := l.callback
	l.mu.Unlock()

	if cb != nil {
		cb.OnPlaybackStatusChanged(state)
	}
}

// SetCurrentMediaID sets the current media without playing it.
func (l *LocalPlayback) SetCurrentMediaID(mediaID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.currentMediaID = mediaID
}

// CurrentMediaID returns the current media id.
func (l *LocalPlayback) CurrentMediaID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.currentMediaID
}

// SetCallback registers the engine callback.
func (l *LocalPlayback) SetCallback(cb Callback) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callback = cb
}

func (l *LocalPlayback) positionLocked() time.Duration {
	if l.state != StatePlaying {
		return l.position
	}
	position := l.position + toWallTime(time.Now()).Sub(l.startedAt)
	if l.duration > 0 && position > l.duration {
		return l.duration
	}
	return position
}

// startCompletionTimerLocked replaces the completion timer.
// Must be called with lock held.
func (l *LocalPlayback) startCompletionTimerLocked(remaining time.Duration) {
	l.cancelTimerLocked()
	gen := l.generation
	l.timerCancel = l.startWallClockTimer(remaining, func() {
		l.config.Dispatch(func() { l.onCompletion(gen) })
	})
}

// cancelTimerLocked stops the completion timer and invalidates callbacks
// already in flight. Must be called with lock held.
func (l *LocalPlayback) cancelTimerLocked() {
	l.generation++
	if l.timerCancel != nil {
		l.timerCancel()
		l.timerCancel = nil
	}
}

func (l *LocalPlayback) onCompletion(gen uint64) {
	l.mu.Lock()
	if gen != l.generation || l.state != StatePlaying {
		l.mu.Unlock()
		zlog.Debug().Msgf("playback: ignoring stale completion: generation=%d", gen)
		return
	}
	l.timerCancel = nil
	l.generation++
	l.position = l.duration
	l.state = StateStopped
	cb := l.callback
	l.mu.Unlock()

	if cb != nil {
		cb.OnCompletion()
	}
}

// startWallClockTimer starts a timer that triggers callback after duration, using wall clock.
// Returns a cancel function.
func (l *LocalPlayback) startWallClockTimer(duration time.Duration, callback func()) func() {
	ctx, cancel := context.WithCancel(context.Background())
	endTime := toWallTime(time.Now()).Add(duration)
	tick := l.config.TickInterval

	go func() {
		ticker := time.NewTicker(tick)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !toWallTime(time.Now()).Before(endTime) {
					callback()
					return
				}
			}
		}
	}()

	return cancel
}

// toWallTime returns the time with monotonic clock stripped.
func toWallTime(t time.Time) time.Time {
	return time.Unix(t.Unix(), int64(t.Nanosecond()))
}
