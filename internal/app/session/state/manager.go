package state

import (
	"sync"
	"time"

	"github.com/osa030/musicbox/internal/app/playback"
	"github.com/osa030/musicbox/internal/domain/track"
)

// Manager manages session state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	sessionID string
	phase     Phase
	startedAt time.Time

	// Last published values
	playbackState *playback.PlaybackState
	track         *track.Track
}

// New creates a new state manager.
func New(sessionID string) *Manager {
	return &Manager{
		sessionID: sessionID,
		phase:     PhaseWaiting,
	}
}

// GetSessionID returns the session id.
func (m *Manager) GetSessionID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionID
}

// GetPhase returns the current session phase.
func (m *Manager) GetPhase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

// SetPhase sets the session phase. Entering PhaseActive records the start time.
func (m *Manager) SetPhase(p Phase) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p == PhaseActive && m.phase != PhaseActive {
		m.startedAt = time.Now()
	}
	m.phase = p
}

// IsActive returns true if the session accepts commands.
func (m *Manager) IsActive() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase == PhaseActive
}

// GetStartedAt returns when the session became active.
func (m *Manager) GetStartedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.startedAt
}

// SetPlaybackState records the last published playback state.
func (m *Manager) SetPlaybackState(s playback.PlaybackState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playbackState = &s
}

// GetPlaybackState returns the last published playback state.
func (m *Manager) GetPlaybackState() (playback.PlaybackState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.playbackState == nil {
		return playback.PlaybackState{State: playback.StateNone, ActiveQueueItemID: -1}, false
	}
	return *m.playbackState, true
}

// SetTrack records the current track metadata. nil clears it.
func (m *Manager) SetTrack(t *track.Track) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t == nil {
		m.track = nil
		return
	}
	copied := *t
	m.track = &copied
}

// GetTrack returns the current track metadata.
func (m *Manager) GetTrack() (*track.Track, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.track == nil {
		return nil, false
	}
	copied := *m.track
	return &copied, true
}
