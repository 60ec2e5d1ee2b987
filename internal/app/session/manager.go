// Package session provides the session manager. It hosts the catalog, the
// play queue and the playback engine, and serializes every command and
// engine callback.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/musicbox/internal/app/catalog"
	"github.com/osa030/musicbox/internal/app/notification"
	"github.com/osa030/musicbox/internal/app/playback"
	"github.com/osa030/musicbox/internal/app/queue"
	"github.com/osa030/musicbox/internal/app/session/state"
	"github.com/osa030/musicbox/internal/domain/errdefs"
	"github.com/osa030/musicbox/internal/domain/playlist"
	"github.com/osa030/musicbox/internal/domain/track"
	"github.com/osa030/musicbox/internal/infra/config"
)

var ErrSessionNotRunning = errors.Wrap(errdefs.ErrEngineUnavailable, "session is not running")

// Manager manages the music session.
type Manager struct {
	// mu serializes commands and engine callbacks.
	mu sync.Mutex
	// flushMu keeps broadcast order equal to event order. It is acquired
	// while holding mu and released after mu.
	flushMu sync.Mutex
	pending []*notification.Notification

	// Configuration
	config *config.Config

	// Components
	stateMgr     *state.Manager
	catalog      *catalog.Catalog
	queue        *queue.Manager
	engine       *playback.LocalPlayback
	playback     *playback.Manager
	notification *notification.Manager

	done     chan struct{}
	stopOnce sync.Once
}

// Status is a point-in-time view of the session.
type Status struct {
	SessionID    string
	Phase        state.Phase
	CatalogState catalog.State
	Playback     playback.PlaybackState
	Track        *track.Track
	QueueTitle   string
	QueueIndex   int
	QueueSize    int
	StartedAt    time.Time
}

// NewManager creates a new session manager over the given catalog source.
func NewManager(cfg *config.Config, source catalog.Source) *Manager {
	m := &Manager{
		config:       cfg,
		stateMgr:     state.New(uuid.New().String()),
		catalog:      catalog.New(source),
		notification: notification.NewManager(),
		done:         make(chan struct{}),
	}

	events := &sessionEvents{m: m}
	m.queue = queue.NewManager(m.catalog, events)
	m.engine = playback.NewLocalPlayback(m.catalog, playback.LocalConfig{
		TickInterval:    cfg.Playback.TickInterval(),
		DefaultDuration: cfg.Playback.DefaultTrackDuration(),
		Dispatch:        m.dispatch,
	})
	m.playback = playback.NewManager(events, m.catalog, m.queue, m.engine)

	return m
}

// Start loads the catalog, connects the engine and activates the session.
func (m *Manager) Start(ctx context.Context) error {
	if m.stateMgr.GetPhase() != state.PhaseWaiting {
		return errors.Newf("session cannot start in phase %s", m.stateMgr.GetPhase())
	}

	if err := m.catalog.Load(ctx); err != nil {
		return errors.Wrap(err, "failed to start session")
	}

	m.mu.Lock()
	m.engine.Start()
	m.stateMgr.SetPhase(state.PhaseActive)
	zlog.Info().Msgf("phase changed: phase=ACTIVE session_id=%s genres=%d", m.stateMgr.GetSessionID(), len(m.catalog.Genres()))
	m.playback.UpdatePlaybackState("")
	m.flushLocked()

	return nil
}

// Stop stops playback and terminates the session. It is safe to call more
// than once.
func (m *Manager) Stop(ctx context.Context) error {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		if m.stateMgr.IsActive() {
			if err := m.playback.Stop(); err != nil {
				zlog.Warn().Err(err).Msg("failed to stop playback")
			}
		}
		m.engine.Close()
		m.stateMgr.SetPhase(state.PhaseTerminated)
		zlog.Info().Msgf("phase changed: phase=TERMINATED session_id=%s", m.stateMgr.GetSessionID())
		m.flushLocked()
		close(m.done)
	})
	return nil
}

// Done returns a channel closed when the session terminates.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// Close terminates the session and drops all subscribers.
func (m *Manager) Close() {
	_ = m.Stop(context.Background())
	m.notification.Close()
}

// Play starts or resumes playback.
func (m *Manager) Play() error {
	return m.exec(m.playback.Play)
}

// Pause pauses playback.
func (m *Manager) Pause() error {
	return m.exec(m.playback.Pause)
}

// StopPlayback stops playback without ending the session.
func (m *Manager) StopPlayback() error {
	return m.exec(m.playback.Stop)
}

// SkipToNext plays the next queue item.
func (m *Manager) SkipToNext() error {
	return m.exec(m.playback.SkipToNext)
}

// SkipToPrevious plays the previous queue item.
func (m *Manager) SkipToPrevious() error {
	return m.exec(m.playback.SkipToPrevious)
}

// SeekTo moves the stream position.
func (m *Manager) SeekTo(position time.Duration) error {
	return m.exec(func() error { return m.playback.SeekTo(position) })
}

// PlayFromMediaID plays a media id within its category.
func (m *Manager) PlayFromMediaID(mediaID string) error {
	return m.exec(func() error { return m.playback.PlayFromMediaID(mediaID) })
}

// PlayFromSearch plays the results of a search.
func (m *Manager) PlayFromSearch(query string, extras queue.SearchExtras) error {
	return m.exec(func() error { return m.playback.PlayFromSearch(query, extras) })
}

// SkipToQueueItem plays the queue item with queueID.
func (m *Manager) SkipToQueueItem(queueID int64) error {
	return m.exec(func() error { return m.playback.SkipToQueueItem(queueID) })
}

// SetRating marks or unmarks the current track as favorite.
func (m *Manager) SetRating(favorite bool) error {
	return m.exec(func() error { return m.playback.SetRating(favorite) })
}

// ToggleFavorite flips the favorite mark of the current track.
func (m *Manager) ToggleFavorite() error {
	return m.exec(m.playback.ToggleFavorite)
}

// GetStatus returns the current session status.
func (m *Manager) GetStatus() *Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	ps, _ := m.stateMgr.GetPlaybackState()
	if m.engine.IsConnected() {
		ps.Position = m.engine.CurrentStreamPosition()
	}
	t, _ := m.stateMgr.GetTrack()

	return &Status{
		SessionID:    m.stateMgr.GetSessionID(),
		Phase:        m.stateMgr.GetPhase(),
		CatalogState: m.catalog.State(),
		Playback:     ps,
		Track:        t,
		QueueTitle:   m.queue.Title(),
		QueueIndex:   m.queue.CurrentIndex(),
		QueueSize:    m.queue.CurrentQueueSize(),
		StartedAt:    m.stateMgr.GetStartedAt(),
	}
}

// Queue returns the current queue.
func (m *Manager) Queue() playlist.Playlist {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Snapshot()
}

// Browse returns the children of a browsable media id.
func (m *Manager) Browse(mediaID string) []catalog.MediaItem {
	return m.catalog.Children(mediaID)
}

// Art returns the artwork stored for a catalog track.
func (m *Manager) Art(musicID string) (catalog.Artwork, error) {
	art, ok := m.catalog.Art(musicID)
	if !ok {
		return catalog.Artwork{}, errors.Wrapf(errdefs.ErrNotFound, "no artwork for music id %q", musicID)
	}
	return art, nil
}

// Subscribe registers a stream and sends it the current state before any
// later notification.
func (m *Manager) Subscribe(stream notification.Stream) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushMu.Lock()
	defer m.flushMu.Unlock()

	id := m.notification.Subscribe(stream)
	for _, n := range m.snapshotLocked() {
		if err := m.notification.Send(id, n); err != nil {
			m.notification.Unsubscribe(id)
			return "", errors.Wrap(err, "failed to send initial state")
		}
	}
	zlog.Debug().Msgf("subscriber added: id=%s count=%d", id, m.notification.SubscriberCount())
	return id, nil
}

// Unsubscribe removes a subscription.
func (m *Manager) Unsubscribe(subscriptionID string) {
	m.notification.Unsubscribe(subscriptionID)
}

// exec runs a command under the session lock and broadcasts the
// notifications it produced.
func (m *Manager) exec(command func() error) error {
	m.mu.Lock()
	if !m.stateMgr.IsActive() {
		m.mu.Unlock()
		return ErrSessionNotRunning
	}
	err := command()
	m.flushLocked()
	return err
}

// dispatch runs engine timer callbacks under the session lock.
func (m *Manager) dispatch(f func()) {
	m.mu.Lock()
	if !m.stateMgr.IsActive() {
		m.mu.Unlock()
		return
	}
	f()
	m.flushLocked()
}

// flushLocked releases mu and broadcasts pending notifications in order.
// Must be called with mu held.
func (m *Manager) flushLocked() {
	pending := m.pending
	m.pending = nil
	m.flushMu.Lock()
	m.mu.Unlock()
	defer m.flushMu.Unlock()

	for _, n := range pending {
		if err := m.notification.Broadcast(n); err != nil {
			zlog.Error().Msgf("failed to broadcast %s: %v", n.Type, err)
		}
	}
}

// enqueueLocked queues a notification for the next flush.
func (m *Manager) enqueueLocked(n *notification.Notification) {
	n.Timestamp = time.Now()
	m.pending = append(m.pending, n)
}

// snapshotLocked builds the notifications describing the current state.
func (m *Manager) snapshotLocked() []*notification.Notification {
	now := time.Now()
	ps, _ := m.stateMgr.GetPlaybackState()
	if m.engine.IsConnected() {
		ps.Position = m.engine.CurrentStreamPosition()
	}
	snapshot := m.queue.Snapshot()

	result := []*notification.Notification{
		{Type: notification.TypeStateChanged, Timestamp: now, State: &ps},
		{Type: notification.TypeQueueUpdated, Timestamp: now, QueueTitle: snapshot.Title, Queue: snapshot.Items, QueueIndex: snapshot.CurrentIndex},
	}
	if t, ok := m.stateMgr.GetTrack(); ok {
		result = append(result, &notification.Notification{Type: notification.TypeMetadataChanged, Timestamp: now, Track: t})
	}
	return result
}
