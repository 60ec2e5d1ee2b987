package playback

import (
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/musicbox/internal/app/queue"
	"github.com/osa030/musicbox/internal/domain/errdefs"
	"github.com/osa030/musicbox/internal/domain/mediaid"
)

// Catalog defines the catalog operations used by the manager.
type Catalog interface {
	queue.Catalog
	IsFavorite(id string) bool
	SetFavorite(id string, favorite bool)
}

// Manager handles transport commands. It resolves what to play through the
// queue manager and drives the playback engine.
//
// Manager is not safe for concurrent use. Commands and engine callbacks
// must be serialized by the owner.
type Manager struct {
	catalog  Catalog
	queue    *queue.Manager
	playback Playback
	callback ServiceCallback

	lastState State
	now       func() time.Time
}

// NewManager creates a manager and registers it as the engine callback.
func NewManager(callback ServiceCallback, c Catalog, qm *queue.Manager, pb Playback) *Manager {
	m := &Manager{
		catalog:   c,
		queue:     qm,
		playback:  pb,
		callback:  callback,
		lastState: StateNone,
		now:       time.Now,
	}
	pb.SetCallback(m)
	return m
}

// Playback returns the current engine.
func (m *Manager) Playback() Playback {
	return m.playback
}

// Play plays the current queue item, building a random queue when there is
// none.
func (m *Manager) Play() error {
	zlog.Debug().Msg("playback: play")
	if err := m.checkEngine(); err != nil {
		return err
	}
	if _, ok := m.queue.CurrentMusic(); !ok {
		if !m.queue.SetRandomQueue() {
			return m.reject(errors.Wrap(errdefs.ErrNotFound, "catalog has no tracks to play"))
		}
	}
	return m.handlePlayRequest()
}

// Pause pauses playback.
func (m *Manager) Pause() error {
	zlog.Debug().Msg("playback: pause")
	if err := m.checkEngine(); err != nil {
		return err
	}
	m.handlePauseRequest()
	return nil
}

// Stop stops playback.
func (m *Manager) Stop() error {
	zlog.Debug().Msg("playback: stop")
	m.handleStopRequest("")
	return nil
}

// SkipToNext moves to the next queue item, wrapping at the end.
func (m *Manager) SkipToNext() error {
	zlog.Debug().Msg("playback: skip to next")
	return m.skip(1)
}

// SkipToPrevious moves to the previous queue item, wrapping at the start.
func (m *Manager) SkipToPrevious() error {
	zlog.Debug().Msg("playback: skip to previous")
	return m.skip(-1)
}

// SeekTo moves the stream position of the current item.
func (m *Manager) SeekTo(position time.Duration) error {
	zlog.Debug().Msgf("playback: seek to %v", position)
	if err := m.checkEngine(); err != nil {
		return err
	}
	if _, ok := m.queue.CurrentMusic(); !ok {
		return m.reject(errors.Wrap(errdefs.ErrNotFound, "nothing to seek"))
	}
	if position < 0 {
		return m.reject(errors.Wrapf(errdefs.ErrInvalidArgument, "negative position %v", position))
	}
	m.playback.SeekTo(position)
	return nil
}

// PlayFromMediaID plays a playable media id within its category.
func (m *Manager) PlayFromMediaID(mediaID string) error {
	zlog.Debug().Msgf("playback: play from media id: media_id=%s", mediaID)
	if err := m.checkEngine(); err != nil {
		return err
	}
	if err := m.checkPlayable(mediaID); err != nil {
		return err
	}
	if !m.queue.SetQueueFromMusic(mediaID) {
		return m.reject(errors.Wrapf(errdefs.ErrNotFound, "media id %q", mediaID))
	}
	return m.handlePlayRequest()
}

// PlayFromSearch plays the results of a search.
func (m *Manager) PlayFromSearch(query string, extras queue.SearchExtras) error {
	zlog.Debug().Msgf("playback: play from search: query=%s focus=%s", query, extras.Focus)
	if err := m.checkEngine(); err != nil {
		return err
	}
	if !m.queue.SetQueueFromSearch(query, extras) {
		return m.reject(errors.Wrapf(errdefs.ErrNotFound, "no results for %q", query))
	}
	return m.handlePlayRequest()
}

// SkipToQueueItem plays the queue item with queueID.
func (m *Manager) SkipToQueueItem(queueID int64) error {
	zlog.Debug().Msgf("playback: skip to queue item: queue_id=%d", queueID)
	if err := m.checkEngine(); err != nil {
		return err
	}
	items := m.queue.Queue()
	if i := queue.IndexOfQueueID(items, queueID); i >= 0 {
		if err := m.checkPlayable(items[i].MediaID); err != nil {
			return err
		}
	}
	if !m.queue.SetCurrentQueueItemByQueueID(queueID) {
		return m.reject(errors.Wrapf(errdefs.ErrNotFound, "queue item %d", queueID))
	}
	return m.handlePlayRequest()
}

// SetRating marks or unmarks the current track as favorite.
func (m *Manager) SetRating(favorite bool) error {
	musicID, err := m.currentMusicID()
	if err != nil {
		return m.reject(err)
	}
	m.catalog.SetFavorite(musicID, favorite)
	m.UpdatePlaybackState("")
	return nil
}

// ToggleFavorite flips the favorite mark of the current track.
func (m *Manager) ToggleFavorite() error {
	musicID, err := m.currentMusicID()
	if err != nil {
		return m.reject(err)
	}
	return m.SetRating(!m.catalog.IsFavorite(musicID))
}

// SwitchToPlayback hands the current media and position over to pb.
// Playback continues on pb when it was playing and resume is true.
func (m *Manager) SwitchToPlayback(pb Playback, resume bool) {
	if pb == nil {
		return
	}
	old := m.playback
	oldState := old.State()
	position := old.CurrentStreamPosition()
	mediaID := old.CurrentMediaID()
	old.Stop(false)

	pb.SetCallback(m)
	pb.SetCurrentStreamPosition(position)
	pb.SetCurrentMediaID(mediaID)
	pb.Start()
	m.playback = pb

	switch oldState {
	case StateBuffering, StatePaused:
		pb.Pause()
	case StatePlaying:
		current, ok := m.queue.CurrentMusic()
		switch {
		case resume && ok:
			if err := pb.Play(current); err != nil {
				m.handleEngineError(err)
			}
		case !resume:
			pb.Pause()
		default:
			pb.Stop(true)
		}
	case StateNone:
	default:
		zlog.Debug().Msgf("playback: switched engine in state %s", oldState)
	}
	m.UpdatePlaybackState("")
}

// UpdatePlaybackState publishes the current playback state. A non-empty
// errMsg publishes an error state.
func (m *Manager) UpdatePlaybackState(errMsg string) {
	state := m.playback.State()
	ps := PlaybackState{
		State:             state,
		Actions:           m.availableActions(),
		ActiveQueueItemID: -1,
		UpdatedAt:         m.now(),
	}
	if m.playback.IsConnected() {
		ps.Position = m.playback.CurrentStreamPosition()
	}
	if errMsg != "" {
		ps.State = StateError
		ps.ErrorMessage = errMsg
	}
	if current, ok := m.queue.CurrentMusic(); ok {
		ps.ActiveQueueItemID = current.QueueID
		if musicID, ok := mediaid.ExtractMusicID(current.MediaID); ok {
			ps.Favorite = m.catalog.IsFavorite(musicID)
		}
	}

	m.callback.OnPlaybackStateUpdated(ps)

	if ps.State == StatePlaying && m.lastState != StatePlaying {
		m.callback.OnPlaybackStart()
	}
	if ps.State == StatePlaying || ps.State == StatePaused {
		m.callback.OnNotificationRequired()
	}
	m.lastState = ps.State
}

// OnCompletion implements Callback. The queue advances and keeps playing.
func (m *Manager) OnCompletion() {
	if m.queue.SkipQueuePosition(1) {
		if err := m.handlePlayRequest(); err != nil {
			zlog.Warn().Err(err).Msg("playback: cannot continue after completion")
		}
		return
	}
	m.handleStopRequest("")
}

// OnPlaybackStatusChanged implements Callback.
func (m *Manager) OnPlaybackStatusChanged(state State) {
	m.UpdatePlaybackState("")
}

// OnError implements Callback.
func (m *Manager) OnError(err error) {
	m.handleEngineError(err)
}

// SetCurrentMediaID implements Callback.
func (m *Manager) SetCurrentMediaID(mediaID string) {
	zlog.Debug().Msgf("playback: engine switched media: media_id=%s", mediaID)
	m.queue.SetQueueFromMusic(mediaID)
}

// handlePlayRequest plays the current queue item. The queue is already
// committed at this point; a failure inside the engine is published as
// StateError and the new queue stays in place.
func (m *Manager) handlePlayRequest() error {
	current, ok := m.queue.CurrentMusic()
	if !ok {
		return m.reject(errors.Wrap(errdefs.ErrNotFound, "queue is empty"))
	}
	if err := m.playback.Play(current); err != nil {
		m.handleEngineError(err)
		return err
	}
	return nil
}

func (m *Manager) handlePauseRequest() {
	if m.playback.IsPlaying() {
		m.playback.Pause()
	}
}

func (m *Manager) handleStopRequest(errMsg string) {
	m.playback.Stop(true)
	m.callback.OnPlaybackStop()
	m.UpdatePlaybackState(errMsg)
}

func (m *Manager) handleEngineError(err error) {
	zlog.Error().Err(err).Msg("playback: engine error")
	m.UpdatePlaybackState(err.Error())
	m.callback.OnError(err)
}

func (m *Manager) skip(amount int) error {
	if err := m.checkEngine(); err != nil {
		return err
	}
	wasActive := m.playback.State().IsActive()
	if !m.queue.SkipQueuePosition(amount) {
		return m.reject(errors.Wrap(errdefs.ErrNotFound, "queue is empty"))
	}
	if wasActive {
		return m.handlePlayRequest()
	}
	// A paused engine stays paused at the start of the new item.
	if current, ok := m.queue.CurrentMusic(); ok && m.playback.State() == StatePaused {
		m.playback.SetCurrentMediaID(current.MediaID)
		m.playback.SetCurrentStreamPosition(0)
	}
	m.UpdatePlaybackState("")
	return nil
}

// checkEngine rejects a command before any queue mutation when the engine
// is not connected.
func (m *Manager) checkEngine() error {
	if m.playback.IsConnected() {
		return nil
	}
	return m.reject(errors.Wrap(errdefs.ErrEngineUnavailable, "playback engine is not connected"))
}

// checkPlayable rejects mediaID before any queue mutation when it has no
// track in the catalog.
func (m *Manager) checkPlayable(mediaID string) error {
	musicID, ok := mediaid.ExtractMusicID(mediaID)
	if !ok {
		return m.reject(errors.Wrapf(errdefs.ErrNotFound, "media id %q is not playable", mediaID))
	}
	if _, ok := m.catalog.Track(musicID); !ok {
		return m.reject(errors.Wrapf(errdefs.ErrNotFound, "music id %q", musicID))
	}
	return nil
}

func (m *Manager) reject(err error) error {
	zlog.Warn().Err(err).Msg("playback: command rejected")
	m.callback.OnError(err)
	return err
}

func (m *Manager) currentMusicID() (string, error) {
	current, ok := m.queue.CurrentMusic()
	if !ok {
		return "", errors.Wrap(errdefs.ErrNotFound, "no current track")
	}
	musicID, ok := mediaid.ExtractMusicID(current.MediaID)
	if !ok {
		return "", errors.Wrapf(errdefs.ErrInvalidArgument, "current media id %q is not playable", current.MediaID)
	}
	return musicID, nil
}

func (m *Manager) availableActions() Action {
	actions := ActionPlayFromMediaID | ActionPlayFromSearch | ActionStop
	if m.playback.IsPlaying() {
		actions |= ActionPause
	} else {
		actions |= ActionPlay
	}
	if m.queue.CurrentQueueSize() > 0 {
		actions |= ActionSkipToNext | ActionSkipToPrevious | ActionSkipToQueueItem | ActionSeekTo | ActionSetRating
	}
	return actions
}
