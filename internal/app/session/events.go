package session

import (
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/musicbox/internal/app/notification"
	"github.com/osa030/musicbox/internal/app/playback"
	"github.com/osa030/musicbox/internal/domain/errdefs"
	"github.com/osa030/musicbox/internal/domain/track"
)

// sessionEvents receives queue and playback events. Every method runs with
// the session lock held.
type sessionEvents struct {
	m *Manager
}

func (e *sessionEvents) OnMetadataChanged(t track.Track) {
	zlog.Info().Msgf("now playing: id=%s title=%s artist=%s", t.ID, t.Title, t.Artist)
	e.m.stateMgr.SetTrack(&t)
	e.m.enqueueLocked(&notification.Notification{Type: notification.TypeMetadataChanged, Track: &t})
}

func (e *sessionEvents) OnMetadataRetrieveError() {
	e.m.stateMgr.SetTrack(nil)
	e.m.enqueueLocked(&notification.Notification{
		Type:      notification.TypeMetadataError,
		ErrorCode: "not_found",
		Message:   e.m.config.GetMessage("not_found"),
	})
}

func (e *sessionEvents) OnCurrentQueueIndexUpdated(index int) {
	e.m.enqueueLocked(&notification.Notification{Type: notification.TypeQueueIndexUpdated, QueueIndex: index})
}

func (e *sessionEvents) OnQueueUpdated(title string, queue []track.QueueItem) {
	zlog.Debug().Msgf("queue updated: title=%s size=%d", title, len(queue))
	e.m.enqueueLocked(&notification.Notification{
		Type:       notification.TypeQueueUpdated,
		QueueTitle: title,
		Queue:      queue,
		QueueIndex: e.m.queue.CurrentIndex(),
	})
}

func (e *sessionEvents) OnPlaybackStart() {
	zlog.Info().Msgf("playback started: session_id=%s", e.m.stateMgr.GetSessionID())
}

func (e *sessionEvents) OnNotificationRequired() {
	zlog.Debug().Msg("playback notification refreshed")
}

func (e *sessionEvents) OnPlaybackStop() {
	zlog.Info().Msgf("playback stopped: session_id=%s", e.m.stateMgr.GetSessionID())
	e.m.enqueueLocked(&notification.Notification{Type: notification.TypePlaybackStopped})
}

func (e *sessionEvents) OnPlaybackStateUpdated(ps playback.PlaybackState) {
	e.m.stateMgr.SetPlaybackState(ps)
	e.m.enqueueLocked(&notification.Notification{Type: notification.TypeStateChanged, State: &ps})
}

func (e *sessionEvents) OnError(err error) {
	code := errdefs.Code(err)
	e.m.enqueueLocked(&notification.Notification{
		Type:      notification.TypeError,
		ErrorCode: code,
		Message:   e.m.config.GetMessage(code),
	})
}
