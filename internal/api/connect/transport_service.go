package connect

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/osa030/musicbox/internal/api/transportv1"
	"github.com/osa030/musicbox/internal/app/notification"
	"github.com/osa030/musicbox/internal/app/session"
	"github.com/osa030/musicbox/internal/domain/errdefs"
	"github.com/osa030/musicbox/internal/infra/config"
)

// TransportService implements the TransportService RPC.
type TransportService struct {
	session *session.Manager
	config  *config.Config
}

// NewTransportService creates a new TransportService.
func NewTransportService(session *session.Manager, cfg *config.Config) *TransportService {
	return &TransportService{
		session: session,
		config:  cfg,
	}
}

// Ensure TransportService implements the interface.
var _ transportv1.TransportServiceHandler = (*TransportService)(nil)

// Play starts or resumes playback.
func (s *TransportService) Play(
	ctx context.Context,
	req *connect.Request[transportv1.CommandRequest],
) (*connect.Response[transportv1.CommandResponse], error) {
	return s.result(s.session.Play()), nil
}

// Pause pauses playback.
func (s *TransportService) Pause(
	ctx context.Context,
	req *connect.Request[transportv1.CommandRequest],
) (*connect.Response[transportv1.CommandResponse], error) {
	return s.result(s.session.Pause()), nil
}

// Stop stops playback.
func (s *TransportService) Stop(
	ctx context.Context,
	req *connect.Request[transportv1.CommandRequest],
) (*connect.Response[transportv1.CommandResponse], error) {
	return s.result(s.session.StopPlayback()), nil
}

// SkipToNext plays the next queue item.
func (s *TransportService) SkipToNext(
	ctx context.Context,
	req *connect.Request[transportv1.CommandRequest],
) (*connect.Response[transportv1.CommandResponse], error) {
	return s.result(s.session.SkipToNext()), nil
}

// SkipToPrevious plays the previous queue item.
func (s *TransportService) SkipToPrevious(
	ctx context.Context,
	req *connect.Request[transportv1.CommandRequest],
) (*connect.Response[transportv1.CommandResponse], error) {
	return s.result(s.session.SkipToPrevious()), nil
}

// SeekTo moves the stream position.
func (s *TransportService) SeekTo(
	ctx context.Context,
	req *connect.Request[transportv1.SeekToRequest],
) (*connect.Response[transportv1.CommandResponse], error) {
	position := time.Duration(req.Msg.PositionMs) * time.Millisecond
	return s.result(s.session.SeekTo(position)), nil
}

// PlayFromMediaID plays a media id within its category.
func (s *TransportService) PlayFromMediaID(
	ctx context.Context,
	req *connect.Request[transportv1.PlayFromMediaIDRequest],
) (*connect.Response[transportv1.CommandResponse], error) {
	return s.result(s.session.PlayFromMediaID(req.Msg.MediaID)), nil
}

// PlayFromSearch plays the results of a search.
func (s *TransportService) PlayFromSearch(
	ctx context.Context,
	req *connect.Request[transportv1.PlayFromSearchRequest],
) (*connect.Response[transportv1.CommandResponse], error) {
	return s.result(s.session.PlayFromSearch(req.Msg.Query, toSearchExtras(req.Msg))), nil
}

// SkipToQueueItem plays a queue item.
func (s *TransportService) SkipToQueueItem(
	ctx context.Context,
	req *connect.Request[transportv1.SkipToQueueItemRequest],
) (*connect.Response[transportv1.CommandResponse], error) {
	return s.result(s.session.SkipToQueueItem(req.Msg.QueueID)), nil
}

// SetRating marks the current track as favorite or not.
func (s *TransportService) SetRating(
	ctx context.Context,
	req *connect.Request[transportv1.SetRatingRequest],
) (*connect.Response[transportv1.CommandResponse], error) {
	return s.result(s.session.SetRating(req.Msg.Favorite)), nil
}

// ToggleFavorite flips the favorite mark of the current track.
func (s *TransportService) ToggleFavorite(
	ctx context.Context,
	req *connect.Request[transportv1.CommandRequest],
) (*connect.Response[transportv1.CommandResponse], error) {
	return s.result(s.session.ToggleFavorite()), nil
}

// GetStatus returns the current session status.
func (s *TransportService) GetStatus(
	ctx context.Context,
	req *connect.Request[transportv1.GetStatusRequest],
) (*connect.Response[transportv1.GetStatusResponse], error) {
	status := s.session.GetStatus()

	return connect.NewResponse(&transportv1.GetStatusResponse{
		SessionID:    status.SessionID,
		Phase:        status.Phase.String(),
		CatalogState: status.CatalogState.String(),
		Playback:     toPlaybackState(&status.Playback),
		Track:        toTrackInfo(status.Track),
		QueueTitle:   status.QueueTitle,
		QueueIndex:   int32(status.QueueIndex),
		QueueSize:    int32(status.QueueSize),
		StartedAt:    status.StartedAt,
	}), nil
}

// GetQueue returns the current queue.
func (s *TransportService) GetQueue(
	ctx context.Context,
	req *connect.Request[transportv1.GetQueueRequest],
) (*connect.Response[transportv1.GetQueueResponse], error) {
	q := s.session.Queue()

	return connect.NewResponse(&transportv1.GetQueueResponse{
		Title:        q.Title,
		Items:        toQueueItems(q.Items),
		CurrentIndex: int32(q.CurrentIndex),
		Upcoming:     toQueueItems(q.Upcoming()),
	}), nil
}

// Browse lists the children of a media id.
func (s *TransportService) Browse(
	ctx context.Context,
	req *connect.Request[transportv1.BrowseRequest],
) (*connect.Response[transportv1.BrowseResponse], error) {
	return connect.NewResponse(&transportv1.BrowseResponse{
		Items: toMediaItems(s.session.Browse(req.Msg.MediaID)),
	}), nil
}

// GetArt returns the stored artwork of a track. Unknown tracks and tracks
// without artwork are reported as CodeNotFound.
func (s *TransportService) GetArt(
	ctx context.Context,
	req *connect.Request[transportv1.GetArtRequest],
) (*connect.Response[transportv1.GetArtResponse], error) {
	art, err := s.session.Art(req.Msg.MusicID)
	if err != nil {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewResponse(&transportv1.GetArtResponse{
		Art:  art.Art,
		Icon: art.Icon,
	}), nil
}

// Subscribe streams session notifications. The current state is sent first.
func (s *TransportService) Subscribe(
	ctx context.Context,
	req *connect.Request[transportv1.SubscribeRequest],
	stream *connect.ServerStream[transportv1.Notification],
) error {
	adapter := &notificationStreamAdapter{stream: stream}
	subscriptionID, err := s.session.Subscribe(adapter)
	if err != nil {
		return connect.NewError(connect.CodeUnavailable, err)
	}

	// Wait for context cancellation or session end
	select {
	case <-ctx.Done():
	case <-s.session.Done():
	}

	// Unsubscribe when done
	s.session.Unsubscribe(subscriptionID)

	return nil
}

func (s *TransportService) result(err error) *connect.Response[transportv1.CommandResponse] {
	code := errdefs.Code(err)
	return connect.NewResponse(&transportv1.CommandResponse{
		Success: err == nil,
		Code:    code,
		Message: s.config.GetMessage(code),
	})
}

// notificationStreamAdapter adapts connect.ServerStream to notification.Stream.
type notificationStreamAdapter struct {
	stream *connect.ServerStream[transportv1.Notification]
}

func (a *notificationStreamAdapter) Send(n *notification.Notification) error {
	return a.stream.Send(toNotification(n))
}
