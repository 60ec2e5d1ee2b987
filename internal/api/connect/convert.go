package connect

import (
	"github.com/osa030/musicbox/internal/api/transportv1"
	"github.com/osa030/musicbox/internal/app/catalog"
	"github.com/osa030/musicbox/internal/app/notification"
	"github.com/osa030/musicbox/internal/app/playback"
	"github.com/osa030/musicbox/internal/app/queue"
	"github.com/osa030/musicbox/internal/domain/track"
)

func toPlaybackState(ps *playback.PlaybackState) *transportv1.PlaybackState {
	if ps == nil {
		return nil
	}
	return &transportv1.PlaybackState{
		State:             ps.State.String(),
		PositionMs:        ps.Position.Milliseconds(),
		Actions:           ps.Actions.Names(),
		ActiveQueueItemID: ps.ActiveQueueItemID,
		ErrorMessage:      ps.ErrorMessage,
		Favorite:          ps.Favorite,
		UpdatedAt:         ps.UpdatedAt,
	}
}

func toTrackInfo(t *track.Track) *transportv1.TrackInfo {
	if t == nil {
		return nil
	}
	return &transportv1.TrackInfo{
		ID:            t.ID,
		Title:         t.Title,
		Album:         t.Album,
		Artist:        t.Artist,
		Genre:         t.Genre,
		Source:        t.Source,
		IconURL:       t.IconURL,
		TrackNumber:   int32(t.TrackNumber),
		TotalTracks:   int32(t.TotalTracks),
		DisplayNumber: t.DisplayNumber(),
		DurationMs:    t.Duration.Milliseconds(),
	}
}

func toQueueItems(items []track.QueueItem) []*transportv1.QueueItem {
	result := make([]*transportv1.QueueItem, len(items))
	for i, item := range items {
		result[i] = &transportv1.QueueItem{
			QueueID:     item.QueueID,
			MediaID:     item.MediaID,
			Title:       item.Title,
			Subtitle:    item.Subtitle,
			Description: item.Description,
			IconURL:     item.IconURL,
		}
	}
	return result
}

func toMediaItems(items []catalog.MediaItem) []*transportv1.MediaItem {
	result := make([]*transportv1.MediaItem, len(items))
	for i, item := range items {
		result[i] = &transportv1.MediaItem{
			MediaID:   item.MediaID,
			Title:     item.Title,
			Subtitle:  item.Subtitle,
			IconURL:   item.IconURL,
			Browsable: item.Browsable,
			Playable:  item.Playable,
		}
	}
	return result
}

func toNotification(n *notification.Notification) *transportv1.Notification {
	result := &transportv1.Notification{
		SequenceNo: n.SequenceNo,
		Type:       n.Type.String(),
		Timestamp:  n.Timestamp,
		State:      toPlaybackState(n.State),
		Track:      toTrackInfo(n.Track),
		QueueTitle: n.QueueTitle,
		QueueIndex: int32(n.QueueIndex),
		ErrorCode:  n.ErrorCode,
		Message:    n.Message,
	}
	if n.Type == notification.TypeQueueUpdated {
		result.Queue = toQueueItems(n.Queue)
	}
	return result
}

func toSearchExtras(req *transportv1.PlayFromSearchRequest) queue.SearchExtras {
	return queue.SearchExtras{
		Focus:  queue.ParseFocus(req.Focus),
		Artist: req.Artist,
		Album:  req.Album,
		Genre:  req.Genre,
		Song:   req.Song,
	}
}
