// Package transportv1 defines the messages and Connect bindings of the
// musicbox.v1.TransportService.
package transportv1

import "time"

// CommandRequest is the request of the parameterless transport commands.
type CommandRequest struct{}

// CommandResponse is the result of every transport command.
type CommandResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SeekToRequest struct {
	PositionMs int64 `json:"position_ms"`
}

type PlayFromMediaIDRequest struct {
	MediaID string `json:"media_id"`
}

// PlayFromSearchRequest carries a free-text query and optional structured
// search extras. Focus is one of "", "artist", "album", "genre" or "song".
type PlayFromSearchRequest struct {
	Query  string `json:"query"`
	Focus  string `json:"focus,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Genre  string `json:"genre,omitempty"`
	Song   string `json:"song,omitempty"`
}

type SkipToQueueItemRequest struct {
	QueueID int64 `json:"queue_id"`
}

type SetRatingRequest struct {
	Favorite bool `json:"favorite"`
}

type GetStatusRequest struct{}

type GetStatusResponse struct {
	SessionID    string         `json:"session_id"`
	Phase        string         `json:"phase"`
	CatalogState string         `json:"catalog_state"`
	Playback     *PlaybackState `json:"playback"`
	Track        *TrackInfo     `json:"track,omitempty"`
	QueueTitle   string         `json:"queue_title"`
	QueueIndex   int32          `json:"queue_index"`
	QueueSize    int32          `json:"queue_size"`
	StartedAt    time.Time      `json:"started_at"`
}

type PlaybackState struct {
	State             string    `json:"state"`
	PositionMs        int64     `json:"position_ms"`
	Actions           []string  `json:"actions"`
	ActiveQueueItemID int64     `json:"active_queue_item_id"`
	ErrorMessage      string    `json:"error_message,omitempty"`
	Favorite          bool      `json:"favorite"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type TrackInfo struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Album         string `json:"album"`
	Artist        string `json:"artist"`
	Genre         string `json:"genre"`
	Source        string `json:"source"`
	IconURL       string `json:"icon_url,omitempty"`
	TrackNumber   int32  `json:"track_number"`
	TotalTracks   int32  `json:"total_tracks"`
	DisplayNumber string `json:"display_number,omitempty"` // "n/total", empty when unknown
	DurationMs    int64  `json:"duration_ms"`
}

type QueueItem struct {
	QueueID     int64  `json:"queue_id"`
	MediaID     string `json:"media_id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url,omitempty"`
}

type GetQueueRequest struct{}

type GetQueueResponse struct {
	Title        string       `json:"title"`
	Items        []*QueueItem `json:"items"`
	CurrentIndex int32        `json:"current_index"`
	Upcoming     []*QueueItem `json:"upcoming"` // Items after the current one, wrapping around
}

type BrowseRequest struct {
	MediaID string `json:"media_id"`
}

type MediaItem struct {
	MediaID   string `json:"media_id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	IconURL   string `json:"icon_url,omitempty"`
	Browsable bool   `json:"browsable"`
	Playable  bool   `json:"playable"`
}

type BrowseResponse struct {
	Items []*MediaItem `json:"items"`
}

type GetArtRequest struct {
	MusicID string `json:"music_id"`
}

// GetArtResponse carries the stored artwork of a track. Byte fields are
// base64 encoded on the wire.
type GetArtResponse struct {
	Art  []byte `json:"art,omitempty"`
	Icon []byte `json:"icon,omitempty"`
}

type SubscribeRequest struct{}

// Notification is a session event. Only the fields relevant to Type are set.
type Notification struct {
	SequenceNo uint64         `json:"sequence_no"`
	Type       string         `json:"type"`
	Timestamp  time.Time      `json:"timestamp"`
	State      *PlaybackState `json:"state,omitempty"`
	Track      *TrackInfo     `json:"track,omitempty"`
	QueueTitle string         `json:"queue_title,omitempty"`
	Queue      []*QueueItem   `json:"queue,omitempty"`
	QueueIndex int32          `json:"queue_index"`
	ErrorCode  string         `json:"error_code,omitempty"`
	Message    string         `json:"message,omitempty"`
}
