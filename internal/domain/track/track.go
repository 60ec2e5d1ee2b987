// Package track provides the Track and QueueItem domain entities.
package track

import (
	"fmt"
	"time"
)

// Track represents a catalog entry. Tracks are immutable once loaded;
// favorites and artwork are tracked by the catalog.
type Track struct {
	ID          string        // Catalog-unique track id
	Title       string        // Track title
	Album       string        // Album name
	Artist      string        // Artist name(s)
	Genre       string        // Genre, usable as a browse category
	Source      string        // Source URI (file path or URL)
	IconURL     string        // Album art URI
	TrackNumber int           // Position on the album (1-based, 0 if unknown)
	TotalTracks int           // Tracks on the album (0 if unknown)
	Duration    time.Duration // Track duration (0 if unknown)
}

// DisplayNumber returns "n/total" for tracks that know their album position.
func (t *Track) DisplayNumber() string {
	switch {
	case t.TrackNumber <= 0:
		return ""
	case t.TotalTracks <= 0:
		return fmt.Sprintf("%d", t.TrackNumber)
	default:
		return fmt.Sprintf("%d/%d", t.TrackNumber, t.TotalTracks)
	}
}

// QueueItem represents one entry of a play queue.
type QueueItem struct {
	QueueID     int64  // Stable position id within one queue instance
	MediaID     string // Hierarchy-aware media id of the track
	Title       string // Track title
	Subtitle    string // Artist
	Description string // Album
	IconURL     string // Album art URI
}

// NewQueueItem wraps a track as a queue entry.
func NewQueueItem(t Track, queueID int64, mediaID string) QueueItem {
	return QueueItem{
		QueueID:     queueID,
		MediaID:     mediaID,
		Title:       t.Title,
		Subtitle:    t.Artist,
		Description: t.Album,
		IconURL:     t.IconURL,
	}
}
