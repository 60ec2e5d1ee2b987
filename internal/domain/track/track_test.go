package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrack_DisplayNumber(t *testing.T) {
	tests := []struct {
		name        string
		trackNumber int
		totalTracks int
		expected    string
	}{
		{
			name:        "number and total",
			trackNumber: 2,
			totalTracks: 3,
			expected:    "2/3",
		},
		{
			name:        "number only",
			trackNumber: 4,
			totalTracks: 0,
			expected:    "4",
		},
		{
			name:        "unknown",
			trackNumber: 0,
			totalTracks: 12,
			expected:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track := &Track{
				ID:          "test-id",
				TrackNumber: tt.trackNumber,
				TotalTracks: tt.totalTracks,
			}

			assert.Equal(t, tt.expected, track.DisplayNumber())
		})
	}
}

func TestNewQueueItem(t *testing.T) {
	tr := Track{
		ID:       "music-1",
		Title:    "Music 1",
		Album:    "Album 1",
		Artist:   "Smith Singer",
		Genre:    "Genre 1",
		IconURL:  "https://examplemusic.com/album_art.jpg",
		Duration: 3200 * time.Millisecond,
	}

	item := NewQueueItem(tr, 7, "music-1|__BY_GENRE__/Genre 1")

	assert.Equal(t, int64(7), item.QueueID)
	assert.Equal(t, "music-1|__BY_GENRE__/Genre 1", item.MediaID)
	assert.Equal(t, "Music 1", item.Title)
	assert.Equal(t, "Smith Singer", item.Subtitle)
	assert.Equal(t, "Album 1", item.Description)
	assert.Equal(t, tr.IconURL, item.IconURL)
}
