package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/musicbox/internal/domain/track"
)

func items(ids ...string) []track.QueueItem {
	result := make([]track.QueueItem, len(ids))
	for i, id := range ids {
		result[i] = track.QueueItem{QueueID: int64(i), MediaID: id}
	}
	return result
}

func TestPlaylist_Current(t *testing.T) {
	tests := []struct {
		name         string
		items        []track.QueueItem
		currentIndex int
		wantOK       bool
		wantMediaID  string
	}{
		{name: "empty", items: []track.QueueItem{}, currentIndex: -1, wantOK: false},
		{name: "first", items: items("a|g", "b|g"), currentIndex: 0, wantOK: true, wantMediaID: "a|g"},
		{name: "last", items: items("a|g", "b|g"), currentIndex: 1, wantOK: true, wantMediaID: "b|g"},
		{name: "out of range", items: items("a|g"), currentIndex: 3, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Playlist{Items: tt.items, CurrentIndex: tt.currentIndex}

			item, ok := p.Current()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMediaID, item.MediaID)
		})
	}
}

func TestPlaylist_Upcoming(t *testing.T) {
	p := &Playlist{Items: items("a|g", "b|g", "c|g", "d|g"), CurrentIndex: 2}

	upcoming := p.Upcoming()
	ids := make([]string, len(upcoming))
	for i, item := range upcoming {
		ids[i] = item.MediaID
	}
	assert.Equal(t, []string{"d|g", "a|g", "b|g"}, ids)

	empty := &Playlist{Items: []track.QueueItem{}, CurrentIndex: -1}
	assert.Empty(t, empty.Upcoming())
}
