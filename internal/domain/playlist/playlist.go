// Package playlist provides the Playlist domain entity, a point-in-time view
// of a play queue.
package playlist

import "github.com/osa030/musicbox/internal/domain/track"

// Playlist is a snapshot of a play queue.
type Playlist struct {
	Title        string            // Human-readable queue title
	Items        []track.QueueItem // Ordered queue entries
	CurrentIndex int               // Index of the current item, -1 if empty
}

// Current returns the current item.
func (p *Playlist) Current() (track.QueueItem, bool) {
	if p.CurrentIndex < 0 || p.CurrentIndex >= len(p.Items) {
		return track.QueueItem{}, false
	}
	return p.Items[p.CurrentIndex], true
}

// Upcoming returns the items after the current one, wrapping around to the
// start of the queue, excluding the current item.
func (p *Playlist) Upcoming() []track.QueueItem {
	if _, ok := p.Current(); !ok {
		return []track.QueueItem{}
	}
	n := len(p.Items)
	result := make([]track.QueueItem, 0, n-1)
	for i := 1; i < n; i++ {
		result = append(result, p.Items[(p.CurrentIndex+i)%n])
	}
	return result
}
