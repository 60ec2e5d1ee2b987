// Package queue builds play queues from the catalog and holds the current
// queue state.
package queue

import (
	"fmt"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/osa030/musicbox/internal/domain/errdefs"
	"github.com/osa030/musicbox/internal/domain/mediaid"
	"github.com/osa030/musicbox/internal/domain/track"
)

// Catalog defines the catalog queries needed to build queues.
type Catalog interface {
	TracksByGenre(genre string) []track.Track
	SearchByTitle(query string) []track.Track
	SearchByAlbum(query string) []track.Track
	SearchByArtist(query string) []track.Track
	SearchByGenre(query string) []track.Track
	Track(id string) (track.Track, bool)
	Shuffled() []track.Track
}

// PlayingQueueForMediaID builds the queue for the category encoded in
// mediaID. The leaf music id, if any, is ignored. Queue item ids embed the
// category so that IsSameBrowsingCategory holds for every item.
//
// Supported categories:
//
//	__BY_GENRE__/<genre>
//	__BY_SEARCH__/<query>          free-text search
//	__BY_SEARCH__/<focus>/<value>  focused search
//	__RANDOM__                     every track, shuffled
func PlayingQueueForMediaID(mediaID string, c Catalog) ([]track.QueueItem, error) {
	h := mediaid.Parse(mediaID).Hierarchy
	if len(h) == 0 {
		return nil, errors.Wrapf(errdefs.ErrInvalidArgument, "cannot build a queue for media id %q", mediaID)
	}

	switch {
	case h[0] == mediaid.MusicsRandom && len(h) == 1:
		return RandomQueue(c)
	case h[0] == mediaid.MusicsByGenre && len(h) == 2:
		return convertToQueue(c.TracksByGenre(h[1]), h...)
	case h[0] == mediaid.MusicsBySearch && len(h) == 2:
		return convertToQueue(searchAll(h[1], c), h...)
	case h[0] == mediaid.MusicsBySearch && len(h) == 3:
		focus := ParseFocus(h[1])
		if focus == FocusNone {
			return nil, errors.Wrapf(errdefs.ErrNotFound, "unknown search focus %q", h[1])
		}
		return convertToQueue(searchFocused(focus, h[2], c), h...)
	case len(h) != 2, h[0] == mediaid.MusicsRandom:
		return nil, errors.Wrapf(errdefs.ErrInvalidArgument, "cannot build a queue for media id %q", mediaID)
	default:
		return nil, errors.Wrapf(errdefs.ErrNotFound, "unknown browse category %q", h[0])
	}
}

// PlayingQueueFromSearch builds a queue for a search request. A request with
// neither a query nor a focused value asks for anything and yields a random
// queue. A focused
// search that finds nothing falls back to the free-text search, which
// matches title, album and artist and contains each track at most once.
//
// Focused results are filed under __BY_SEARCH__/<focus>/<value> so that
// their media ids resolve to the same queue later.
func PlayingQueueFromSearch(query string, extras SearchExtras, c Catalog) ([]track.QueueItem, error) {
	key := extras.focusValue(query)
	if key == "" {
		return RandomQueue(c)
	}

	if extras.Focus != FocusNone {
		if tracks := searchFocused(extras.Focus, key, c); len(tracks) > 0 || query == "" {
			return convertToQueue(tracks, mediaid.MusicsBySearch, extras.Focus.String(), mediaid.CleanCategory(key))
		}
		zlog.Debug().Msgf("queue: focused search found nothing, falling back: focus=%s query=%s", extras.Focus, query)
	}

	return convertToQueue(searchAll(query, c), mediaid.MusicsBySearch, mediaid.CleanCategory(query))
}

// QueueFromMusic builds the queue a single playable media id belongs to.
// A leaf without category is expanded to the tracks of its genre.
func QueueFromMusic(mediaID string, c Catalog) ([]track.QueueItem, error) {
	id := mediaid.Parse(mediaID)
	if id.IsBrowseable() {
		return nil, errors.Wrapf(errdefs.ErrInvalidArgument, "media id %q is not playable", mediaID)
	}
	if len(id.Hierarchy) > 0 {
		return PlayingQueueForMediaID(mediaID, c)
	}

	t, ok := c.Track(id.MusicID)
	if !ok {
		return nil, errors.Wrapf(errdefs.ErrNotFound, "music id %q", id.MusicID)
	}
	return convertToQueue(c.TracksByGenre(t.Genre), mediaid.MusicsByGenre, t.Genre)
}

// RandomQueue builds a queue from every catalog track in random order.
func RandomQueue(c Catalog) ([]track.QueueItem, error) {
	return convertToQueue(c.Shuffled(), mediaid.MusicsRandom)
}

// IndexOfMediaID returns the index of the item with mediaID, or -1.
func IndexOfMediaID(queue []track.QueueItem, mediaID string) int {
	_, index, ok := lo.FindIndexOf(queue, func(item track.QueueItem) bool {
		return item.MediaID == mediaID
	})
	if !ok {
		return -1
	}
	return index
}

// IndexOfQueueID returns the index of the item with queueID, or -1.
func IndexOfQueueID(queue []track.QueueItem, queueID int64) int {
	_, index, ok := lo.FindIndexOf(queue, func(item track.QueueItem) bool {
		return item.QueueID == queueID
	})
	if !ok {
		return -1
	}
	return index
}

// IsIndexPlayable reports whether index is within the queue.
func IsIndexPlayable(index int, queue []track.QueueItem) bool {
	return index >= 0 && index < len(queue)
}

// Title returns a human-readable title for a queue built from mediaID.
func Title(mediaID string) string {
	h := mediaid.Hierarchy(mediaID)
	switch {
	case len(h) == 1 && h[0] == mediaid.MusicsRandom:
		return "Random music"
	case len(h) == 2 && h[0] == mediaid.MusicsByGenre:
		return fmt.Sprintf("Genre: %s", h[1])
	case len(h) >= 2 && h[0] == mediaid.MusicsBySearch:
		return fmt.Sprintf("Search: %s", h[len(h)-1])
	default:
		return "Music"
	}
}

// searchFocused searches the single catalog field selected by focus.
func searchFocused(focus Focus, value string, c Catalog) []track.Track {
	switch focus {
	case FocusArtist:
		return c.SearchByArtist(value)
	case FocusAlbum:
		return c.SearchByAlbum(value)
	case FocusGenre:
		return c.SearchByGenre(value)
	case FocusSong:
		return c.SearchByTitle(value)
	default:
		return nil
	}
}

// searchAll is the free-text search across title, album and artist.
func searchAll(query string, c Catalog) []track.Track {
	var tracks []track.Track
	tracks = append(tracks, c.SearchByTitle(query)...)
	tracks = append(tracks, c.SearchByAlbum(query)...)
	tracks = append(tracks, c.SearchByArtist(query)...)
	return lo.UniqBy(tracks, func(t track.Track) string { return t.ID })
}

// convertToQueue wraps tracks as queue items under the given category.
// Queue ids are the positions at creation time.
func convertToQueue(tracks []track.Track, hierarchy ...string) ([]track.QueueItem, error) {
	base, err := mediaid.New("", hierarchy...)
	if err != nil {
		return nil, err
	}
	return lo.Map(tracks, func(t track.Track, i int) track.QueueItem {
		id := mediaid.ID{MusicID: t.ID, Hierarchy: base.Hierarchy}
		return track.NewQueueItem(t, int64(i), id.String())
	}), nil
}
