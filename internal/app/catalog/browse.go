package catalog

import (
	"fmt"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/musicbox/internal/domain/mediaid"
	"github.com/osa030/musicbox/internal/domain/track"
)

// MediaItem is a node of the browse tree.
type MediaItem struct {
	MediaID   string
	Title     string
	Subtitle  string
	IconURL   string
	Browsable bool
	Playable  bool
}

// Children lists the browse tree nodes below mediaID:
//
//	__ROOT__               -> __BY_GENRE__
//	__BY_GENRE__           -> one browsable node per genre
//	__BY_GENRE__/<genre>   -> the playable tracks of that genre
//
// Playable ids, unknown ids and an uninitialized catalog yield no children.
func (c *Catalog) Children(mediaID string) []MediaItem {
	items := make([]MediaItem, 0)
	if !c.IsInitialized() {
		return items
	}

	id := mediaid.Parse(mediaID)
	if !id.IsBrowseable() {
		return items
	}

	switch {
	case mediaID == mediaid.Root:
		items = append(items, MediaItem{
			MediaID:   mediaid.MusicsByGenre,
			Title:     "Genres",
			Subtitle:  "Songs by genre",
			Browsable: true,
		})

	case mediaID == mediaid.MusicsByGenre:
		for _, genre := range c.Genres() {
			item, err := c.genreItem(genre)
			if err != nil {
				zlog.Warn().Msgf("catalog: skipping genre: genre=%s error=%v", genre, err)
				continue
			}
			items = append(items, item)
		}

	case len(id.Hierarchy) == 2 && id.Hierarchy[0] == mediaid.MusicsByGenre:
		genre := id.Hierarchy[1]
		for _, t := range c.TracksByGenre(genre) {
			item, err := trackItem(t, mediaid.MusicsByGenre, genre)
			if err != nil {
				zlog.Warn().Msgf("catalog: skipping track: id=%s error=%v", t.ID, err)
				continue
			}
			items = append(items, item)
		}

	default:
		zlog.Debug().Msgf("catalog: no children for media id: %s", mediaID)
	}

	return items
}

func (c *Catalog) genreItem(genre string) (MediaItem, error) {
	id, err := mediaid.Create("", mediaid.MusicsByGenre, genre)
	if err != nil {
		return MediaItem{}, err
	}
	return MediaItem{
		MediaID:   id,
		Title:     genre,
		Subtitle:  fmt.Sprintf("%s songs", genre),
		Browsable: true,
	}, nil
}

func trackItem(t track.Track, hierarchy ...string) (MediaItem, error) {
	id, err := mediaid.Create(t.ID, hierarchy...)
	if err != nil {
		return MediaItem{}, err
	}
	return MediaItem{
		MediaID:  id,
		Title:    t.Title,
		Subtitle: t.Artist,
		IconURL:  t.IconURL,
		Playable: true,
	}, nil
}
