// Package catalog provides the in-memory music catalog used to resolve
// browse paths, searches and queue items into tracks.
package catalog

import (
	"context"
	"math/rand"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/osa030/musicbox/internal/domain/mediaid"
	"github.com/osa030/musicbox/internal/domain/track"
)

// UnknownGenre is assigned to tracks loaded without a genre.
const UnknownGenre = "Unknown"

// Source provides the tracks a catalog is built from.
type Source interface {
	Tracks(ctx context.Context) ([]track.Track, error)
}

// Artwork holds image data for a track.
type Artwork struct {
	Art  []byte // Full size album art
	Icon []byte // Small icon
}

// ArtworkSource is implemented by sources that carry embedded artwork.
// It is consulted after Tracks succeeds.
type ArtworkSource interface {
	Artwork() map[string]Artwork
}

// Catalog is a thread-safe in-memory music catalog.
type Catalog struct {
	mu sync.RWMutex

	source Source
	state  State

	tracks    map[string]track.Track
	order     []string            // Track ids in load order
	byGenre   map[string][]string // Genre -> track ids in load order
	favorites map[string]bool
	artwork   map[string]Artwork
}

// New creates an empty catalog backed by source. Call Load before use.
func New(source Source) *Catalog {
	return &Catalog{
		source:    source,
		state:     StateNonInitialized,
		tracks:    make(map[string]track.Track),
		order:     make([]string, 0),
		byGenre:   make(map[string][]string),
		favorites: make(map[string]bool),
		artwork:   make(map[string]Artwork),
	}
}

// Load fetches tracks from the source and builds the indices.
// Loading an already initialized catalog is a no-op.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateNonInitialized {
		c.mu.Unlock()
		return nil
	}
	c.state = StateInitializing
	c.mu.Unlock()

	tracks, err := c.source.Tracks(ctx)
	if err != nil {
		c.mu.Lock()
		c.state = StateNonInitialized
		c.mu.Unlock()
		return errors.Wrap(err, "failed to load catalog")
	}

	var artwork map[string]Artwork
	if as, ok := c.source.(ArtworkSource); ok {
		artwork = as.Artwork()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.buildIndicesLocked(tracks)
	for id, art := range artwork {
		if _, ok := c.tracks[id]; ok {
			c.artwork[id] = art
		}
	}
	c.state = StateInitialized

	zlog.Info().Msgf("catalog: loaded tracks=%d genres=%d artwork=%d", len(c.order), len(c.byGenre), len(c.artwork))
	return nil
}

func (c *Catalog) buildIndicesLocked(tracks []track.Track) {
	valid := lo.Filter(tracks, func(t track.Track, _ int) bool {
		if t.ID == "" {
			zlog.Warn().Msgf("catalog: skipping track without id: title=%s", t.Title)
			return false
		}
		return true
	})
	valid = lo.UniqBy(valid, func(t track.Track) string { return t.ID })

	c.tracks = make(map[string]track.Track, len(valid))
	c.order = make([]string, 0, len(valid))
	c.byGenre = make(map[string][]string)

	for _, t := range valid {
		t.Genre = strings.TrimSpace(mediaid.CleanCategory(t.Genre))
		if t.Genre == "" {
			t.Genre = UnknownGenre
		}
		c.tracks[t.ID] = t
		c.order = append(c.order, t.ID)
		c.byGenre[t.Genre] = append(c.byGenre[t.Genre], t.ID)
	}
}

// State returns the lifecycle state of the catalog.
func (c *Catalog) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsInitialized reports whether the catalog has finished loading.
func (c *Catalog) IsInitialized() bool {
	return c.State() == StateInitialized
}

// Genres returns all genres in sorted order.
func (c *Catalog) Genres() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.state != StateInitialized {
		return []string{}
	}
	genres := lo.Keys(c.byGenre)
	slices.Sort(genres)
	return genres
}

// TracksByGenre returns the tracks of genre in load order.
func (c *Catalog) TracksByGenre(genre string) []track.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.state != StateInitialized {
		return []track.Track{}
	}
	return c.lookupLocked(c.byGenre[genre])
}

// SearchByTitle returns tracks whose title contains query, ignoring case.
func (c *Catalog) SearchByTitle(query string) []track.Track {
	return c.search(query, func(t track.Track) string { return t.Title })
}

// SearchByAlbum returns tracks whose album contains query, ignoring case.
func (c *Catalog) SearchByAlbum(query string) []track.Track {
	return c.search(query, func(t track.Track) string { return t.Album })
}

// SearchByArtist returns tracks whose artist contains query, ignoring case.
func (c *Catalog) SearchByArtist(query string) []track.Track {
	return c.search(query, func(t track.Track) string { return t.Artist })
}

// SearchByGenre returns tracks whose genre contains query, ignoring case.
func (c *Catalog) SearchByGenre(query string) []track.Track {
	return c.search(query, func(t track.Track) string { return t.Genre })
}

func (c *Catalog) search(query string, field func(track.Track) string) []track.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.state != StateInitialized {
		return []track.Track{}
	}
	q := strings.ToLower(query)
	return lo.Filter(c.lookupLocked(c.order), func(t track.Track, _ int) bool {
		v := strings.ToLower(field(t))
		// Queries rebuilt from a media id carry the cleaned form of the value.
		return strings.Contains(v, q) || strings.Contains(mediaid.CleanCategory(v), q)
	})
}

// Track returns the track with the given id.
func (c *Catalog) Track(id string) (track.Track, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.state != StateInitialized {
		return track.Track{}, false
	}
	t, ok := c.tracks[id]
	return t, ok
}

// Shuffled returns every track in random order.
func (c *Catalog) Shuffled() []track.Track {
	c.mu.RLock()
	tracks := c.lookupLocked(c.order)
	initialized := c.state == StateInitialized
	c.mu.RUnlock()

	if !initialized {
		return []track.Track{}
	}
	rand.Shuffle(len(tracks), func(i, j int) {
		tracks[i], tracks[j] = tracks[j], tracks[i]
	})
	return tracks
}

// IsFavorite reports whether the track is marked as favorite.
func (c *Catalog) IsFavorite(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.favorites[id]
}

// SetFavorite marks or unmarks the track as favorite.
func (c *Catalog) SetFavorite(id string, favorite bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if favorite {
		c.favorites[id] = true
	} else {
		delete(c.favorites, id)
	}
}

// UpdateArt stores artwork for a known track. It returns false if the track
// is not in the catalog.
func (c *Catalog) UpdateArt(id string, art, icon []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tracks[id]; !ok {
		return false
	}
	c.artwork[id] = Artwork{Art: art, Icon: icon}
	return true
}

// Art returns the artwork stored for a track.
func (c *Catalog) Art(id string) (Artwork, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.artwork[id]
	return a, ok
}

func (c *Catalog) lookupLocked(ids []string) []track.Track {
	result := make([]track.Track, 0, len(ids))
	for _, id := range ids {
		result = append(result, c.tracks[id])
	}
	return result
}
