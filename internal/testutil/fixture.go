package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osa030/musicbox/internal/app/catalog"
	"github.com/osa030/musicbox/internal/domain/track"
)

// FixtureTracks returns the five-track catalog used across tests.
// Genre 1 holds music1..music3, Genre 2 holds music4 and music5.
func FixtureTracks() []track.Track {
	return []track.Track{
		{ID: "music1", Title: "Music 1", Album: "Album 1", Artist: "Smith Singer", Genre: "Genre 1",
			Source: "https://examplemusic.com/music1.mp3", TrackNumber: 1, TotalTracks: 3, Duration: 3200 * time.Millisecond},
		{ID: "music2", Title: "Music 2", Album: "Album 1", Artist: "Joe Singer", Genre: "Genre 1",
			Source: "https://examplemusic.com/music2.mp3", TrackNumber: 2, TotalTracks: 3, Duration: 3300 * time.Millisecond},
		{ID: "music3", Title: "Music 3", Album: "Album 1", Artist: "John Singer", Genre: "Genre 1",
			Source: "https://examplemusic.com/music3.mp3", TrackNumber: 3, TotalTracks: 3, Duration: 3400 * time.Millisecond},
		{ID: "music4", Title: "Romantic Song 1", Album: "Album 2", Artist: "Joe Singer", Genre: "Genre 2",
			Source: "https://examplemusic.com/music4.mp3", TrackNumber: 1, TotalTracks: 2, Duration: 4200 * time.Millisecond},
		{ID: "music5", Title: "Romantic Song 2", Album: "Album 2", Artist: "Joe Singer", Genre: "Genre 2",
			Source: "https://examplemusic.com/music5.mp3", TrackNumber: 2, TotalTracks: 2, Duration: 4200 * time.Millisecond},
	}
}

type fixtureSource []track.Track

func (s fixtureSource) Tracks(ctx context.Context) ([]track.Track, error) {
	return s, nil
}

// LoadedCatalog returns an initialized catalog holding tracks, or the
// fixture tracks when none are given.
func LoadedCatalog(t *testing.T, tracks ...track.Track) *catalog.Catalog {
	t.Helper()
	if len(tracks) == 0 {
		tracks = FixtureTracks()
	}
	c := catalog.New(fixtureSource(tracks))
	require.NoError(t, c.Load(context.Background()))
	return c
}
