package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/musicbox/internal/app/catalog"
	"github.com/osa030/musicbox/internal/domain/track"
	"github.com/osa030/musicbox/internal/infra/config"
	"github.com/osa030/musicbox/internal/infra/lastfm"
)

const catalogJSON = `{
  "music": [
    {
      "title": "Jazz in Paris",
      "album": "Jazz & Blues",
      "artist": "Media Right Productions",
      "genre": "Jazz & Blues",
      "source": "https://storage.googleapis.com/uamp/The_Kyoto_Connection_-_Wake_Up/01_-_Intro_-_The_Way_Of_Waking_Up_feat_Alan_Watts.mp3",
      "image": "art/jazz.jpg",
      "trackNumber": 1,
      "totalTrackCount": 6,
      "duration": 103
    },
    {
      "title": "The Coldest Shoulder",
      "album": "Wake Up",
      "artist": "The Kyoto Connection",
      "genre": "Electronic",
      "source": "music/coldest.mp3",
      "image": "https://example.com/wake_up.jpg",
      "trackNumber": 2,
      "totalTrackCount": 13,
      "duration": 160
    },
    {
      "title": "No source"
    }
  ]
}`

func TestNewStaticFromSettings(t *testing.T) {
	settings := map[string]any{
		"tracks": []any{
			map[string]any{"id": "a", "title": "Music 1", "genre": "Genre 1", "duration": 90, "track_number": 1},
			map[string]any{"id": "b", "title": "Music 2", "genre": "Genre 2"},
		},
	}

	src, err := NewStaticFromSettings(settings)
	require.NoError(t, err)

	tracks, err := src.Tracks(context.Background())
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "Music 1", tracks[0].Title)
	assert.Equal(t, 90*time.Second, tracks[0].Duration)
	assert.Equal(t, 1, tracks[0].TrackNumber)
}

func TestNewStaticFromSettings_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
	}{
		{name: "no tracks", settings: map[string]any{}},
		{name: "missing title", settings: map[string]any{"tracks": []any{map[string]any{"id": "a"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStaticFromSettings(tt.settings)
			assert.Error(t, err)
		})
	}
}

func TestJSONSource_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/uamp/catalog.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, catalogJSON)
	}))
	defer server.Close()

	src, err := NewJSONSource(map[string]any{"url": server.URL + "/uamp/catalog.json"})
	require.NoError(t, err)

	tracks, err := src.Tracks(context.Background())
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	assert.Equal(t, "Jazz in Paris", tracks[0].Title)
	assert.Equal(t, server.URL+"/uamp/art/jazz.jpg", tracks[0].IconURL)
	assert.Equal(t, 103*time.Second, tracks[0].Duration)
	assert.Equal(t, 6, tracks[0].TotalTracks)
	assert.Equal(t, server.URL+"/uamp/music/coldest.mp3", tracks[1].Source)
	assert.Equal(t, "https://example.com/wake_up.jpg", tracks[1].IconURL)

	// Ids are derived from the source and stable across loads
	again, err := src.Tracks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tracks[0].ID, again[0].ID)
	assert.NotEqual(t, tracks[0].ID, tracks[1].ID)
}

func TestJSONSource_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o644))

	src, err := NewJSONSource(map[string]any{"path": path})
	require.NoError(t, err)

	tracks, err := src.Tracks(context.Background())
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, filepath.Join(dir, "music", "coldest.mp3"), tracks[1].Source)
}

func TestJSONSource_Errors(t *testing.T) {
	_, err := NewJSONSource(map[string]any{})
	require.Error(t, err, "url or path is required")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	src, err := NewJSONSource(map[string]any{"url": server.URL + "/catalog.json"})
	require.NoError(t, err)
	_, err = src.Tracks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	src, err = NewJSONSource(map[string]any{"path": bad})
	require.NoError(t, err)
	_, err = src.Tracks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse catalog")
}

func TestDirSource(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Track One.mp3"), []byte("id3?"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cover.jpg"), []byte("jpeg"), 0o644))

	src, err := NewDirSource(map[string]any{"path": root})
	require.NoError(t, err)

	tracks, err := src.Tracks(context.Background())
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "Track One", tracks[0].Title)
	assert.Equal(t, "file://"+filepath.Join(root, "Track One.mp3"), tracks[0].Source)
	assert.NotEmpty(t, tracks[0].ID)
	assert.Empty(t, src.Artwork())

	_, err = NewDirSource(map[string]any{})
	assert.Error(t, err)
}

type fakeSpotify struct {
	tracks   []track.Track
	err      error
	checkErr error
}

func (f *fakeSpotify) GetPlaylistTracks(ctx context.Context, playlistURL string) ([]track.Track, error) {
	return f.tracks, f.err
}

func (f *fakeSpotify) CheckPlaylistExists(ctx context.Context, playlistURL string) error {
	return f.checkErr
}

type fakeTags struct {
	trackTags  map[string][]lastfm.Tag
	artistTags map[string][]lastfm.Tag
}

func (f *fakeTags) GetTopTags(ctx context.Context, trackName, artistName string, limit int) ([]lastfm.Tag, error) {
	if tags, ok := f.trackTags[trackName]; ok {
		return tags, nil
	}
	return nil, errors.New("Track not found")
}

func (f *fakeTags) GetArtistTopTags(ctx context.Context, artistName string, limit int) ([]lastfm.Tag, error) {
	return f.artistTags[artistName], nil
}

func TestSpotifySource_Genres(t *testing.T) {
	spotify := &fakeSpotify{tracks: []track.Track{
		{ID: "1", Title: "Song A", Artist: "Artist A, Featured"},
		{ID: "2", Title: "Song B", Artist: "Artist B"},
		{ID: "3", Title: "Song C", Artist: "Artist C"},
		{ID: "4", Title: "Song D", Artist: "Artist D", Genre: "Preset"},
	}}
	tags := &fakeTags{
		trackTags:  map[string][]lastfm.Tag{"Song A": {{Name: "shoegaze", Count: 100}}},
		artistTags: map[string][]lastfm.Tag{"Artist B": {{Name: "jazz", Count: 10}}},
	}

	src, err := NewSpotifySource(spotify, tags, map[string]any{"playlist_url": "spotify:playlist:abc"})
	require.NoError(t, err)

	tracks, err := src.Tracks(context.Background())
	require.NoError(t, err)
	require.Len(t, tracks, 4)
	assert.Equal(t, "shoegaze", tracks[0].Genre)
	assert.Equal(t, "jazz", tracks[1].Genre)
	assert.Equal(t, "Spotify", tracks[2].Genre)
	assert.Equal(t, "Preset", tracks[3].Genre)
}

func TestSpotifySource_WithoutTags(t *testing.T) {
	spotify := &fakeSpotify{tracks: []track.Track{{ID: "1", Title: "Song A", Artist: "Artist A"}}}

	src, err := NewSpotifySource(spotify, nil, map[string]any{
		"playlist_url":  "spotify:playlist:abc",
		"default_genre": "Playlist",
	})
	require.NoError(t, err)

	tracks, err := src.Tracks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Playlist", tracks[0].Genre)
}

func TestSpotifySource_Errors(t *testing.T) {
	_, err := NewSpotifySource(nil, nil, map[string]any{"playlist_url": "x"})
	assert.Error(t, err)

	_, err = NewSpotifySource(&fakeSpotify{}, nil, map[string]any{})
	assert.Error(t, err)

	src, err := NewSpotifySource(&fakeSpotify{err: errors.New("401 unauthorized")}, nil, map[string]any{"playlist_url": "x"})
	require.NoError(t, err)
	_, err = src.Tracks(context.Background())
	assert.Error(t, err)
}

type failingSource struct{}

func (failingSource) Tracks(ctx context.Context) ([]track.Track, error) {
	return nil, errors.New("unreachable")
}

type artSource struct {
	*StaticSource
	art map[string]catalog.Artwork
}

func (s artSource) Artwork() map[string]catalog.Artwork { return s.art }

func TestChain_Tracks(t *testing.T) {
	chain := NewChain([]SourceWithMetadata{
		{Source: failingSource{}, DisplayName: "broken"},
		{Source: NewStatic(track.Track{ID: "a", Title: "first"}, track.Track{ID: "b"}), DisplayName: "one"},
		{Source: NewStatic(track.Track{ID: "a", Title: "second"}, track.Track{ID: "c"}), DisplayName: "two"},
	})

	tracks, err := chain.Tracks(context.Background())
	require.NoError(t, err)
	require.Len(t, tracks, 3)
	assert.Equal(t, "first", tracks[0].Title)
}

func TestChain_AllFail(t *testing.T) {
	chain := NewChain([]SourceWithMetadata{
		{Source: failingSource{}, DisplayName: "broken 1"},
		{Source: failingSource{}, DisplayName: "broken 2"},
	})

	_, err := chain.Tracks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all catalog sources failed")
}

func TestChain_Artwork(t *testing.T) {
	chain := NewChain([]SourceWithMetadata{
		{Source: NewStatic(track.Track{ID: "a"}), DisplayName: "plain"},
		{Source: artSource{NewStatic(track.Track{ID: "b"}), map[string]catalog.Artwork{"b": {Art: []byte("b")}}}, DisplayName: "art 1"},
		{Source: artSource{NewStatic(), map[string]catalog.Artwork{"b": {Art: []byte("other")}, "c": {Art: []byte("c")}}}, DisplayName: "art 2"},
	})

	art := chain.Artwork()
	require.Len(t, art, 2)
	assert.Equal(t, []byte("b"), art["b"].Art)

	// The chain feeds artwork into the catalog on load
	c := catalog.New(chain)
	require.NoError(t, c.Load(context.Background()))
	got, ok := c.Art("b")
	require.True(t, ok)
	assert.Equal(t, []byte("b"), got.Art)
}

func TestNewChainFromConfig(t *testing.T) {
	cfg := &config.Config{Catalog: config.CatalogConfig{Sources: []config.SourceConfig{
		{
			Type:        config.SourceTypeStatic,
			DisplayName: "Built-in",
			Settings: map[string]any{"tracks": []any{
				map[string]any{"id": "a", "title": "Music 1", "genre": "Genre 1"},
			}},
		},
		{
			Type:        config.SourceTypeSpotify,
			DisplayName: "Playlist",
			Settings:    map[string]any{"playlist_url": "spotify:playlist:abc"},
		},
	}}}

	spotify := &fakeSpotify{tracks: []track.Track{{ID: "sp1", Title: "Song", Artist: "Someone"}}}
	chain, err := NewChainFromConfig(context.Background(), cfg, Dependencies{Spotify: spotify})
	require.NoError(t, err)

	tracks, err := chain.Tracks(context.Background())
	require.NoError(t, err)
	assert.Len(t, tracks, 2)
}

func TestNewChainFromConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		sources []config.SourceConfig
		deps    Dependencies
		errMsg  string
	}{
		{
			name:    "no sources",
			sources: nil,
			errMsg:  "no catalog sources configured",
		},
		{
			name:    "unsupported type",
			sources: []config.SourceConfig{{Type: "ftp", DisplayName: "x"}},
			errMsg:  "unsupported source type",
		},
		{
			name:    "spotify without client",
			sources: []config.SourceConfig{{Type: config.SourceTypeSpotify, DisplayName: "x", Settings: map[string]any{"playlist_url": "x"}}},
			errMsg:  "requires a spotify client",
		},
		{
			name:    "missing playlist",
			sources: []config.SourceConfig{{Type: config.SourceTypeSpotify, DisplayName: "x", Settings: map[string]any{"playlist_url": "x"}}},
			deps:    Dependencies{Spotify: &fakeSpotify{checkErr: errors.New("404 not found")}},
			errMsg:  "404 not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Catalog: config.CatalogConfig{Sources: tt.sources}}
			_, err := NewChainFromConfig(context.Background(), cfg, tt.deps)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
