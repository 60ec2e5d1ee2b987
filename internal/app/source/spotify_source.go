package source

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/musicbox/internal/domain/track"
	"github.com/osa030/musicbox/internal/infra/lastfm"
)

// SpotifyClient defines the Spotify operations needed by the spotify source.
type SpotifyClient interface {
	GetPlaylistTracks(ctx context.Context, playlistURL string) ([]track.Track, error)
	CheckPlaylistExists(ctx context.Context, playlistURL string) error
}

// TagClient defines the Last.fm operations used for genre enrichment.
type TagClient interface {
	GetTopTags(ctx context.Context, trackName, artistName string, limit int) ([]lastfm.Tag, error)
	GetArtistTopTags(ctx context.Context, artistName string, limit int) ([]lastfm.Tag, error)
}

// SpotifySourceConfig represents the settings of a spotify source.
type SpotifySourceConfig struct {
	PlaylistURL  string `mapstructure:"playlist_url" validate:"required"`
	DefaultGenre string `mapstructure:"default_genre" default:"Spotify"`
}

// SpotifySource serves the tracks of a Spotify playlist. Spotify has no
// per-track genre, so genres come from Last.fm tags when a tag client is
// available and fall back to the configured default.
type SpotifySource struct {
	spotify SpotifyClient
	tags    TagClient
	config  SpotifySourceConfig
}

// NewSpotifySource creates a spotify source from config settings.
// tags may be nil.
func NewSpotifySource(spotify SpotifyClient, tags TagClient, settings map[string]any) (*SpotifySource, error) {
	if spotify == nil {
		return nil, errors.New("spotify source requires a spotify client")
	}
	var cfg SpotifySourceConfig
	if err := decodeSettings("spotify", settings, &cfg); err != nil {
		return nil, err
	}
	return &SpotifySource{spotify: spotify, tags: tags, config: cfg}, nil
}

// Validate checks that the playlist is reachable.
func (s *SpotifySource) Validate(ctx context.Context) error {
	return s.spotify.CheckPlaylistExists(ctx, s.config.PlaylistURL)
}

// Tracks fetches the playlist and assigns genres.
func (s *SpotifySource) Tracks(ctx context.Context) ([]track.Track, error) {
	tracks, err := s.spotify.GetPlaylistTracks(ctx, s.config.PlaylistURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get playlist tracks")
	}

	for i := range tracks {
		if tracks[i].Genre == "" {
			tracks[i].Genre = s.lookupGenre(ctx, tracks[i])
		}
	}
	return tracks, nil
}

// lookupGenre tries the track tags, then the tags of its first artist.
func (s *SpotifySource) lookupGenre(ctx context.Context, t track.Track) string {
	if s.tags == nil || t.Artist == "" {
		return s.config.DefaultGenre
	}
	artist := strings.TrimSpace(strings.Split(t.Artist, ",")[0])

	tags, err := s.tags.GetTopTags(ctx, t.Title, artist, 1)
	if err != nil || len(tags) == 0 {
		zlog.Debug().Msgf("spotify source: no track tags: track=%s artist=%s error=%v", t.Title, artist, err)
		tags, err = s.tags.GetArtistTopTags(ctx, artist, 1)
	}
	if err != nil || len(tags) == 0 {
		zlog.Debug().Msgf("spotify source: no artist tags: artist=%s error=%v", artist, err)
		return s.config.DefaultGenre
	}
	return tags[0].Name
}
