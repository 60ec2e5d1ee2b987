// Package source provides the catalog sources: where tracks come from before
// they are indexed by the catalog.
package source

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/musicbox/internal/domain/track"
)

// decodeSettings decodes a raw settings map into out, applies defaults and
// validates the result.
func decodeSettings(name string, settings map[string]any, out any) error {
	if err := mapstructure.Decode(settings, out); err != nil {
		return errors.Wrapf(err, "failed to decode %s settings", name)
	}
	if err := defaults.Set(out); err != nil {
		return errors.Wrapf(err, "failed to set %s defaults", name)
	}
	zlog.Debug().Msgf("%s source config: %+v", name, out)
	if err := validator.New().Struct(out); err != nil {
		return errors.Wrapf(err, "%s settings validation failed", name)
	}
	return nil
}

// StaticTrackConfig describes one track of a static source.
type StaticTrackConfig struct {
	ID          string `mapstructure:"id" validate:"required"`
	Title       string `mapstructure:"title" validate:"required"`
	Album       string `mapstructure:"album"`
	Artist      string `mapstructure:"artist"`
	Genre       string `mapstructure:"genre"`
	Source      string `mapstructure:"source"`
	Image       string `mapstructure:"image"`
	TrackNumber int    `mapstructure:"track_number" validate:"gte=0"`
	TotalTracks int    `mapstructure:"total_track_count" validate:"gte=0"`
	DurationSec int    `mapstructure:"duration" validate:"gte=0"`
}

// StaticSourceConfig represents the settings of a static source.
type StaticSourceConfig struct {
	Tracks []StaticTrackConfig `mapstructure:"tracks" validate:"required,min=1,dive"`
}

// StaticSource serves a fixed list of tracks.
type StaticSource struct {
	tracks []track.Track
}

// NewStatic creates a source serving the given tracks.
func NewStatic(tracks ...track.Track) *StaticSource {
	return &StaticSource{tracks: tracks}
}

// NewStaticFromSettings creates a static source from config settings.
func NewStaticFromSettings(settings map[string]any) (*StaticSource, error) {
	var cfg StaticSourceConfig
	if err := decodeSettings("static", settings, &cfg); err != nil {
		return nil, err
	}

	tracks := make([]track.Track, len(cfg.Tracks))
	for i, t := range cfg.Tracks {
		tracks[i] = track.Track{
			ID:          t.ID,
			Title:       t.Title,
			Album:       t.Album,
			Artist:      t.Artist,
			Genre:       t.Genre,
			Source:      t.Source,
			IconURL:     t.Image,
			TrackNumber: t.TrackNumber,
			TotalTracks: t.TotalTracks,
			Duration:    time.Duration(t.DurationSec) * time.Second,
		}
	}
	return NewStatic(tracks...), nil
}

// Tracks returns a copy of the configured tracks.
func (s *StaticSource) Tracks(ctx context.Context) ([]track.Track, error) {
	result := make([]track.Track, len(s.tracks))
	copy(result, s.tracks)
	return result, nil
}
