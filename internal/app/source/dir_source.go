package source

import (
	"context"
	"sync"

	"github.com/osa030/musicbox/internal/app/catalog"
	"github.com/osa030/musicbox/internal/domain/track"
	"github.com/osa030/musicbox/internal/infra/tagfs"
)

// DirSourceConfig represents the settings of a local directory source.
type DirSourceConfig struct {
	Path       string   `mapstructure:"path" validate:"required"`
	Extensions []string `mapstructure:"extensions"`
}

// DirSource builds tracks from the audio files of a directory tree.
// Embedded cover art is exposed through Artwork after a successful load.
type DirSource struct {
	config  DirSourceConfig
	scanner *tagfs.Scanner

	mu      sync.Mutex
	artwork map[string]catalog.Artwork
}

// NewDirSource creates a directory source from config settings.
func NewDirSource(settings map[string]any) (*DirSource, error) {
	var cfg DirSourceConfig
	if err := decodeSettings("dir", settings, &cfg); err != nil {
		return nil, err
	}
	return &DirSource{
		config:  cfg,
		scanner: tagfs.NewScanner(cfg.Extensions),
		artwork: make(map[string]catalog.Artwork),
	}, nil
}

// Tracks scans the directory.
func (s *DirSource) Tracks(ctx context.Context) ([]track.Track, error) {
	files, err := s.scanner.Scan(ctx, s.config.Path)
	if err != nil {
		return nil, err
	}

	artwork := make(map[string]catalog.Artwork)
	tracks := make([]track.Track, 0, len(files))
	for _, f := range files {
		uri := "file://" + f.Path
		t := track.Track{
			ID:          stableID(uri),
			Title:       f.Title,
			Album:       f.Album,
			Artist:      f.Artist,
			Genre:       f.Genre,
			Source:      uri,
			TrackNumber: f.TrackNumber,
			TotalTracks: f.TotalTracks,
		}
		if f.Picture != nil {
			artwork[t.ID] = catalog.Artwork{Art: f.Picture, Icon: f.Picture}
		}
		tracks = append(tracks, t)
	}

	s.mu.Lock()
	s.artwork = artwork
	s.mu.Unlock()

	return tracks, nil
}

// Artwork returns the cover art found by the last scan.
func (s *DirSource) Artwork() map[string]catalog.Artwork {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artwork
}
