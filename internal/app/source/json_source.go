package source

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/osa030/musicbox/internal/domain/track"
)

// JSONSourceConfig represents the settings of a JSON catalog source.
type JSONSourceConfig struct {
	URL        string `mapstructure:"url" validate:"required_without=Path"`
	Path       string `mapstructure:"path" validate:"required_without=URL"`
	TimeoutSec int    `mapstructure:"timeout_sec" default:"10" validate:"gte=1"`
}

// catalogDocument is the JSON catalog layout:
//
//	{"music": [{"title": "...", "source": "...", "duration": 90, ...}]}
type catalogDocument struct {
	Music []struct {
		Title           string `json:"title"`
		Album           string `json:"album"`
		Artist          string `json:"artist"`
		Genre           string `json:"genre"`
		Source          string `json:"source"`
		Image           string `json:"image"`
		TrackNumber     int    `json:"trackNumber"`
		TotalTrackCount int    `json:"totalTrackCount"`
		Duration        int    `json:"duration"` // seconds
	} `json:"music"`
}

// JSONSource loads a JSON catalog from a URL or a local file. Relative
// source and image paths are resolved against the catalog location.
type JSONSource struct {
	config     JSONSourceConfig
	httpClient *http.Client
}

// NewJSONSource creates a JSON source from config settings.
func NewJSONSource(settings map[string]any) (*JSONSource, error) {
	var cfg JSONSourceConfig
	if err := decodeSettings("json", settings, &cfg); err != nil {
		return nil, err
	}
	return &JSONSource{
		config:     cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
	}, nil
}

// Tracks fetches and parses the catalog.
func (s *JSONSource) Tracks(ctx context.Context) ([]track.Track, error) {
	data, base, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse catalog")
	}

	tracks := make([]track.Track, 0, len(doc.Music))
	for _, m := range doc.Music {
		if m.Source == "" {
			continue
		}
		src := resolve(base, m.Source)
		tracks = append(tracks, track.Track{
			ID:          stableID(src),
			Title:       m.Title,
			Album:       m.Album,
			Artist:      m.Artist,
			Genre:       m.Genre,
			Source:      src,
			IconURL:     resolve(base, m.Image),
			TrackNumber: m.TrackNumber,
			TotalTracks: m.TotalTrackCount,
			Duration:    time.Duration(m.Duration) * time.Second,
		})
	}
	return tracks, nil
}

// fetch returns the raw catalog and the base location used to resolve
// relative paths.
func (s *JSONSource) fetch(ctx context.Context) ([]byte, string, error) {
	if s.config.URL == "" {
		data, err := os.ReadFile(s.config.Path)
		if err != nil {
			return nil, "", errors.Wrap(err, "failed to read catalog file")
		}
		return data, filepath.Dir(s.config.Path), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.URL, nil)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to create request")
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to fetch catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", errors.Errorf("catalog request returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to read catalog")
	}
	return data, s.config.URL[:strings.LastIndex(s.config.URL, "/")+1], nil
}

func resolve(base, ref string) string {
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"), filepath.IsAbs(ref):
		return ref
	case strings.HasPrefix(base, "http://"), strings.HasPrefix(base, "https://"):
		return base + ref
	default:
		return filepath.Join(base, ref)
	}
}

// stableID derives a track id from its source URI so ids survive reloads.
func stableID(sourceURI string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(sourceURI)).String()
}
