// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Source types understood by the catalog source factory.
const (
	SourceTypeStatic  = "static"
	SourceTypeJSON    = "json"
	SourceTypeDir     = "dir"
	SourceTypeSpotify = "spotify"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Playback PlaybackConfig `yaml:"playback"`
	Messages MessagesConfig `yaml:"messages"`
	Spotify  SpotifyConfig  `yaml:"spotify"`
	LastFm   LastFmConfig   `yaml:"lastfm"`
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Addr  string      `yaml:"addr" default:":8080"`
	Token string      `yaml:"token"` // Required in the X-Musicbox-Token header when set
	Hooks HooksConfig `yaml:"hooks"`
}

// HooksConfig represents lifecycle hooks configuration.
type HooksConfig struct {
	OnStarted []string `yaml:"on_started"`
	OnStopped []string `yaml:"on_stopped"`
}

// CatalogConfig represents the catalog sources, loaded in order.
type CatalogConfig struct {
	Sources []SourceConfig          `yaml:"sources" validate:"required,min=1,dive"`
	Filters map[string]FilterConfig `yaml:"filters"`
}

// SourceConfig represents a single catalog source configuration.
type SourceConfig struct {
	Type        string         `yaml:"type" validate:"required,oneof=static json dir spotify"`
	DisplayName string         `yaml:"display_name" validate:"required"`
	Settings    map[string]any `yaml:"settings"`
}

// FilterConfig represents a catalog filter's configuration.
type FilterConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// PlaybackConfig represents playback engine configuration.
type PlaybackConfig struct {
	TickIntervalMs          int `yaml:"tick_interval_ms" default:"100" validate:"gte=10,lte=1000"`
	DefaultTrackDurationSec int `yaml:"default_track_duration_sec" default:"180" validate:"gte=1"`
}

// TickInterval returns the engine clock resolution.
func (p PlaybackConfig) TickInterval() time.Duration {
	return time.Duration(p.TickIntervalMs) * time.Millisecond
}

// DefaultTrackDuration returns the duration used for tracks without one.
func (p PlaybackConfig) DefaultTrackDuration() time.Duration {
	return time.Duration(p.DefaultTrackDurationSec) * time.Second
}

// MessagesConfig represents user-facing messages.
type MessagesConfig struct {
	Success           string `yaml:"success" default:"OK"`
	DefaultError      string `yaml:"default_error" default:"Something went wrong"`
	NotFound          string `yaml:"not_found" default:"Could not find music"`
	InvalidArgument   string `yaml:"invalid_argument" default:"Invalid request"`
	EngineUnavailable string `yaml:"engine_unavailable" default:"Player is not available"`
}

// SpotifyConfig represents Spotify API configuration.
// Credentials are only required when a spotify source is configured.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
	Market       string `yaml:"market" validate:"omitempty,len=2" default:"JP"`
}

// LastFmConfig represents Last.fm API configuration.
type LastFmConfig struct {
	APIKey string `yaml:"api_key"`
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values for sensitive fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	return Parse(data)
}

// Parse parses configuration from YAML data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		c.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		c.Spotify.ClientSecret = v
	}
	if v := os.Getenv("SPOTIFY_REFRESH_TOKEN"); v != "" {
		c.Spotify.RefreshToken = v
	}
	if v := os.Getenv("LASTFM_API_KEY"); v != "" {
		c.LastFm.APIKey = v
	}
	if v := os.Getenv("MUSICBOX_TOKEN"); v != "" {
		c.Server.Token = v
	}
}

// GetMessage returns the message for the given code.
func (c *Config) GetMessage(code string) string {
	switch code {
	case "success":
		return c.Messages.Success
	case "not_found":
		return c.Messages.NotFound
	case "invalid_argument":
		return c.Messages.InvalidArgument
	case "engine_unavailable":
		return c.Messages.EngineUnavailable
	default:
		return c.Messages.DefaultError
	}
}

// HasSourceType reports whether any catalog source has the given type.
func (c *Config) HasSourceType(sourceType string) bool {
	for _, s := range c.Catalog.Sources {
		if s.Type == sourceType {
			return true
		}
	}
	return false
}

// IsFilterEnabled checks if a filter is enabled.
func (c *Config) IsFilterEnabled(filterName string) bool {
	if f, ok := c.Catalog.Filters[filterName]; ok {
		return f.Enabled
	}
	return false
}

// GetFilterSettings returns the settings for a filter.
func (c *Config) GetFilterSettings(filterName string) map[string]any {
	if f, ok := c.Catalog.Filters[filterName]; ok {
		return f.Settings
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}

	if c.HasSourceType(SourceTypeSpotify) {
		if c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "" || c.Spotify.RefreshToken == "" {
			return errors.New("spotify source requires spotify.client_id, spotify.client_secret and spotify.refresh_token")
		}
	}

	return nil
}
