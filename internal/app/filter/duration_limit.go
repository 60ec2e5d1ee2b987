package filter

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/osa030/musicbox/internal/domain/track"
)

// DurationLimitConfig represents the configuration for DurationLimitFilter.
type DurationLimitConfig struct {
	MinSeconds float64 `mapstructure:"min_seconds" validate:"gte=0"`
	MaxSeconds float64 `mapstructure:"max_seconds" validate:"gte=0"`
}

// DurationLimitFilter checks if track duration is within allowed limits.
// Tracks of unknown duration are accepted.
type DurationLimitFilter struct {
	config *DurationLimitConfig
}

// NewDurationLimitFilter creates a new duration limit filter.
func NewDurationLimitFilter() *DurationLimitFilter {
	return &DurationLimitFilter{}
}

func (f *DurationLimitFilter) Name() string {
	return "duration_limit_filter"
}

func (f *DurationLimitFilter) Description() string {
	return "Drops tracks shorter or longer than the allowed limits"
}

func (f *DurationLimitFilter) ReturnCodes() []string {
	return []string{"duration_limit_exceeded"}
}

func (f *DurationLimitFilter) ValidateConfig(settings map[string]any) error {
	var config DurationLimitConfig
	if err := decodeSettings(f.Name(), settings, &config); err != nil {
		return err
	}

	// max_seconds of 0 means no upper limit
	if config.MaxSeconds > 0 && config.MinSeconds > config.MaxSeconds {
		return errors.New("min_seconds cannot be greater than max_seconds")
	}
	f.config = &config
	return nil
}

func (f *DurationLimitFilter) Check(ctx context.Context, t track.Track) Result {
	// If config is not set, accept all tracks
	if f.config == nil || t.Duration <= 0 {
		return Accept()
	}

	seconds := t.Duration.Seconds()
	if seconds < f.config.MinSeconds {
		return Reject("duration_limit_exceeded")
	}
	if f.config.MaxSeconds > 0 && seconds > f.config.MaxSeconds {
		return Reject("duration_limit_exceeded")
	}

	return Accept()
}

func init() {
	Register("duration_limit_filter", func() Filter {
		return NewDurationLimitFilter()
	})
}
