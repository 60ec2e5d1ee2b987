package filter

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/osa030/musicbox/internal/domain/track"
)

// GenreConfig represents the configuration for GenreFilter.
type GenreConfig struct {
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`
}

// GenreFilter keeps or drops tracks by genre, ignoring case.
// An empty include list admits every genre not excluded.
type GenreFilter struct {
	include []string
	exclude []string
}

// NewGenreFilter creates a new genre filter.
func NewGenreFilter() *GenreFilter {
	return &GenreFilter{}
}

func (f *GenreFilter) Name() string {
	return "genre_filter"
}

func (f *GenreFilter) Description() string {
	return "Keeps only included genres and drops excluded ones"
}

func (f *GenreFilter) ReturnCodes() []string {
	return []string{"genre_excluded"}
}

func (f *GenreFilter) ValidateConfig(settings map[string]any) error {
	var config GenreConfig
	if err := decodeSettings(f.Name(), settings, &config); err != nil {
		return err
	}
	f.include = lo.Map(config.Include, func(g string, _ int) string { return strings.ToLower(g) })
	f.exclude = lo.Map(config.Exclude, func(g string, _ int) string { return strings.ToLower(g) })
	return nil
}

func (f *GenreFilter) Check(ctx context.Context, t track.Track) Result {
	genre := strings.ToLower(t.Genre)
	if lo.Contains(f.exclude, genre) {
		return Reject("genre_excluded")
	}
	if len(f.include) > 0 && !lo.Contains(f.include, genre) {
		return Reject("genre_excluded")
	}
	return Accept()
}

func init() {
	Register("genre_filter", func() Filter {
		return NewGenreFilter()
	})
}
