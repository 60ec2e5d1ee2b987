package filter

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/osa030/musicbox/internal/app/catalog"
	"github.com/osa030/musicbox/internal/domain/track"
	"github.com/osa030/musicbox/internal/infra/config"
)

// Chain executes filters in sequence.
type Chain struct {
	filters []Filter
}

// NewChain creates a new filter chain.
func NewChain() *Chain {
	return &Chain{
		filters: make([]Filter, 0),
	}
}

// NewChainFromConfig creates a chain of the enabled filters, ordered by name.
func NewChainFromConfig(cfg *config.Config) (*Chain, error) {
	chain := NewChain()

	names := lo.Keys(cfg.Catalog.Filters)
	sort.Strings(names)

	for _, name := range names {
		if !cfg.IsFilterEnabled(name) {
			continue
		}
		factory, ok := registry[name]
		if !ok {
			return nil, errors.Newf("unknown filter: %s", name)
		}
		f := factory()
		if err := f.ValidateConfig(cfg.GetFilterSettings(name)); err != nil {
			return nil, errors.Wrapf(err, "filter %s", name)
		}
		chain.Add(f)
		zlog.Info().Msgf("registered catalog filter: name=%s", name)
	}

	return chain, nil
}

// Add adds a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Execute runs all filters in sequence.
// Returns immediately if any filter rejects the track.
func (c *Chain) Execute(ctx context.Context, t track.Track) Result {
	for _, f := range c.filters {
		result := f.Check(ctx, t)
		if !result.Accepted {
			return result
		}
	}
	return Accept()
}

// Apply returns the tracks accepted by every filter, in order.
func (c *Chain) Apply(ctx context.Context, tracks []track.Track) []track.Track {
	if len(c.filters) == 0 {
		return tracks
	}
	for _, f := range c.filters {
		if r, ok := f.(resetter); ok {
			r.Reset()
		}
	}

	rejected := make(map[string]int)
	accepted := lo.Filter(tracks, func(t track.Track, _ int) bool {
		result := c.Execute(ctx, t)
		if !result.Accepted {
			rejected[result.Code]++
			zlog.Debug().Msgf("filter: track rejected: id=%s title=%s code=%s", t.ID, t.Title, result.Code)
		}
		return result.Accepted
	})

	if len(rejected) > 0 {
		zlog.Info().Msgf("filter: accepted=%d rejected=%v", len(accepted), rejected)
	}
	return accepted
}

// Filters returns all filters in the chain.
func (c *Chain) Filters() []Filter {
	return c.filters
}

// Source applies a chain to the tracks of another catalog source.
type Source struct {
	source catalog.Source
	chain  *Chain
}

// NewSource wraps source so that only tracks accepted by chain reach the catalog.
func NewSource(source catalog.Source, chain *Chain) *Source {
	return &Source{source: source, chain: chain}
}

// Tracks loads the wrapped source and filters its tracks.
func (s *Source) Tracks(ctx context.Context) ([]track.Track, error) {
	tracks, err := s.source.Tracks(ctx)
	if err != nil {
		return nil, err
	}
	return s.chain.Apply(ctx, tracks), nil
}

// Artwork forwards the artwork of the wrapped source.
func (s *Source) Artwork() map[string]catalog.Artwork {
	if as, ok := s.source.(catalog.ArtworkSource); ok {
		return as.Artwork()
	}
	return nil
}
