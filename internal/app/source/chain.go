package source

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/osa030/musicbox/internal/app/catalog"
	"github.com/osa030/musicbox/internal/domain/track"
)

// SourceWithMetadata wraps a source with its metadata.
type SourceWithMetadata struct {
	Source      catalog.Source
	DisplayName string
}

// Chain loads tracks from several sources in order. A failing source is
// skipped; the chain only fails when every source fails.
type Chain struct {
	sources []SourceWithMetadata
}

// NewChain creates a new source chain.
func NewChain(sources []SourceWithMetadata) *Chain {
	return &Chain{sources: sources}
}

// Tracks loads all sources and returns their tracks de-duplicated by id.
// The first source providing an id wins.
func (c *Chain) Tracks(ctx context.Context) ([]track.Track, error) {
	var all []track.Track
	succeeded := 0

	for i, sm := range c.sources {
		zlog.Debug().Msgf("loading source: index=%d total=%d name=%s", i+1, len(c.sources), sm.DisplayName)

		tracks, err := sm.Source.Tracks(ctx)
		if err != nil {
			zlog.Warn().Msgf("source failed, trying next: source=%s error=%v", sm.DisplayName, err)
			continue
		}
		succeeded++
		all = append(all, tracks...)

		zlog.Info().Msgf("source loaded: source=%s count=%d total_so_far=%d", sm.DisplayName, len(tracks), len(all))
	}

	if succeeded == 0 && len(c.sources) > 0 {
		return nil, errors.New("all catalog sources failed")
	}

	return lo.UniqBy(all, func(t track.Track) string { return t.ID }), nil
}

// Artwork merges the artwork of every source that provides it.
func (c *Chain) Artwork() map[string]catalog.Artwork {
	result := make(map[string]catalog.Artwork)
	for _, sm := range c.sources {
		as, ok := sm.Source.(catalog.ArtworkSource)
		if !ok {
			continue
		}
		for id, art := range as.Artwork() {
			if _, exists := result[id]; !exists {
				result[id] = art
			}
		}
	}
	return result
}
