package source

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/musicbox/internal/app/catalog"
	"github.com/osa030/musicbox/internal/infra/config"
)

// Dependencies holds the external clients some source types need.
type Dependencies struct {
	Spotify SpotifyClient // Required by spotify sources
	Tags    TagClient     // Optional genre enrichment for spotify sources
}

// NewChainFromConfig creates a source chain from configuration. Spotify
// playlists are checked for existence so that a typo fails at startup.
func NewChainFromConfig(ctx context.Context, cfg *config.Config, deps Dependencies) (*Chain, error) {
	if len(cfg.Catalog.Sources) == 0 {
		return nil, errors.New("no catalog sources configured")
	}

	var sources []SourceWithMetadata

	for i, scfg := range cfg.Catalog.Sources {
		var src catalog.Source
		var err error
		zlog.Debug().Msgf("creating catalog source: index=%d type=%s settings=%+v", i+1, scfg.Type, scfg.Settings)
		switch scfg.Type {
		case config.SourceTypeStatic:
			src, err = NewStaticFromSettings(scfg.Settings)

		case config.SourceTypeJSON:
			src, err = NewJSONSource(scfg.Settings)

		case config.SourceTypeDir:
			src, err = NewDirSource(scfg.Settings)

		case config.SourceTypeSpotify:
			var ss *SpotifySource
			ss, err = NewSpotifySource(deps.Spotify, deps.Tags, scfg.Settings)
			if err == nil {
				err = ss.Validate(ctx)
			}
			src = ss

		default:
			return nil, errors.Newf("unsupported source type: %s (source index %d)", scfg.Type, i)
		}

		if err != nil {
			return nil, errors.Wrapf(err, "failed to create source (index %d, type %s)", i, scfg.Type)
		}

		sources = append(sources, SourceWithMetadata{
			Source:      src,
			DisplayName: scfg.DisplayName,
		})

		zlog.Info().Msgf("registered catalog source: index=%d type=%s display_name=%s", i+1, scfg.Type, scfg.DisplayName)
	}

	return NewChain(sources), nil
}
