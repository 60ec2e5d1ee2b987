package filter

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/musicbox/internal/app/catalog"
	"github.com/osa030/musicbox/internal/domain/track"
	"github.com/osa030/musicbox/internal/infra/config"
)

func TestGenreFilter_Check(t *testing.T) {
	tests := []struct {
		name         string
		settings     map[string]any
		genre        string
		wantAccepted bool
	}{
		{
			name:         "no lists",
			settings:     nil,
			genre:        "Rock",
			wantAccepted: true,
		},
		{
			name:         "excluded genre",
			settings:     map[string]any{"exclude": []string{"jazz"}},
			genre:        "Jazz",
			wantAccepted: false,
		},
		{
			name:         "included genre",
			settings:     map[string]any{"include": []string{"Rock", "Pop"}},
			genre:        "pop",
			wantAccepted: true,
		},
		{
			name:         "genre not included",
			settings:     map[string]any{"include": []string{"Rock"}},
			genre:        "Jazz",
			wantAccepted: false,
		},
		{
			name:         "exclude wins over include",
			settings:     map[string]any{"include": []string{"Rock"}, "exclude": []string{"Rock"}},
			genre:        "Rock",
			wantAccepted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewGenreFilter()
			require.NoError(t, f.ValidateConfig(tt.settings))

			result := f.Check(context.Background(), track.Track{ID: "test-track", Genre: tt.genre})

			assert.Equal(t, tt.wantAccepted, result.Accepted)
			if !tt.wantAccepted {
				assert.Equal(t, "genre_excluded", result.Code)
			}
		})
	}
}

func TestChain_Execute(t *testing.T) {
	duration := NewDurationLimitFilter()
	require.NoError(t, duration.ValidateConfig(map[string]any{"max_seconds": 300}))
	genre := NewGenreFilter()
	require.NoError(t, genre.ValidateConfig(map[string]any{"exclude": []string{"Jazz"}}))

	chain := NewChain()
	chain.Add(duration)
	chain.Add(genre)
	assert.Len(t, chain.Filters(), 2)

	ctx := context.Background()
	assert.True(t, chain.Execute(ctx, track.Track{ID: "a", Genre: "Rock", Duration: time.Minute}).Accepted)
	assert.Equal(t, Reject("duration_limit_exceeded"), chain.Execute(ctx, track.Track{ID: "b", Genre: "Jazz", Duration: time.Hour}))
	assert.Equal(t, Reject("genre_excluded"), chain.Execute(ctx, track.Track{ID: "c", Genre: "Jazz", Duration: time.Minute}))
}

func TestChain_Apply(t *testing.T) {
	chain := NewChain()
	chain.Add(NewDuplicateTrackFilter())

	tracks := []track.Track{
		{ID: "a", Title: "Song", Artist: "Band"},
		{ID: "b", Title: "Song - Remastered", Artist: "Band"},
		{ID: "c", Title: "Other Song", Artist: "Band"},
	}
	ctx := context.Background()

	accepted := chain.Apply(ctx, tracks)
	assert.Equal(t, []string{"a", "c"}, trackIDs(accepted))

	// The duplicate filter starts over on every load
	accepted = chain.Apply(ctx, tracks)
	assert.Equal(t, []string{"a", "c"}, trackIDs(accepted))
}

func TestChain_ApplyEmpty(t *testing.T) {
	tracks := []track.Track{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, tracks, NewChain().Apply(context.Background(), tracks))
}

func TestNewChainFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		filters   map[string]config.FilterConfig
		wantNames []string
		wantErr   bool
	}{
		{
			name:      "no filters",
			wantNames: []string{},
		},
		{
			name: "enabled filters in name order",
			filters: map[string]config.FilterConfig{
				"genre_filter":           {Enabled: true, Settings: map[string]any{"exclude": []string{"Jazz"}}},
				"duration_limit_filter":  {Enabled: true, Settings: map[string]any{"max_seconds": 600}},
				"duplicate_track_filter": {Enabled: false},
			},
			wantNames: []string{"duration_limit_filter", "genre_filter"},
		},
		{
			name: "unknown filter",
			filters: map[string]config.FilterConfig{
				"market_filter": {Enabled: true},
			},
			wantErr: true,
		},
		{
			name: "invalid settings",
			filters: map[string]config.FilterConfig{
				"duration_limit_filter": {Enabled: true, Settings: map[string]any{"min_seconds": -5}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Catalog: config.CatalogConfig{Filters: tt.filters}}

			chain, err := NewChainFromConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			names := make([]string, 0)
			for _, f := range chain.Filters() {
				names = append(names, f.Name())
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestRegistry(t *testing.T) {
	registry := GetRegistered()
	for _, name := range []string{"duration_limit_filter", "duplicate_track_filter", "genre_filter"} {
		factory, ok := registry[name]
		require.True(t, ok, name)
		assert.Equal(t, name, factory().Name())
	}
}

type stubSource struct {
	tracks  []track.Track
	artwork map[string]catalog.Artwork
	err     error
}

func (s *stubSource) Tracks(ctx context.Context) ([]track.Track, error) {
	return s.tracks, s.err
}

func (s *stubSource) Artwork() map[string]catalog.Artwork {
	return s.artwork
}

func TestSource(t *testing.T) {
	genre := NewGenreFilter()
	require.NoError(t, genre.ValidateConfig(map[string]any{"exclude": []string{"Jazz"}}))
	chain := NewChain()
	chain.Add(genre)

	inner := &stubSource{
		tracks: []track.Track{
			{ID: "a", Title: "Rock Song", Genre: "Rock"},
			{ID: "b", Title: "Jazz Song", Genre: "Jazz"},
		},
		artwork: map[string]catalog.Artwork{"a": {Art: []byte("art")}},
	}

	src := NewSource(inner, chain)
	tracks, err := src.Tracks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, trackIDs(tracks))
	assert.Equal(t, inner.artwork, src.Artwork())

	c := catalog.New(src)
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, []string{"Rock"}, c.Genres())
}

func TestSource_Error(t *testing.T) {
	src := NewSource(&stubSource{err: errors.New("unreachable")}, NewChain())
	_, err := src.Tracks(context.Background())
	assert.Error(t, err)
}

func trackIDs(tracks []track.Track) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}
