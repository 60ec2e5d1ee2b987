package queue

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/musicbox/internal/domain/errdefs"
	"github.com/osa030/musicbox/internal/domain/mediaid"
	"github.com/osa030/musicbox/internal/domain/track"
	"github.com/osa030/musicbox/internal/testutil"
)

func musicIDs(items []track.QueueItem) []string {
	result := make([]string, len(items))
	for i, item := range items {
		result[i], _ = mediaid.ExtractMusicID(item.MediaID)
	}
	return result
}

func TestPlayingQueueForMediaID(t *testing.T) {
	c := testutil.LoadedCatalog(t)

	tests := []struct {
		name    string
		mediaID string
		want    []string
		wantErr error
	}{
		{name: "genre", mediaID: "__BY_GENRE__/Genre 1", want: []string{"music1", "music2", "music3"}},
		{name: "genre with leaf", mediaID: "music5|__BY_GENRE__/Genre 2", want: []string{"music4", "music5"}},
		{name: "search", mediaID: "__BY_SEARCH__/Romantic", want: []string{"music4", "music5"}},
		{name: "focused search", mediaID: "__BY_SEARCH__/genre/Genre 2", want: []string{"music4", "music5"}},
		{name: "focused search by song", mediaID: "__BY_SEARCH__/song/Music 1", want: []string{"music1"}},
		{name: "unknown focus", mediaID: "__BY_SEARCH__/mood/calm", wantErr: errdefs.ErrNotFound},
		{name: "search too deep", mediaID: "__BY_SEARCH__/genre/Genre 2/x", wantErr: errdefs.ErrInvalidArgument},
		{name: "random with value", mediaID: "__RANDOM__/x", wantErr: errdefs.ErrInvalidArgument},
		{name: "unknown genre", mediaID: "__BY_GENRE__/Jazz", want: []string{}},
		{name: "single level", mediaID: "__BY_GENRE__", wantErr: errdefs.ErrInvalidArgument},
		{name: "root", mediaID: "__ROOT__", wantErr: errdefs.ErrInvalidArgument},
		{name: "unknown category", mediaID: "__BY_MOOD__/calm", wantErr: errdefs.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := PlayingQueueForMediaID(tt.mediaID, c)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, musicIDs(items))
		})
	}
}

func TestPlayingQueueForMediaID_ItemIDs(t *testing.T) {
	c := testutil.LoadedCatalog(t)

	items, err := PlayingQueueForMediaID("__BY_GENRE__/Genre 1", c)
	require.NoError(t, err)
	require.Len(t, items, 3)

	for i, item := range items {
		assert.Equal(t, int64(i), item.QueueID)
		assert.Equal(t, []string{mediaid.MusicsByGenre, "Genre 1"}, mediaid.Hierarchy(item.MediaID))
	}
	assert.Equal(t, "music1|__BY_GENRE__/Genre 1", items[0].MediaID)
	assert.Equal(t, "Music 1", items[0].Title)
	assert.Equal(t, "Smith Singer", items[0].Subtitle)
	assert.Equal(t, "Album 1", items[0].Description)
}

func TestPlayingQueueFromSearch(t *testing.T) {
	c := testutil.LoadedCatalog(t)

	tests := []struct {
		name         string
		query        string
		extras       SearchExtras
		want         []string
		wantCategory []string
	}{
		{
			name:         "title",
			query:        "Romantic",
			want:         []string{"music4", "music5"},
			wantCategory: []string{"Romantic"},
		},
		{
			name:         "artist focus",
			query:        "Joe",
			extras:       SearchExtras{Focus: FocusArtist},
			want:         []string{"music2", "music4", "music5"},
			wantCategory: []string{"artist", "Joe"},
		},
		{
			name:         "artist focus uses structured value",
			query:        "songs by john",
			extras:       SearchExtras{Focus: FocusArtist, Artist: "John"},
			want:         []string{"music3"},
			wantCategory: []string{"artist", "John"},
		},
		{
			name:         "genre focus without query",
			extras:       SearchExtras{Focus: FocusGenre, Genre: "Genre 2"},
			want:         []string{"music4", "music5"},
			wantCategory: []string{"genre", "Genre 2"},
		},
		{
			name:         "album focus",
			query:        "Album 2",
			extras:       SearchExtras{Focus: FocusAlbum},
			want:         []string{"music4", "music5"},
			wantCategory: []string{"album", "Album 2"},
		},
		{
			name:         "song focus",
			query:        "Music 3",
			extras:       SearchExtras{Focus: FocusSong},
			want:         []string{"music3"},
			wantCategory: []string{"song", "Music 3"},
		},
		{
			name:         "empty focused result falls back to free text",
			query:        "Romantic",
			extras:       SearchExtras{Focus: FocusArtist, Artist: "Nobody"},
			want:         []string{"music4", "music5"},
			wantCategory: []string{"Romantic"},
		},
		{
			name:         "free text matches each track once",
			query:        " ",
			want:         []string{"music1", "music2", "music3", "music4", "music5"},
			wantCategory: []string{" "},
		},
		{
			name:         "free text across fields",
			query:        "1",
			want:         []string{"music1", "music4", "music2", "music3"},
			wantCategory: []string{"1"},
		},
		{
			name:  "no match",
			query: "Polka",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := PlayingQueueFromSearch(tt.query, tt.extras, c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, musicIDs(items))
			for _, item := range items {
				assert.Equal(t, append([]string{mediaid.MusicsBySearch}, tt.wantCategory...), mediaid.Hierarchy(item.MediaID))
			}
		})
	}
}

func TestPlayingQueueFromSearch_EmptyQueryIsRandom(t *testing.T) {
	c := testutil.LoadedCatalog(t)

	items, err := PlayingQueueFromSearch("", SearchExtras{}, c)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"music1", "music2", "music3", "music4", "music5"}, musicIDs(items))
	assert.Equal(t, []string{mediaid.MusicsRandom}, mediaid.Hierarchy(items[0].MediaID))
}

func TestPlayingQueueFromSearch_CleansCategory(t *testing.T) {
	tracks := testutil.FixtureTracks()
	tracks[0].Title = "AC/DC Live"
	c := testutil.LoadedCatalog(t, tracks...)

	items, err := PlayingQueueFromSearch("AC/DC", SearchExtras{}, c)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "music1|__BY_SEARCH__/AC DC", items[0].MediaID)
}

func TestQueueFromMusic(t *testing.T) {
	c := testutil.LoadedCatalog(t)

	tests := []struct {
		name    string
		mediaID string
		want    []string
		wantErr error
	}{
		{name: "genre leaf", mediaID: "music2|__BY_GENRE__/Genre 1", want: []string{"music1", "music2", "music3"}},
		{name: "search leaf", mediaID: "music2|__BY_SEARCH__/Joe", want: []string{"music2", "music4", "music5"}},
		{name: "bare leaf uses track genre", mediaID: "music4|", want: []string{"music4", "music5"}},
		{name: "unknown bare leaf", mediaID: "missing|", wantErr: errdefs.ErrNotFound},
		{name: "browsable", mediaID: "__BY_GENRE__/Genre 1", wantErr: errdefs.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := QueueFromMusic(tt.mediaID, c)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, musicIDs(items))
		})
	}
}

func TestRandomQueue_EmptyCatalog(t *testing.T) {
	c := testutil.LoadedCatalog(t, track.Track{})

	items, err := RandomQueue(c)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestIndexLookups(t *testing.T) {
	c := testutil.LoadedCatalog(t)
	items, err := PlayingQueueForMediaID("__BY_GENRE__/Genre 1", c)
	require.NoError(t, err)

	assert.Equal(t, 1, IndexOfMediaID(items, "music2|__BY_GENRE__/Genre 1"))
	assert.Equal(t, -1, IndexOfMediaID(items, "music2|__BY_GENRE__/Genre 2"))
	assert.Equal(t, -1, IndexOfMediaID(items, "music2"))

	assert.Equal(t, 2, IndexOfQueueID(items, 2))
	assert.Equal(t, -1, IndexOfQueueID(items, 3))
	assert.Equal(t, -1, IndexOfQueueID(items, -1))

	assert.True(t, IsIndexPlayable(0, items))
	assert.True(t, IsIndexPlayable(2, items))
	assert.False(t, IsIndexPlayable(3, items))
	assert.False(t, IsIndexPlayable(-1, items))
	assert.False(t, IsIndexPlayable(0, nil))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Genre: Rock", Title("music1|__BY_GENRE__/Rock"))
	assert.Equal(t, "Search: Joe", Title("music1|__BY_SEARCH__/Joe"))
	assert.Equal(t, "Search: Genre 2", Title("music4|__BY_SEARCH__/genre/Genre 2"))
	assert.Equal(t, "Random music", Title("music1|__RANDOM__"))
	assert.Equal(t, "Music", Title("music1|"))
}

func TestParseFocus(t *testing.T) {
	tests := []struct {
		in   string
		want Focus
	}{
		{"artist", FocusArtist},
		{" Album ", FocusAlbum},
		{"genre", FocusGenre},
		{"song", FocusSong},
		{"title", FocusSong},
		{"", FocusNone},
		{"mood", FocusNone},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFocus(tt.in))
		})
	}
}
