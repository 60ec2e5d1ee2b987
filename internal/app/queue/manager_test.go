package queue

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/musicbox/internal/domain/track"
	"github.com/osa030/musicbox/internal/testutil"
)

type recordingListener struct {
	events []string
	queue  []track.QueueItem
	title  string
	index  int
	track  track.Track
}

func (l *recordingListener) OnMetadataChanged(t track.Track) {
	l.track = t
	l.events = append(l.events, "metadata:"+t.ID)
}

func (l *recordingListener) OnMetadataRetrieveError() {
	l.events = append(l.events, "metadata-error")
}

func (l *recordingListener) OnCurrentQueueIndexUpdated(index int) {
	l.index = index
	l.events = append(l.events, fmt.Sprintf("index:%d", index))
}

func (l *recordingListener) OnQueueUpdated(title string, queue []track.QueueItem) {
	l.title = title
	l.queue = queue
	l.events = append(l.events, fmt.Sprintf("queue:%s:%d", title, len(queue)))
}

func (l *recordingListener) reset() {
	l.events = nil
}

func newTestManager(t *testing.T) (*Manager, *recordingListener) {
	t.Helper()
	l := &recordingListener{index: -1}
	return NewManager(testutil.LoadedCatalog(t), l), l
}

// genreOneManager returns a manager holding the Genre 1 queue at index 0.
func genreOneManager(t *testing.T) (*Manager, *recordingListener) {
	t.Helper()
	m, l := newTestManager(t)
	items, err := PlayingQueueForMediaID("__BY_GENRE__/Genre 1", m.catalog)
	require.NoError(t, err)
	m.SetCurrentQueue("Genre 1", items, "")
	l.reset()
	return m, l
}

func TestManager_Empty(t *testing.T) {
	m, l := newTestManager(t)

	assert.Equal(t, 0, m.CurrentQueueSize())
	assert.Equal(t, -1, m.CurrentIndex())
	_, ok := m.CurrentMusic()
	assert.False(t, ok)
	assert.False(t, m.IsSameBrowsingCategory("music1|__BY_GENRE__/Genre 1"))
	assert.False(t, m.SkipQueuePosition(1))
	assert.False(t, m.SetCurrentQueueItemByQueueID(0))
	assert.Empty(t, l.events)
}

func TestManager_SetCurrentQueue(t *testing.T) {
	m, l := newTestManager(t)
	items, err := PlayingQueueForMediaID("__BY_GENRE__/Genre 1", m.catalog)
	require.NoError(t, err)

	m.SetCurrentQueue("Genre 1", items, "")

	assert.Equal(t, []string{"queue:Genre 1:3", "index:0", "metadata:music1"}, l.events)
	assert.Equal(t, 3, m.CurrentQueueSize())
	assert.Equal(t, 0, m.CurrentIndex())
	assert.Equal(t, "Genre 1", m.Title())
	assert.Equal(t, "Music 1", l.track.Title)
}

func TestManager_SetCurrentQueueWithInitialItem(t *testing.T) {
	m, l := newTestManager(t)
	items, err := PlayingQueueForMediaID("__BY_GENRE__/Genre 1", m.catalog)
	require.NoError(t, err)

	m.SetCurrentQueue("Genre 1", items, "music3|__BY_GENRE__/Genre 1")
	assert.Equal(t, 2, m.CurrentIndex())
	assert.Equal(t, []string{"queue:Genre 1:3", "index:2", "metadata:music3"}, l.events)

	l.reset()
	m.SetCurrentQueue("Genre 1", items, "missing|__BY_GENRE__/Genre 1")
	assert.Equal(t, 0, m.CurrentIndex())
}

func TestManager_SetCurrentQueueEmpty(t *testing.T) {
	m, l := genreOneManager(t)

	m.SetCurrentQueue("Nothing", nil, "")

	assert.Equal(t, []string{"queue:Nothing:0", "metadata-error"}, l.events)
	assert.Equal(t, -1, m.CurrentIndex())
}

func TestManager_SkipQueuePosition(t *testing.T) {
	tests := []struct {
		name   string
		amount int
		want   int
	}{
		{name: "forward", amount: 1, want: 1},
		{name: "backward wraps to end", amount: -1, want: 2},
		{name: "full lap", amount: 3, want: 0},
		{name: "past the end", amount: 4, want: 1},
		{name: "far backward", amount: -4, want: 2},
		{name: "several laps", amount: 7, want: 1},
		{name: "zero", amount: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, l := genreOneManager(t)

			require.True(t, m.SkipQueuePosition(tt.amount))
			assert.Equal(t, tt.want, m.CurrentIndex())
			assert.Equal(t, []string{
				fmt.Sprintf("index:%d", tt.want),
				fmt.Sprintf("metadata:music%d", tt.want+1),
			}, l.events)
		})
	}
}

func TestManager_SkipSequence(t *testing.T) {
	m, _ := genreOneManager(t)

	var got []int
	for _, amount := range []int{1, 1, 1, -1, -1, -1} {
		require.True(t, m.SkipQueuePosition(amount))
		got = append(got, m.CurrentIndex())
	}
	assert.Equal(t, []int{1, 2, 0, 2, 1, 0}, got)
}

func TestManager_SkipSequenceFourItems(t *testing.T) {
	m, _ := newTestManager(t)
	items, err := PlayingQueueFromSearch(" ", SearchExtras{}, m.catalog)
	require.NoError(t, err)
	items = items[:4]
	m.SetCurrentQueue("Four", items, items[3].MediaID)
	require.Equal(t, 3, m.CurrentIndex())

	tests := []struct {
		amount int
		want   int
	}{
		{amount: -1, want: 2},
		{amount: -2, want: 0},
		{amount: -1, want: 3},
		{amount: 5, want: 0},
	}
	for _, tt := range tests {
		require.True(t, m.SkipQueuePosition(tt.amount))
		assert.Equal(t, tt.want, m.CurrentIndex(), "skip %d", tt.amount)
	}
}

func TestManager_SetCurrentQueueItemByQueueID(t *testing.T) {
	m, l := genreOneManager(t)

	assert.True(t, m.SetCurrentQueueItemByQueueID(2))
	assert.Equal(t, 2, m.CurrentIndex())
	assert.Equal(t, []string{"index:2", "metadata:music3"}, l.events)

	for _, id := range []int64{math.MaxInt32, -1, 3} {
		l.reset()
		assert.False(t, m.SetCurrentQueueItemByQueueID(id))
		assert.Equal(t, 2, m.CurrentIndex())
		assert.Empty(t, l.events)
	}
}

func TestManager_SetCurrentQueueItemByMediaID(t *testing.T) {
	m, l := genreOneManager(t)

	assert.True(t, m.SetCurrentQueueItemByMediaID("music2|__BY_GENRE__/Genre 1"))
	assert.Equal(t, 1, m.CurrentIndex())

	l.reset()
	assert.False(t, m.SetCurrentQueueItemByMediaID("music2|__BY_GENRE__/Genre 2"))
	assert.False(t, m.SetCurrentQueueItemByMediaID("music4|__BY_GENRE__/Genre 1"))
	assert.Equal(t, 1, m.CurrentIndex())
	assert.Empty(t, l.events)
}

func TestManager_IsSameBrowsingCategory(t *testing.T) {
	m, _ := genreOneManager(t)

	assert.True(t, m.IsSameBrowsingCategory("music3|__BY_GENRE__/Genre 1"))
	assert.True(t, m.IsSameBrowsingCategory("music1|__BY_GENRE__/Genre 1"))
	assert.False(t, m.IsSameBrowsingCategory("music4|__BY_GENRE__/Genre 2"))
	assert.False(t, m.IsSameBrowsingCategory("music1|__BY_SEARCH__/Genre 1"))
	assert.False(t, m.IsSameBrowsingCategory("music1|"))
}

func TestManager_SetQueueFromSearch(t *testing.T) {
	m, l := newTestManager(t)

	require.True(t, m.SetQueueFromSearch("Romantic", SearchExtras{}))
	assert.Equal(t, 2, m.CurrentQueueSize())
	assert.Equal(t, "Search: Romantic", m.Title())
	assert.Equal(t, []string{"queue:Search: Romantic:2", "index:0", "metadata:music4"}, l.events)

	require.True(t, m.SetQueueFromSearch("Joe", SearchExtras{Focus: FocusArtist}))
	assert.Equal(t, 3, m.CurrentQueueSize())

	require.True(t, m.SetQueueFromSearch(" ", SearchExtras{}))
	assert.Equal(t, 5, m.CurrentQueueSize())
}

func TestManager_SetQueueFromSearchNoMatch(t *testing.T) {
	m, l := genreOneManager(t)
	require.True(t, m.SkipQueuePosition(1))
	l.reset()

	assert.False(t, m.SetQueueFromSearch("Polka", SearchExtras{}))
	assert.Equal(t, 3, m.CurrentQueueSize())
	assert.Equal(t, 1, m.CurrentIndex())
	assert.Equal(t, "Genre 1", m.Title())
	assert.Empty(t, l.events)
}

func TestManager_SetRandomQueue(t *testing.T) {
	m, l := newTestManager(t)

	require.True(t, m.SetRandomQueue())
	assert.Equal(t, 5, m.CurrentQueueSize())
	assert.Equal(t, "Random music", m.Title())
	assert.Equal(t, "queue:Random music:5", l.events[0])
}

func TestManager_SetQueueFromMusic(t *testing.T) {
	m, l := newTestManager(t)

	// Different category rebuilds the queue.
	require.True(t, m.SetQueueFromMusic("music2|__BY_GENRE__/Genre 1"))
	assert.Equal(t, []string{"queue:Genre: Genre 1:3", "index:1", "metadata:music2"}, l.events)
	assert.Equal(t, 1, m.CurrentIndex())

	// Same category keeps the queue.
	l.reset()
	require.True(t, m.SetQueueFromMusic("music3|__BY_GENRE__/Genre 1"))
	assert.Equal(t, []string{"index:2", "metadata:music3"}, l.events)

	// A leaf without category opens its genre.
	l.reset()
	require.True(t, m.SetQueueFromMusic("music5|"))
	assert.Equal(t, "Genre: Genre 2", m.Title())
	assert.Equal(t, 1, m.CurrentIndex())
	assert.Equal(t, "metadata:music5", l.events[len(l.events)-1])
}

func TestManager_SetQueueFromMusicAfterQueueChanged(t *testing.T) {
	c := testutil.LoadedCatalog(t)
	tests := []struct {
		name   string
		query  string
		extras SearchExtras
	}{
		{name: "free text", query: "Romantic"},
		{name: "artist focus", query: "Joe", extras: SearchExtras{Focus: FocusArtist}},
		{name: "album focus", extras: SearchExtras{Focus: FocusAlbum, Album: "Album 2"}},
		{name: "genre focus", extras: SearchExtras{Focus: FocusGenre, Genre: "Genre 2"}},
		{name: "song focus", query: "play romantic song 2", extras: SearchExtras{Focus: FocusSong, Song: "Romantic Song 2"}},
		{name: "random"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := PlayingQueueFromSearch(tt.query, tt.extras, c)
			require.NoError(t, err)
			require.NotEmpty(t, items)
			target := items[len(items)-1]

			m, _ := genreOneManager(t)
			require.True(t, m.SetQueueFromMusic(target.MediaID))
			current, ok := m.CurrentMusic()
			require.True(t, ok)
			assert.Equal(t, target.MediaID, current.MediaID)
			assert.Len(t, m.Queue(), len(items))
		})
	}
}

func TestManager_SetQueueFromMusicCleanedSearch(t *testing.T) {
	tracks := testutil.FixtureTracks()
	tracks[0].Title = "AC/DC Live"
	m := NewManager(testutil.LoadedCatalog(t, tracks...), &recordingListener{index: -1})

	require.True(t, m.SetQueueFromMusic("music1|__BY_SEARCH__/AC DC"))
	require.True(t, m.SetQueueFromMusic("music1|__BY_SEARCH__/song/AC DC"))
	assert.Equal(t, 1, m.CurrentQueueSize())
}

func TestManager_SetQueueFromMusicRejected(t *testing.T) {
	tests := []struct {
		name    string
		mediaID string
	}{
		{name: "unknown music in genre", mediaID: "bogus|__BY_GENRE__/Genre 1"},
		{name: "unknown bare music", mediaID: "bogus|"},
		{name: "browsable", mediaID: "__BY_GENRE__/Genre 2"},
		{name: "root", mediaID: "__ROOT__"},
		{name: "unknown category", mediaID: "music1|__BY_MOOD__/calm"},
		{name: "unknown search focus", mediaID: "music4|__BY_SEARCH__/mood/Genre 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, l := genreOneManager(t)

			assert.False(t, m.SetQueueFromMusic(tt.mediaID))
			assert.Equal(t, 3, m.CurrentQueueSize())
			assert.Equal(t, 0, m.CurrentIndex())
			assert.Empty(t, l.events)
		})
	}
}

func TestManager_UpdateMetadataUnknownTrack(t *testing.T) {
	m, l := newTestManager(t)

	m.SetCurrentQueue("Ghosts", []track.QueueItem{{QueueID: 0, MediaID: "ghost|__BY_GENRE__/Genre 1"}}, "")

	assert.Equal(t, []string{"queue:Ghosts:1", "index:0", "metadata-error"}, l.events)
}

func TestManager_Snapshot(t *testing.T) {
	m, _ := genreOneManager(t)
	require.True(t, m.SkipQueuePosition(2))

	p := m.Snapshot()
	assert.Equal(t, "Genre 1", p.Title)
	assert.Equal(t, 2, p.CurrentIndex)
	require.Len(t, p.Items, 3)

	current, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, "music3|__BY_GENRE__/Genre 1", current.MediaID)

	p.Items[0].Title = "changed"
	assert.Equal(t, "Music 1", m.Queue()[0].Title)
}
