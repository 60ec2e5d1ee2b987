package queue

import (
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/musicbox/internal/domain/mediaid"
	"github.com/osa030/musicbox/internal/domain/playlist"
	"github.com/osa030/musicbox/internal/domain/track"
)

// MetadataListener receives queue and metadata changes.
type MetadataListener interface {
	// OnMetadataChanged is called with the track of the current queue item.
	OnMetadataChanged(t track.Track)
	// OnMetadataRetrieveError is called when the current item cannot be
	// resolved to a catalog track.
	OnMetadataRetrieveError()
	// OnCurrentQueueIndexUpdated is called when the current position moves.
	OnCurrentQueueIndexUpdated(index int)
	// OnQueueUpdated is called when the queue is replaced.
	OnQueueUpdated(title string, queue []track.QueueItem)
}

// Manager holds the current play queue and position.
//
// Manager is not safe for concurrent use; the owning session serializes
// access. Listener callbacks run synchronously on the caller's goroutine.
type Manager struct {
	catalog  Catalog
	listener MetadataListener

	title        string
	queue        []track.QueueItem
	currentIndex int
}

// NewManager creates a queue manager with an empty queue.
func NewManager(c Catalog, listener MetadataListener) *Manager {
	return &Manager{
		catalog:      c,
		listener:     listener,
		queue:        []track.QueueItem{},
		currentIndex: -1,
	}
}

// IsSameBrowsingCategory reports whether mediaID has the same category path
// as the current queue item.
func (m *Manager) IsSameBrowsingCategory(mediaID string) bool {
	current, ok := m.CurrentMusic()
	if !ok {
		return false
	}
	return mediaid.Parse(mediaID).SameHierarchy(mediaid.Parse(current.MediaID))
}

// SetCurrentQueueItemByQueueID moves to the item with queueID.
// It returns false and leaves the state untouched when no item matches.
func (m *Manager) SetCurrentQueueItemByQueueID(queueID int64) bool {
	index := IndexOfQueueID(m.queue, queueID)
	if index < 0 {
		return false
	}
	m.setCurrentQueueIndex(index)
	m.UpdateMetadata()
	return true
}

// SetCurrentQueueItemByMediaID moves to the item with mediaID.
// It returns false and leaves the state untouched when no item matches.
func (m *Manager) SetCurrentQueueItemByMediaID(mediaID string) bool {
	index := IndexOfMediaID(m.queue, mediaID)
	if index < 0 {
		return false
	}
	m.setCurrentQueueIndex(index)
	m.UpdateMetadata()
	return true
}

// SkipQueuePosition moves the current position by amount, wrapping around
// both ends of the queue. It returns false for an empty queue.
func (m *Manager) SkipQueuePosition(amount int) bool {
	n := len(m.queue)
	if n == 0 {
		return false
	}
	index := ((m.currentIndex+amount)%n + n) % n
	m.setCurrentQueueIndex(index)
	m.UpdateMetadata()
	return true
}

// SetQueueFromSearch replaces the queue with the search results.
// It returns false and leaves the queue untouched when nothing matches.
func (m *Manager) SetQueueFromSearch(query string, extras SearchExtras) bool {
	items, err := PlayingQueueFromSearch(query, extras, m.catalog)
	if err != nil {
		zlog.Warn().Err(err).Msgf("queue: search failed: query=%s", query)
		return false
	}
	if len(items) == 0 {
		zlog.Debug().Msgf("queue: search found nothing: query=%s", query)
		return false
	}
	m.SetCurrentQueue(Title(items[0].MediaID), items, "")
	return true
}

// SetRandomQueue replaces the queue with every catalog track in random
// order. It returns false when the catalog is empty.
func (m *Manager) SetRandomQueue() bool {
	items, err := RandomQueue(m.catalog)
	if err != nil || len(items) == 0 {
		return false
	}
	m.SetCurrentQueue(Title(items[0].MediaID), items, "")
	return true
}

// SetQueueFromMusic makes mediaID the current item. The current queue is
// kept when mediaID belongs to its category; otherwise the queue is rebuilt
// from the category of mediaID. It returns false when mediaID cannot be
// resolved.
func (m *Manager) SetQueueFromMusic(mediaID string) bool {
	if m.IsSameBrowsingCategory(mediaID) && m.SetCurrentQueueItemByMediaID(mediaID) {
		return true
	}

	items, err := QueueFromMusic(mediaID, m.catalog)
	if err != nil {
		zlog.Warn().Err(err).Msgf("queue: cannot build queue: media_id=%s", mediaID)
		return false
	}
	if indexOfInitial(items, mediaID) < 0 {
		zlog.Warn().Msgf("queue: media id not in its category: media_id=%s", mediaID)
		return false
	}
	m.SetCurrentQueue(Title(items[0].MediaID), items, mediaID)
	return true
}

// SetCurrentQueue replaces the queue. The current position is the item
// matching initialMediaID, or the first item.
func (m *Manager) SetCurrentQueue(title string, items []track.QueueItem, initialMediaID string) {
	index := 0
	if initialMediaID != "" {
		if i := indexOfInitial(items, initialMediaID); i >= 0 {
			index = i
		}
	}
	if len(items) == 0 {
		index = -1
	}

	m.title = title
	m.queue = append([]track.QueueItem{}, items...)
	m.currentIndex = index

	m.listener.OnQueueUpdated(title, m.Queue())
	if index >= 0 {
		m.listener.OnCurrentQueueIndexUpdated(index)
	}
	m.UpdateMetadata()
}

// UpdateMetadata notifies the listener about the current track.
func (m *Manager) UpdateMetadata() {
	current, ok := m.CurrentMusic()
	if !ok {
		m.listener.OnMetadataRetrieveError()
		return
	}
	musicID, ok := mediaid.ExtractMusicID(current.MediaID)
	if !ok {
		m.listener.OnMetadataRetrieveError()
		return
	}
	t, ok := m.catalog.Track(musicID)
	if !ok {
		zlog.Warn().Msgf("queue: track not in catalog: music_id=%s", musicID)
		m.listener.OnMetadataRetrieveError()
		return
	}
	m.listener.OnMetadataChanged(t)
}

// CurrentMusic returns the current queue item.
func (m *Manager) CurrentMusic() (track.QueueItem, bool) {
	if !IsIndexPlayable(m.currentIndex, m.queue) {
		return track.QueueItem{}, false
	}
	return m.queue[m.currentIndex], true
}

// CurrentQueueSize returns the number of queued items.
func (m *Manager) CurrentQueueSize() int {
	return len(m.queue)
}

// CurrentIndex returns the current position, or -1 for an empty queue.
func (m *Manager) CurrentIndex() int {
	return m.currentIndex
}

// Title returns the title of the current queue.
func (m *Manager) Title() string {
	return m.title
}

// Queue returns a copy of the queued items.
func (m *Manager) Queue() []track.QueueItem {
	return append([]track.QueueItem{}, m.queue...)
}

// Snapshot returns the queue as a playlist.
func (m *Manager) Snapshot() playlist.Playlist {
	return playlist.Playlist{
		Title:        m.title,
		Items:        m.Queue(),
		CurrentIndex: m.currentIndex,
	}
}

func (m *Manager) setCurrentQueueIndex(index int) {
	if !IsIndexPlayable(index, m.queue) {
		return
	}
	m.currentIndex = index
	m.listener.OnCurrentQueueIndexUpdated(index)
}

// indexOfInitial matches by media id, then by music id for leaves given
// without a category.
func indexOfInitial(items []track.QueueItem, mediaID string) int {
	if i := IndexOfMediaID(items, mediaID); i >= 0 {
		return i
	}
	musicID, ok := mediaid.ExtractMusicID(mediaID)
	if !ok {
		return -1
	}
	for i, item := range items {
		if id, ok := mediaid.ExtractMusicID(item.MediaID); ok && id == musicID {
			return i
		}
	}
	return -1
}
