package playback

import "time"

// Action is a bit set of the transport commands currently available.
type Action uint32

const (
	ActionPlay Action = 1 << iota
	ActionPause
	ActionStop
	ActionSkipToNext
	ActionSkipToPrevious
	ActionSeekTo
	ActionPlayFromMediaID
	ActionPlayFromSearch
	ActionSkipToQueueItem
	ActionSetRating
)

var actionNames = []struct {
	action Action
	name   string
}{
	{ActionPlay, "play"},
	{ActionPause, "pause"},
	{ActionStop, "stop"},
	{ActionSkipToNext, "skip_to_next"},
	{ActionSkipToPrevious, "skip_to_previous"},
	{ActionSeekTo, "seek_to"},
	{ActionPlayFromMediaID, "play_from_media_id"},
	{ActionPlayFromSearch, "play_from_search"},
	{ActionSkipToQueueItem, "skip_to_queue_item"},
	{ActionSetRating, "set_rating"},
}

// Has reports whether every action in other is set.
func (a Action) Has(other Action) bool {
	return a&other == other
}

// Names returns the names of the set actions in declaration order.
func (a Action) Names() []string {
	names := make([]string, 0, len(actionNames))
	for _, n := range actionNames {
		if a.Has(n.action) {
			names = append(names, n.name)
		}
	}
	return names
}

// PlaybackState is the published state of the playback session.
type PlaybackState struct {
	State             State         // Engine state, StateError when ErrorMessage is set
	Position          time.Duration // Stream position of the current item
	Actions           Action        // Commands available in this state
	ActiveQueueItemID int64         // Queue id of the current item, -1 when none
	ErrorMessage      string        // Reason of the last failure
	Favorite          bool          // Whether the current track is a favorite
	UpdatedAt         time.Time     // When the state was computed
}
