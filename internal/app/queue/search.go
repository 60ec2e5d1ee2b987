package queue

import "strings"

// Focus selects the catalog field a search is restricted to.
type Focus int

const (
	FocusNone   Focus = iota // Unstructured free-text search
	FocusArtist              // Search by artist
	FocusAlbum               // Search by album
	FocusGenre               // Search by genre
	FocusSong                // Search by song title
)

// String returns the string representation of the focus.
func (f Focus) String() string {
	switch f {
	case FocusNone:
		return "none"
	case FocusArtist:
		return "artist"
	case FocusAlbum:
		return "album"
	case FocusGenre:
		return "genre"
	case FocusSong:
		return "song"
	default:
		return "unknown"
	}
}

// ParseFocus parses a focus name. Unknown names select FocusNone.
func ParseFocus(s string) Focus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "artist":
		return FocusArtist
	case "album":
		return FocusAlbum
	case "genre":
		return FocusGenre
	case "song", "title":
		return FocusSong
	default:
		return FocusNone
	}
}

// SearchExtras carries the structured part of a search request, as sent by
// voice assistants alongside the raw query.
type SearchExtras struct {
	Focus  Focus
	Artist string
	Album  string
	Genre  string
	Song   string
}

// focusValue returns the structured value matching the focus, or query
// when the focus field is empty.
func (e SearchExtras) focusValue(query string) string {
	var v string
	switch e.Focus {
	case FocusArtist:
		v = e.Artist
	case FocusAlbum:
		v = e.Album
	case FocusGenre:
		v = e.Genre
	case FocusSong:
		v = e.Song
	}
	if v == "" {
		return query
	}
	return v
}
