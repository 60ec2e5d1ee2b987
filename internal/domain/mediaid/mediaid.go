// Package mediaid encodes and decodes hierarchical browse identifiers.
//
// A media id is the string form of an optional leaf music id followed by a
// category path:
//
//	[musicID|]categoryType/categoryValue/...
//
// Music ids are opaque and may contain any character, so the leaf is split
// from the category path at the last '|'. Category components must not
// contain '|' or '/'.
package mediaid

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/osa030/musicbox/internal/domain/errdefs"
)

// Well-known browse categories.
const (
	Root           = "__ROOT__"
	EmptyRoot      = "__EMPTY_ROOT__"
	MusicsByGenre  = "__BY_GENRE__"
	MusicsBySearch = "__BY_SEARCH__"
	MusicsRandom   = "__RANDOM__"
)

const (
	categorySeparator = "/"
	leafSeparator     = "|"
)

// ID is the parsed form of a media id.
type ID struct {
	MusicID   string   // Leaf music id, empty for browsable nodes
	Hierarchy []string // Category path, outermost first
}

// New validates the category components and returns a typed ID.
func New(musicID string, hierarchy ...string) (ID, error) {
	for _, c := range hierarchy {
		if err := validateCategory(c); err != nil {
			return ID{}, err
		}
	}
	h := make([]string, len(hierarchy))
	copy(h, hierarchy)
	return ID{MusicID: musicID, Hierarchy: h}, nil
}

// Parse decodes a media id string. Parsing never fails; a string without a
// leaf separator is a browsable node.
func Parse(mediaID string) ID {
	id := ID{Hierarchy: []string{}}
	category := mediaID
	if i := strings.LastIndex(mediaID, leafSeparator); i >= 0 {
		id.MusicID = mediaID[:i]
		category = mediaID[i+1:]
	}
	if category != "" {
		id.Hierarchy = strings.Split(category, categorySeparator)
	}
	return id
}

// String encodes the ID back into its wire form.
func (id ID) String() string {
	category := strings.Join(id.Hierarchy, categorySeparator)
	if id.MusicID == "" {
		return category
	}
	return id.MusicID + leafSeparator + category
}

// IsBrowseable reports whether the ID is a category node.
func (id ID) IsBrowseable() bool {
	return id.MusicID == ""
}

// Category returns the last hierarchy component, or "" when there is none.
func (id ID) Category() string {
	if len(id.Hierarchy) == 0 {
		return ""
	}
	return id.Hierarchy[len(id.Hierarchy)-1]
}

// Parent returns the ID one level up. The parent of a playable node is its
// category path; the parent of a single-level category is Root.
func (id ID) Parent() ID {
	if !id.IsBrowseable() {
		return ID{Hierarchy: append([]string{}, id.Hierarchy...)}
	}
	if len(id.Hierarchy) <= 1 {
		return ID{Hierarchy: []string{Root}}
	}
	return ID{Hierarchy: append([]string{}, id.Hierarchy[:len(id.Hierarchy)-1]...)}
}

// SameHierarchy reports whether both IDs share the same category path.
func (id ID) SameHierarchy(other ID) bool {
	if len(id.Hierarchy) != len(other.Hierarchy) {
		return false
	}
	for i := range id.Hierarchy {
		if id.Hierarchy[i] != other.Hierarchy[i] {
			return false
		}
	}
	return true
}

// Create builds a media id string from a music id and category path.
// An empty musicID yields a browsable id.
func Create(musicID string, hierarchy ...string) (string, error) {
	id, err := New(musicID, hierarchy...)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ExtractMusicID returns the leaf music id, or false for browsable ids.
func ExtractMusicID(mediaID string) (string, bool) {
	id := Parse(mediaID)
	if id.IsBrowseable() {
		return "", false
	}
	return id.MusicID, true
}

// ExtractBrowseCategory returns the last category component of mediaID.
func ExtractBrowseCategory(mediaID string) string {
	return Parse(mediaID).Category()
}

// Hierarchy returns the category components of mediaID, excluding the leaf.
func Hierarchy(mediaID string) []string {
	return Parse(mediaID).Hierarchy
}

// Parent returns the media id one level up from mediaID.
func Parent(mediaID string) string {
	return Parse(mediaID).Parent().String()
}

// IsBrowseable reports whether mediaID has no leaf music id.
func IsBrowseable(mediaID string) bool {
	return Parse(mediaID).IsBrowseable()
}

// CleanCategory turns free text into a valid category component by replacing
// reserved separators. Leading and trailing whitespace is kept so that a
// query like " " still round-trips as a category value.
func CleanCategory(s string) string {
	return strings.NewReplacer(leafSeparator, " ", categorySeparator, " ").Replace(s)
}

func validateCategory(c string) error {
	if c == "" {
		return errors.Wrap(errdefs.ErrInvalidArgument, "empty category component")
	}
	if strings.Contains(c, leafSeparator) || strings.Contains(c, categorySeparator) {
		return errors.Wrapf(errdefs.ErrInvalidArgument,
			"category component %q contains a reserved character (%s or %s)", c, leafSeparator, categorySeparator)
	}
	return nil
}
