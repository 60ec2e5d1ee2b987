package filter

import (
	"context"
	"regexp"
	"strings"

	"github.com/osa030/musicbox/internal/domain/track"
)

// DuplicateTrackFilter drops tracks already admitted to the catalog.
// Detects:
// - Remasters and alternate versions (normalized title + same main artist)
// Excludes:
// - Cover songs (same title but different artist)
type DuplicateTrackFilter struct {
	seen map[string]struct{}
}

// NewDuplicateTrackFilter creates a new duplicate track filter.
func NewDuplicateTrackFilter() *DuplicateTrackFilter {
	return &DuplicateTrackFilter{seen: make(map[string]struct{})}
}

// Name returns the filter name.
func (f *DuplicateTrackFilter) Name() string {
	return "duplicate_track_filter"
}

// Description returns the filter description.
func (f *DuplicateTrackFilter) Description() string {
	return "Drops remasters and alternate versions of tracks already in the catalog. Covers are kept"
}

// ReturnCodes returns possible return codes.
func (f *DuplicateTrackFilter) ReturnCodes() []string {
	return []string{"duplicate_track"}
}

// ValidateConfig validates the filter configuration.
func (f *DuplicateTrackFilter) ValidateConfig(settings map[string]any) error {
	// No configuration needed
	return nil
}

// Reset forgets the tracks seen so far.
func (f *DuplicateTrackFilter) Reset() {
	f.seen = make(map[string]struct{})
}

// Check rejects a track whose normalized title and main artist were seen before.
func (f *DuplicateTrackFilter) Check(ctx context.Context, t track.Track) Result {
	key := normalizeTrackName(t.Title) + "\x00" + mainArtist(t.Artist)
	if _, ok := f.seen[key]; ok {
		return Reject("duplicate_track")
	}
	f.seen[key] = struct{}{}
	return Accept()
}

var (
	// Common remaster patterns
	remasterPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\s*-?\s*\d{4}\s+remaster(ed)?`),      // "- 2011 Remaster"
		regexp.MustCompile(`\s*\(remaster(ed)?\s*\d{0,4}\)`),     // "(Remastered 2023)"
		regexp.MustCompile(`\s*\[remaster(ed)?\s*\d{0,4}\]`),     // "[Remastered]"
		regexp.MustCompile(`\s*-?\s*remaster(ed)?(\s+version)?`), // "- Remastered"
		regexp.MustCompile(`\s*\(.*?remaster.*?\)`),              // "(Any Remaster text)"
		regexp.MustCompile(`\s*\[.*?remaster.*?\]`),              // "[Any Remaster text]"
	}

	// Other common version indicators
	versionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\s*\(.*?version\)`),        // "(Single Version)"
		regexp.MustCompile(`\s*\(.*?edit\)`),           // "(Radio Edit)"
		regexp.MustCompile(`\s*-\s*live\b.*$`),         // "- Live at Budokan"
		regexp.MustCompile(`\s*\(live\)`),              // "(Live)"
		regexp.MustCompile(`\s*-?\s*radio\s+edit`),     // "- Radio Edit"
		regexp.MustCompile(`\s*-?\s*single\s+version`), // "- Single Version"
	}

	whitespace = regexp.MustCompile(`\s+`)

	// Separators between featured artists
	artistSeparators = regexp.MustCompile(`\s*(,|&|\bfeat\.?|\bft\.)\s*`)
)

// normalizeTrackName removes remaster information and version details.
func normalizeTrackName(name string) string {
	normalized := strings.ToLower(name)

	for _, pattern := range remasterPatterns {
		normalized = pattern.ReplaceAllString(normalized, "")
	}
	for _, pattern := range versionPatterns {
		normalized = pattern.ReplaceAllString(normalized, "")
	}

	// Remove extra whitespace
	normalized = strings.TrimSpace(normalized)
	normalized = whitespace.ReplaceAllString(normalized, " ")

	// Remove trailing dashes
	return strings.TrimRight(normalized, " -")
}

// mainArtist returns the first credited artist, lower-cased.
func mainArtist(artist string) string {
	main := artistSeparators.Split(strings.ToLower(artist), 2)[0]
	return strings.TrimSpace(main)
}

func init() {
	Register("duplicate_track_filter", func() Filter {
		return NewDuplicateTrackFilter()
	})
}
