// Package tagfs scans directories of audio files and reads their tags.
package tagfs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
	zlog "github.com/rs/zerolog/log"
)

// DefaultExtensions lists the audio file extensions scanned by default.
var DefaultExtensions = []string{".mp3", ".m4a", ".flac", ".ogg"}

// File holds the tag metadata of one audio file.
type File struct {
	Path        string // Absolute file path
	Title       string // Tag title, or the file name without extension
	Artist      string
	Album       string
	Genre       string
	TrackNumber int
	TotalTracks int
	Picture     []byte // Embedded cover art, nil if absent
}

// Scanner walks a directory tree and reads audio tags.
type Scanner struct {
	extensions []string
}

// NewScanner creates a scanner for the given extensions.
// An empty list selects DefaultExtensions.
func NewScanner(extensions []string) *Scanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return &Scanner{extensions: normalized}
}

// Scan walks root and returns one File per audio file, in lexical order.
// Files whose tags cannot be read are returned with file-name metadata.
func (s *Scanner) Scan(ctx context.Context, root string) ([]File, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve path: %s", root)
	}

	var files []File
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !slices.Contains(s.extensions, strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		files = append(files, readFile(path))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan directory: %s", abs)
	}

	zlog.Debug().Msgf("tagfs: scanned directory: path=%s files=%d", abs, len(files))
	return files, nil
}

// readFile reads the tags of a single file.
func readFile(path string) File {
	f := File{
		Path:  path,
		Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}

	file, err := os.Open(path)
	if err != nil {
		zlog.Debug().Msgf("tagfs: cannot open file: path=%s error=%v", path, err)
		return f
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil || metadata == nil {
		zlog.Debug().Msgf("tagfs: no tags: path=%s error=%v", path, err)
		return f
	}

	if title := strings.TrimSpace(metadata.Title()); title != "" {
		f.Title = title
	}
	f.Artist = strings.TrimSpace(metadata.Artist())
	if f.Artist == "" {
		f.Artist = strings.TrimSpace(metadata.AlbumArtist())
	}
	f.Album = strings.TrimSpace(metadata.Album())
	f.Genre = strings.TrimSpace(metadata.Genre())
	f.TrackNumber, f.TotalTracks = metadata.Track()
	if picture := metadata.Picture(); picture != nil {
		f.Picture = picture.Data
	}
	return f
}
