// Package errdefs defines the error categories shared by the playback core.
//
// Concrete failures wrap one of the sentinels below so callers can classify
// them with errors.Is regardless of the layer that produced them.
package errdefs

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidArgument reports a malformed media id or category component.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound reports a media id, queue id or search that resolves to nothing.
	ErrNotFound = errors.New("not found")
	// ErrEngineUnavailable reports that the playback engine is not connected.
	ErrEngineUnavailable = errors.New("playback engine unavailable")
)

// Code returns a stable short code for err, used for user-facing messages.
func Code(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrEngineUnavailable):
		return "engine_unavailable"
	default:
		return "error"
	}
}
