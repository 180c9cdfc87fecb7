package cache

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// TextCodeUnavailable marks infrastructure failures of the cache store.
const TextCodeUnavailable = "CACHE_UNAVAILABLE"

// Unavailable wraps a backend failure so callers can tell it apart from
// domain errors. It returns nil for a nil err.
func Unavailable(err error, op string, key Key) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, "cache "+op+" failed").
		WithTextCode(TextCodeUnavailable).
		WithMetadata(map[string]any{"key": key.String()})
}

// IsUnavailable reports whether err is a cache infrastructure failure.
func IsUnavailable(err error) bool {
	var e *goerrors.Error
	if errors.As(err, &e) {
		return e.TextCode == TextCodeUnavailable
	}
	return false
}
