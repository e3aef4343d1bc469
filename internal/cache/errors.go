package cache

import "errors"

// Sentinel errors returned by Cache operations. Callers should compare
// against these with errors.Is rather than string matching.
var (
	// ErrInvalidKey is returned when a key is empty.
	ErrInvalidKey = errors.New("cache: invalid key")

	// ErrInvalidTTL is returned when a caller-supplied TTL is zero or
	// negative, or when more than one TTL is passed to Put. Omitting
	// the TTL argument entirely is not an error — it means "use the
	// cache's default TTL" — but an explicit zero is never valid.
	ErrInvalidTTL = errors.New("cache: invalid ttl")

	// ErrNotFound is returned by Delete when the key is not present.
	ErrNotFound = errors.New("cache: key not found")

	// ErrShutdown is returned by operations invoked after Shutdown.
	ErrShutdown = errors.New("cache: shut down")
)
