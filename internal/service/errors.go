package service

import "errors"

var (
	// ErrNotInitialized is returned when a mutation is attempted before
	// Init has completed. This is a programming error in the caller, not a
	// transient condition; it is never retried internally.
	ErrNotInitialized = errors.New("collection is not initialized")

	// ErrCacheCorruption is returned when a cache-side update failed after
	// a successful durable commit. The durable store still holds the
	// authoritative copy; the collection is marked stale and Reload is the
	// recovery mechanism.
	ErrCacheCorruption = errors.New("cache corruption: reload from durable store required")
)
