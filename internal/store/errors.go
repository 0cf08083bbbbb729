package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrStorageUnavailable is returned when a durable operation fails or
	// times out: I/O failure, quota exceeded, connection loss, store not
	// open. No partial state change has occurred when it is returned.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrEnvelopeNotFound is returned when a delete targets an id that has
	// no envelope in the store.
	ErrEnvelopeNotFound = errors.New("envelope not found")
)

// storageFailure wraps a driver error into the [ErrStorageUnavailable] class
// while preserving the original chain for diagnostics.
func storageFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
