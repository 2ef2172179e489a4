package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrStorageUnavailable is returned when a write fails because the
	// underlying store cannot accept it (disk full, locked database,
	// closed connection). Callers treat this as non-fatal: the
	// in-memory state keeps the mutation, only durability is at risk.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStorageCorrupt is returned when a stored payload exists but
	// cannot be parsed. Callers treat this like "no data" at the UI
	// level while preserving the error for diagnostics.
	ErrStorageCorrupt = errors.New("stored data is corrupt")
)

// IsStorageUnavailable reports whether err is a write-side storage failure.
func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}

// IsStorageCorrupt reports whether err is a read-side parse failure.
func IsStorageCorrupt(err error) bool {
	return errors.Is(err, ErrStorageCorrupt)
}
