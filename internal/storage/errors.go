package storage

import "errors"

// ErrNotFound keeps storage-specific misses consistent across the in-memory,
// LevelDB, and embedder-supplied implementations.
var ErrNotFound = errors.New("storage: key not found")
