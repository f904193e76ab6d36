package storage

import "github.com/averyquinn/daybook/internal/logger"

// Open returns a durable SQLite-backed provider, degrading to an
// in-process store when the database cannot be opened. The caller gets the
// same interface either way.
func Open(path string) Provider {
	store, err := NewSQLiteStore(path)
	if err != nil {
		logger.Warn("durable storage unavailable, falling back to memory", "path", path, "error", err)
		return NewMemoryStore()
	}
	return store
}
