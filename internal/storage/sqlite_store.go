package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/averyquinn/daybook/internal/logger"
	"github.com/averyquinn/daybook/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	account_key TEXT PRIMARY KEY,
	doc         TEXT NOT NULL,
	version     INTEGER NOT NULL,
	saved_at    TEXT NOT NULL
)`

// SQLiteStore persists one snapshot document per account key.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{path: path, db: db}, nil
}

func (s *SQLiteStore) Save(accountKey string, snap *models.Snapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (account_key, doc, version, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(account_key) DO UPDATE SET
			doc = excluded.doc,
			version = excluded.version,
			saved_at = excluded.saved_at`,
		accountKey, string(doc), snap.Version, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(accountKey string) (*models.Snapshot, error) {
	var doc string
	row := s.db.QueryRow(`SELECT doc FROM snapshots WHERE account_key = ?`, accountKey)
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(doc), &snap); err != nil {
		// Corrupt local data is treated as absent, never fatal.
		logger.Warn("discarding unparseable local snapshot", "account", accountKey, "error", err)
		return nil, nil
	}
	return &snap, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
