// Package storage provides SQLite-based persistence for game save slots.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrInvalidSlot is returned for empty or oversized slot names.
var ErrInvalidSlot = errors.New("storage: invalid slot name")

// maxSlotLen bounds slot names so they stay usable as labels.
const maxSlotLen = 64

// Store manages the SQLite database connection for save slots.
// It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// SlotInfo describes one stored save without its payload.
type SlotInfo struct {
	GameID        string
	Slot          string
	SchemaVersion int
	Size          int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			slot TEXT NOT NULL,
			schema_version INTEGER NOT NULL,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(game_id, slot)
		);
		CREATE INDEX IF NOT EXISTS idx_saves_game_id ON saves(game_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func validSlot(slot string) error {
	if slot == "" || len(slot) > maxSlotLen {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return nil
}

// SaveSlot writes data into a slot, replacing any previous save there.
func (s *Store) SaveSlot(gameID, slot string, version int, data []byte) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO saves (game_id, slot, schema_version, data)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(game_id, slot) DO UPDATE SET
			schema_version = excluded.schema_version,
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP`,
		gameID, slot, version, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot: %w", err)
	}
	return nil
}

// LoadSlot reads a slot. A missing slot is reported with found == false
// and a nil error.
func (s *Store) LoadSlot(gameID, slot string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow(
		"SELECT data FROM saves WHERE game_id = ? AND slot = ?",
		gameID, slot,
	).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: cannot load slot: %w", err)
	}
	return data, true, nil
}

// LoadVersioned reads a slot together with the schema version it was saved
// with. A missing slot is reported with found == false and a nil error.
func (s *Store) LoadVersioned(gameID, slot string) (data []byte, version int, found bool, err error) {
	err = s.db.QueryRow(
		"SELECT data, schema_version FROM saves WHERE game_id = ? AND slot = ?",
		gameID, slot,
	).Scan(&data, &version)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("storage: cannot load slot: %w", err)
	}
	return data, version, true, nil
}

// ListSlots returns the saves of a game ordered by slot name.
func (s *Store) ListSlots(gameID string) ([]SlotInfo, error) {
	rows, err := s.db.Query(
		`SELECT game_id, slot, schema_version, length(data), created_at, updated_at
		 FROM saves
		 WHERE game_id = ?
		 ORDER BY slot`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query slots: %w", err)
	}
	defer rows.Close()

	var slots []SlotInfo
	for rows.Next() {
		var info SlotInfo
		var createdAt, updatedAt any
		if err := rows.Scan(&info.GameID, &info.Slot, &info.SchemaVersion, &info.Size, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.CreatedAt = parseTime(createdAt)
		info.UpdatedAt = parseTime(updatedAt)
		slots = append(slots, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return slots, nil
}

// DeleteSlot removes a save. It reports whether a row was deleted.
func (s *Store) DeleteSlot(gameID, slot string) (bool, error) {
	result, err := s.db.Exec(
		"DELETE FROM saves WHERE game_id = ? AND slot = ?",
		gameID, slot,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete slot: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
