package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"taskboard/internal/models"
)

// SQLiteStore implements the Store interface using SQLite. The whole task
// collection is persisted as one serialized JSON array in a key/value
// table under StorageKey.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

// NewSQLiteStore creates a new SQLite store with the given database path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db, key: StorageKey}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		key TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the persisted collection. If nothing is stored yet, the
// default dataset is seeded and persisted. Read faults and corrupt blobs
// fall back to the default dataset without surfacing an error.
func (s *SQLiteStore) Load(ctx context.Context) []models.Task {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM collections WHERE key = ?
	`, s.key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			seed := SeedTasks()
			s.Save(ctx, seed)
			return seed
		}
		log.Printf("store: failed to read collection, falling back to defaults: %v", err)
		return SeedTasks()
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		log.Printf("store: corrupt collection blob, falling back to defaults: %v", err)
		return SeedTasks()
	}
	return tasks
}

// Save overwrites the persisted collection. Write faults are logged and
// absorbed.
func (s *SQLiteStore) Save(ctx context.Context, tasks []models.Task) {
	data, err := json.Marshal(tasks)
	if err != nil {
		log.Printf("store: failed to serialize collection: %v", err)
		return
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, s.key, string(data), time.Now())
	if err != nil {
		log.Printf("store: failed to persist collection: %v", err)
	}
}

// Clear removes the persisted collection.
func (s *SQLiteStore) Clear(ctx context.Context) {
	_, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE key = ?`, s.key)
	if err != nil {
		log.Printf("store: failed to clear collection: %v", err)
	}
}
