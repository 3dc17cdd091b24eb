package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/roster/internal/shared"
)

// SQLiteBackend stores each collection as a JSON document in the collections table.
type SQLiteBackend struct {
	db    *sql.DB
	codec JSONCodec
}

// NewSQLiteBackend wraps an open database whose migrations have been applied.
func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

// OpenSQLiteBackend opens the database at path and runs migrations.
func OpenSQLiteBackend(path string, maxOpenConns, maxIdleConns int) (*SQLiteBackend, error) {
	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, err
	}
	if path != shared.MemoryDatabase {
		shared.ConfigureDatabase(db, maxOpenConns, maxIdleConns)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewSQLiteBackend(db), nil
}

// Load decodes the stored document for name into v.
func (b *SQLiteBackend) Load(name string, v any) error {
	if err := checkName(name); err != nil {
		return err
	}

	var body string
	err := b.db.QueryRow("SELECT body FROM collections WHERE name = ?", name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAbsent
	}
	if err != nil {
		return fmt.Errorf("failed to query collection: %w", err)
	}

	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrCorruptCollection, name, err)
	}
	return nil
}

// Save upserts the document for name and bumps its revision.
func (b *SQLiteBackend) Save(name string, v any) error {
	if err := checkName(name); err != nil {
		return err
	}

	body, err := b.codec.Marshal(v)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO collections (name, body, updated_at, revision) VALUES (?, ?, ?, 1)
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at,
			revision = collections.revision + 1
	`
	if _, err := b.db.Exec(query, name, string(body), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

// Revision returns how many times name has been saved, 0 if never.
func (b *SQLiteBackend) Revision(name string) (int, error) {
	var revision int
	err := b.db.QueryRow("SELECT revision FROM collections WHERE name = ?", name).Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query revision: %w", err)
	}
	return revision, nil
}

// Close closes the underlying database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
