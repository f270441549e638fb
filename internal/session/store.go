package session

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/emergylab/emergia/internal/inventory"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema (sessions table)
const currentSchemaVersion = 1

// ErrSessionNotFound indicates a named session that does not exist.
var ErrSessionNotFound = errors.New("session not found")

// Info describes one saved session.
type Info struct {
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Store keeps named inventory snapshots in a SQLite database.
// Uses WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically; idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts or overwrites the named session with the snapshot.
func (s *Store) Save(ctx context.Context, name string, snap inventory.Snapshot) error {
	payload, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("save session %q: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (name, payload)
		VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET
			payload    = excluded.payload,
			updated_at = datetime('now')
	`, name, payload)
	if err != nil {
		return fmt.Errorf("save session %q: %w", name, err)
	}
	return nil
}

// Load returns the snapshot saved under name.
func (s *Store) Load(ctx context.Context, name string) (inventory.Snapshot, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM sessions WHERE name = ?`, name,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return inventory.Snapshot{}, fmt.Errorf("load session %q: %w", name, ErrSessionNotFound)
	}
	if err != nil {
		return inventory.Snapshot{}, fmt.Errorf("load session %q: %w", name, err)
	}

	var snap inventory.Snapshot
	if err := msgpack.Unmarshal(payload, &snap); err != nil {
		return inventory.Snapshot{}, fmt.Errorf("decode session %q: %w", name, err)
	}
	return snap, nil
}

// List returns every saved session ordered by name.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, created_at, updated_at FROM sessions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		if err := rows.Scan(&info.Name, &info.CreatedAt, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return infos, nil
}

// Delete removes the named session.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete session %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete session %q: %w", name, ErrSessionNotFound)
	}
	return nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables if they don't exist and stamps user_version.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}
	return nil
}
