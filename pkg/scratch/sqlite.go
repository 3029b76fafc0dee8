package scratch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore is a durable Store backed by a single SQLite database file.
// Autosave snapshots survive crashes and restarts; WAL mode keeps writes
// from blocking the interactive session.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger

	getStmt    *sql.Stmt
	setStmt    *sql.Stmt
	deleteStmt *sql.Stmt
	keysStmt   *sql.Stmt
	pruneStmt  *sql.Stmt
}

// NewSQLiteStore opens (creating if necessary) the scratch database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, &StorageError{Backend: "sqlite", Op: "open", Err: errors.New("path cannot be empty")}
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "open", Err: err}
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{
		db:     db,
		logger: slog.Default().With("component", "scratch.sqlite"),
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, &StorageError{Backend: "sqlite", Op: "init_schema", Err: err}
	}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, &StorageError{Backend: "sqlite", Op: "prepare", Err: err}
	}

	s.logger.Debug("scratch store opened", "path", path)
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scratch_entries (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_scratch_updated_at ON scratch_entries(updated_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) prepareStatements() error {
	var err error
	if s.getStmt, err = s.db.Prepare(`SELECT value FROM scratch_entries WHERE key = ?`); err != nil {
		return err
	}
	if s.setStmt, err = s.db.Prepare(`INSERT INTO scratch_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`); err != nil {
		return err
	}
	if s.deleteStmt, err = s.db.Prepare(`DELETE FROM scratch_entries WHERE key = ?`); err != nil {
		return err
	}
	if s.keysStmt, err = s.db.Prepare(`SELECT key FROM scratch_entries WHERE key LIKE ? ORDER BY key`); err != nil {
		return err
	}
	if s.pruneStmt, err = s.db.Prepare(`DELETE FROM scratch_entries WHERE updated_at < ?`); err != nil {
		return err
	}
	return nil
}

// Get returns the value for key, or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.getStmt.QueryRowContext(ctx, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", &StorageError{Backend: "sqlite", Op: "get", Err: err}
	}
	return value, nil
}

// Set writes the value for key, overwriting any previous value.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.setStmt.ExecContext(ctx, key, value, time.Now().UnixMilli()); err != nil {
		return &StorageError{Backend: "sqlite", Op: "set", Err: err}
	}
	return nil
}

// Delete removes the key. Deleting a missing key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.deleteStmt.ExecContext(ctx, key); err != nil {
		return &StorageError{Backend: "sqlite", Op: "delete", Err: err}
	}
	return nil
}

// Keys returns all keys with the given prefix, sorted.
func (s *SQLiteStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.keysStmt.QueryContext(ctx, prefix+"%")
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "keys", Err: err}
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, &StorageError{Backend: "sqlite", Op: "keys", Err: err}
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "keys", Err: err}
	}
	return keys, nil
}

// PruneOlderThan removes entries not written for at least age.
func (s *SQLiteStore) PruneOlderThan(ctx context.Context, age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age).UnixMilli()
	result, err := s.pruneStmt.ExecContext(ctx, cutoff)
	if err != nil {
		return 0, &StorageError{Backend: "sqlite", Op: "prune", Err: err}
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, &StorageError{Backend: "sqlite", Op: "prune", Err: err}
	}
	return int(affected), nil
}

// Close releases prepared statements and the database handle.
func (s *SQLiteStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.getStmt, s.setStmt, s.deleteStmt, s.keysStmt, s.pruneStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}
