// Package journal provides a durable audit trail of config writes.
//
// Every persisted set or delete can be recorded as a change row in a SQLite
// database: which file, which route, which operation, the canonical JSON of
// the assigned value, and a content hash of the resulting document. The
// journal is strictly an observer - it never participates in the write path's
// success or failure semantics.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema
const currentSchemaVersion = 1

// Journal provides durable storage for config change records.
// Uses SQLite with WAL mode for concurrent read access.
type Journal struct {
	db *sql.DB
}

// Open creates or opens a journal database at the given path.
// Applies required pragmas and the schema automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
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

	return &Journal{db: db}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables if they don't exist. Idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// Record inserts a change record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate change IDs are
// silently ignored. Other constraint violations still return errors.
func (j *Journal) Record(ctx context.Context, ch Change) error {
	var value any
	if ch.Op != OpDelete {
		value = ch.Value
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO changes (id, path, route, op, value, doc_hash)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		ch.ID,
		ch.Path,
		ch.Route,
		string(ch.Op),
		value,
		ch.DocHash,
	)
	if err != nil {
		return fmt.Errorf("record change: %w", err)
	}
	return nil
}

// Recent returns the most recent changes, newest first. When path is
// non-empty only changes to that file are returned. limit <= 0 means no
// limit.
func (j *Journal) Recent(ctx context.Context, path string, limit int) ([]Change, error) {
	query := `
		SELECT id, path, route, op, COALESCE(value, ''), doc_hash, recorded_at
		FROM changes
	`
	var args []any
	if path != "" {
		query += " WHERE path = ?"
		args = append(args, path)
	}
	query += " ORDER BY rowid DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read changes: %w", err)
	}
	defer rows.Close()

	var changes []Change
	for rows.Next() {
		var ch Change
		var op string
		if err := rows.Scan(&ch.ID, &ch.Path, &ch.Route, &op, &ch.Value, &ch.DocHash, &ch.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan change: %w", err)
		}
		ch.Op = Op(op)
		changes = append(changes, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read changes: %w", err)
	}
	return changes, nil
}
