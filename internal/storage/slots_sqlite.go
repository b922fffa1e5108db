package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteFileName is the database file inside the data directory.
const SQLiteFileName = "tempo.db"

const slotsSchema = `CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
)`

// SQLiteSlots keeps slots as rows of a single table.
type SQLiteSlots struct {
	db *sql.DB
}

// SQLitePath returns the database file inside dataDir.
func SQLitePath(dataDir string) string {
	return filepath.Join(dataDir, SQLiteFileName)
}

// OpenSQLiteSlots opens or creates the database at path.
func OpenSQLiteSlots(ctx context.Context, path string) (*SQLiteSlots, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, slotsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &SQLiteSlots{db: db}, nil
}

// Load implements Slots.
func (slots *SQLiteSlots) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := slots.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return value, nil
}

// Save implements Slots.
func (slots *SQLiteSlots) Save(ctx context.Context, key string, data []byte) error {
	_, err := slots.db.ExecContext(ctx, `INSERT INTO slots (key, value, updated_at)
		VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data)
	if err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

// Close implements Slots.
func (slots *SQLiteSlots) Close() error {
	return slots.db.Close()
}
