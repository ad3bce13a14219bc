// Package testutil provides shared helpers for storage and integration tests.
// Every database here is a throwaway SQLite file under t.TempDir(), so the
// tests need no external services.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite" // registers "sqlite" driver for database/sql

	"github.com/pkordes/trip-planner/backend/internal/storage"
)

// NewSQLiteDB opens a migrated SQLite database in a temporary directory.
// The database is closed automatically when the test (and all its subtests)
// finish; the directory is removed by the testing package.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trip.db")
	db, err := storage.OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("testutil.NewSQLiteDB: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// NewRawSQLiteDB opens an empty, unmigrated SQLite database in a temporary
// directory. Use it when the test drives goose itself.
func NewRawSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "raw.db"))
	if err != nil {
		t.Fatalf("testutil.NewRawSQLiteDB: open: %v", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewRawSQLiteDB: ping: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// TableExists reports whether the named table exists in db.
func TableExists(db *sql.DB, table string) (bool, error) {
	const q = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
	var n int
	if err := db.QueryRowContext(context.Background(), q, table).Scan(&n); err != nil {
		return false, fmt.Errorf("testutil.TableExists: %w", err)
	}
	return n > 0, nil
}
