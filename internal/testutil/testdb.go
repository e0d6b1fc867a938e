package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/pullup/internal/db"
)

// NewTestDB opens a migrated in-memory workout log, closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openMigrated(t, ":memory:")
}

// NewFileTestDB opens a migrated workout log in a temp directory. Every
// connection in the pool sees the same data, which :memory: does not give.
func NewFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openMigrated(t, filepath.Join(t.TempDir(), "pullup_test.db"))
}

func openMigrated(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening test workout log %s: %v", path, err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// CountWorkouts returns the number of stored workout rows.
func CountWorkouts(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM workouts`).Scan(&n); err != nil {
		t.Fatalf("counting workouts: %v", err)
	}
	return n
}
