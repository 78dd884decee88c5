package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/spec-kit/ticketing-api/internal/persistence"
)

// setupTestDB creates an in-memory database with the embedded schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	schema, err := persistence.SQLiteSchema()
	if err != nil {
		t.Fatalf("failed to load schema: %v", err)
	}
	if _, err := testDB.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

var testNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
