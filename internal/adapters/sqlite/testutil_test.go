// Package sqlite_test contains integration tests for SQLite repositories.
//
// All test setup goes through db.GetSchemaSQL() so tests always run
// against the authoritative schema. Do not hardcode CREATE TABLE
// statements in test files; use setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/microfarm/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedCustomer inserts a test customer and returns its ID.
func seedCustomer(t *testing.T, database *sql.DB, name string) int64 {
	t.Helper()
	if name == "" {
		name = "Test Customer"
	}
	res, err := database.Exec("INSERT INTO customers (name) VALUES (?)", name)
	if err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read customer id: %v", err)
	}
	return id
}

// seedItem inserts a test item and returns its ID.
func seedItem(t *testing.T, database *sql.DB, name string, germinationDays, growthDays int) int64 {
	t.Helper()
	if name == "" {
		name = "Erbsen"
	}
	res, err := database.Exec(
		`INSERT INTO items (name, seed_quantity, soaking_days, germination_days, growth_days, price, substrate)
		 VALUES (?, '150', 1, ?, ?, '4.50', 'Erde')`,
		name, germinationDays, growthDays,
	)
	if err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read item id: %v", err)
	}
	return id
}

// date builds a UTC midnight date for test fixtures.
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
