package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- User table
		CREATE TABLE user (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		-- Category table
		CREATE TABLE category (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL CHECK (kind IN ('income', 'expense')),
			is_default INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);

		-- Transaction table (quoted because transaction is a reserved keyword)
		CREATE TABLE "transaction" (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES user(id),
			category_id TEXT NOT NULL REFERENCES category(id),
			date TEXT NOT NULL,
			amount TEXT NOT NULL,
			direction TEXT NOT NULL CHECK (direction IN ('income', 'expense')),
			description TEXT NOT NULL DEFAULT '',
			recurring_id TEXT,
			created_at TEXT NOT NULL
		);
		CREATE INDEX idx_transaction_user_date ON "transaction"(user_id, date);
		CREATE INDEX idx_transaction_category_date ON "transaction"(category_id, date);

		-- Objective table
		CREATE TABLE objective (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES user(id),
			category_id TEXT REFERENCES category(id),
			description TEXT NOT NULL DEFAULT '',
			target_amount TEXT NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('spending_limit', 'savings_goal')),
			period TEXT NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1,
			last_notified_level TEXT NOT NULL DEFAULT 'none',
			last_notified_period TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX idx_objective_user ON objective(user_id);

		-- Investment table
		CREATE TABLE investment (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES user(id),
			symbol TEXT NOT NULL,
			name TEXT NOT NULL,
			asset_type TEXT NOT NULL,
			quantity TEXT NOT NULL,
			purchase_price TEXT NOT NULL,
			invested_cost TEXT NOT NULL,
			latest_quote TEXT NOT NULL,
			purchase_date TEXT NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL
		);
		CREATE INDEX idx_investment_user ON investment(user_id);

		-- Recurring transaction table
		CREATE TABLE recurring_transaction (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES user(id),
			category_id TEXT NOT NULL REFERENCES category(id),
			description TEXT NOT NULL DEFAULT '',
			amount TEXT NOT NULL,
			direction TEXT NOT NULL CHECK (direction IN ('income', 'expense')),
			frequency TEXT NOT NULL CHECK (frequency IN ('daily', 'weekly', 'monthly', 'yearly')),
			anchor_day INTEGER NOT NULL DEFAULT 1,
			start_date TEXT NOT NULL,
			end_date TEXT,
			next_due_date TEXT NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL
		);
		CREATE INDEX idx_recurring_due ON recurring_transaction(is_active, next_due_date);
	`

	_, err := db.Exec(schema)
	return err
}
