// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"plume/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "plume")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "plume")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanCategories removes test categories by name. Deletes run in the
// given order so children go before their parents. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM categories WHERE name = $1", name)
	}
}

// cleanWallets removes test wallets by creator. Call in t.Cleanup().
func cleanWallets(t *testing.T, db *sql.DB, creatorIDs ...uuid.UUID) {
	t.Helper()
	for _, id := range creatorIDs {
		db.Exec("DELETE FROM wallets WHERE creator_id = $1", id)
	}
}

// cleanWithdrawals removes test withdrawals by creator. Call in t.Cleanup().
func cleanWithdrawals(t *testing.T, db *sql.DB, creatorIDs ...uuid.UUID) {
	t.Helper()
	for _, id := range creatorIDs {
		db.Exec("DELETE FROM withdrawals WHERE creator_id = $1", id)
	}
}

// cleanEarnings removes test earning rows by creator. Call in t.Cleanup().
func cleanEarnings(t *testing.T, db *sql.DB, creatorIDs ...uuid.UUID) {
	t.Helper()
	for _, id := range creatorIDs {
		db.Exec("DELETE FROM daily_earnings WHERE creator_id = $1", id)
	}
}

// cleanPosts removes test posts by creator. Call in t.Cleanup().
func cleanPosts(t *testing.T, db *sql.DB, creatorIDs ...uuid.UUID) {
	t.Helper()
	for _, id := range creatorIDs {
		db.Exec("DELETE FROM posts WHERE creator_id = $1", id)
	}
}
