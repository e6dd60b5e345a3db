// Package testutils provides database helpers for integration tests.
//
// Tests that need Postgres run inside a transaction that is rolled back on
// completion, so they stay isolated, need no cleanup, and can run in
// parallel. When no test database is configured the tests are skipped rather
// than failed, keeping the unit test run green on machines without Postgres.
package testutils

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	// Register the pgx stdlib driver for database/sql
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/phrazzld/task-api/internal/platform/postgres"
)

// testDBEnvVars lists the environment variables consulted, in order, for the
// test database URL.
var testDBEnvVars = []string{"TASKAPI_TEST_DATABASE_URL", "DATABASE_URL"}

// testDBURL returns the configured test database URL, or an empty string.
func testDBURL() string {
	for _, name := range testDBEnvVars {
		if url := os.Getenv(name); url != "" {
			return url
		}
	}
	return ""
}

// GetTestDBWithT returns a migrated database connection for testing, or
// skips the test when no database is configured or reachable. The connection
// is closed automatically via t.Cleanup.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	url := testDBURL()
	if url == "" {
		t.Skipf("no test database configured; set %s to run this test", testDBEnvVars[0])
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Skipf("failed to open test database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		t.Skipf("test database unreachable: %v", err)
	}

	if err := postgres.RunMigrations(db); err != nil {
		_ = db.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	return db
}

// WithTx runs a test function inside a transaction that is always rolled
// back, keeping tests isolated from each other.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("failed to begin test transaction: %v", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Logf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
