package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/lmoreno/spancards/internal/storage/sqlite"
)

// NewTestDB creates an in-memory SQLite database with the slot schema applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	require.NoError(t, sqlite.Migrate(db), "failed to apply schema")

	t.Cleanup(func() { db.Close() })
	return db
}

// NewGateway creates a persistence gateway over an in-memory database.
func NewGateway(t *testing.T) *sqlite.Gateway {
	t.Helper()
	return sqlite.New(NewTestDB(t))
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	t.Helper()
	require.NoError(t, closer.Close())
}
