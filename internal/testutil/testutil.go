package testutil

import (
	"database/sql"
	"embed"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

//go:embed migrations/*.sql
var migrations embed.FS

// NewTestDB opens an in-memory sqlite database with the full schema applied.
// Each call gets its own isolated database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on&_journal_mode=WAL")
	require.NoError(t, err)

	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	for _, entry := range entries {
		stmts, err := migrations.ReadFile("migrations/" + entry.Name())
		require.NoError(t, err, "read migration %s", entry.Name())

		_, err = db.Exec(string(stmts))
		require.NoError(t, err, "apply migration %s", entry.Name())
	}

	return db
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
