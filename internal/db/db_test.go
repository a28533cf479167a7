package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_AppliesMigrations(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	var name string
	err = database.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name='session_history'`,
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "session_history", name)
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// Migrations use IF NOT EXISTS so re-running is a no-op.
	require.NoError(t, Migrate(database))
}
