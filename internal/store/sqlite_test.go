package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kairos.db")

	db, err := NewDB(path)
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='tasks'`).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "tasks", name)
}

func TestNewDB_MigrationIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kairos.db")

	db, err := NewDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening runs the schema again; IF NOT EXISTS makes it a no-op.
	db, err = NewDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
