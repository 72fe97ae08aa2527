package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_CreatesSchema(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	var version string
	err = database.QueryRowContext(context.Background(),
		`SELECT value FROM schema_meta WHERE key = 'schema_version'`).Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, "1", version)
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, db.Migrate(database))
	require.NoError(t, db.Migrate(database))
}

func TestOpenDB_FileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "timesheet.db")
	database, err := db.OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, database.Close())

	reopened, err := db.OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, reopened.Close())
}

func TestSessionTable_SingleRowConstraint(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO auth_session
		(id, user_id, access_token, authenticated_at, expires_at)
		VALUES ('other', 1, 't', 'x', 'y')`)
	assert.Error(t, err)
}
