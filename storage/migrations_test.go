package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteStorage(t.TempDir(), nil)
	require.NoError(t, s.Initialize(ctx))
	defer s.Close()

	version, err := s.GetDatabaseVersion(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, int64(1))

	db, err := s.GetDB()
	require.NoError(t, err)

	var tableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='cache_entries'").Scan(&tableName)
	require.NoError(t, err, "cache_entries table was not created")
	assert.Equal(t, "cache_entries", tableName)

	// re-running is a no-op
	require.NoError(t, s.RunMigrations(ctx))

	newVersion, err := s.GetDatabaseVersion(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, newVersion, version)
}

func TestMigrationManager(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	m := NewMigrationManager(db, nil)
	require.NoError(t, m.Initialize())

	version, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	require.NoError(t, m.Up(ctx))
	version, err = m.Version(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, int64(1))

	require.NoError(t, m.Down(ctx))
	newVersion, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Less(t, newVersion, version)
}
