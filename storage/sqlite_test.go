package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s := NewSQLiteStorage(t.TempDir(), nil)
	require.NoError(t, s.Initialize(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorage(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	key := Key("plugin.video.cc", "openURL", "https://www.cc.com/shows")
	assert.Equal(t, "plugin.video.cc_openURL[https://www.cc.com/shows]", key)

	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "empty cache should miss")

	require.NoError(t, s.Set(ctx, key, []byte(`{"items":[]}`), time.Hour))

	value, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"items":[]}`, string(value))

	// overwrite keeps a single row
	require.NoError(t, s.Set(ctx, key, []byte("v2"), time.Hour))
	value, ok, err = s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v2", string(value))

	stats, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats["total"])
	assert.Equal(t, int64(0), stats["expired"])
	assert.Equal(t, int64(2), stats["bytes"])

	require.NoError(t, s.Delete(ctx, key))
	_, ok, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStorageExpiry(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	now := time.Date(2021, 7, 4, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "short", []byte("a"), time.Hour))
	require.NoError(t, s.Set(ctx, "long", []byte("b"), 24*time.Hour))

	now = now.Add(2 * time.Hour)

	_, ok, err := s.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry must not be returned")

	_, ok, err = s.Get(ctx, "long")
	require.NoError(t, err)
	assert.True(t, ok)

	stats, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats["expired"])

	purged, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	stats, err = s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats["total"])
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	type info struct {
		Title    string `json:"title"`
		Duration int    `json:"duration"`
	}

	var got info
	ok, err := GetJSON(ctx, s, "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetJSON(ctx, s, "info", info{Title: "Act 1", Duration: 754}, time.Hour))
	ok, err = GetJSON(ctx, s, "info", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, info{Title: "Act 1", Duration: 754}, got)

	require.NoError(t, s.Set(ctx, "broken", []byte("{"), time.Hour))
	_, err = GetJSON(ctx, s, "broken", &got)
	assert.Error(t, err)
}

func TestSQLiteStorageInit(t *testing.T) {
	tempDir := t.TempDir()

	s := NewSQLiteStorage(tempDir, nil)
	require.NoError(t, s.Initialize(context.Background()))
	defer s.Close()

	dbPath := filepath.Join(tempDir, dbFileName)
	_, err := os.Stat(dbPath)
	assert.False(t, os.IsNotExist(err), "database file was not created")
}
