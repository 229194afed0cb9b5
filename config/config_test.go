package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, []int{360, 540, 720, 1080, 9999}, c.Qualities)
	assert.Equal(t, 15*time.Second, c.Timeout)
	assert.Equal(t, 24*time.Hour, c.PageTTL)
	assert.Equal(t, time.Hour, c.EpisodesTTL)
	assert.Equal(t, 2*time.Hour, c.MetaTTL)
	require.Len(t, c.MainMenu, 4)
	assert.Equal(t, ModeShows, c.MainMenu[0].Mode)
	assert.Equal(t, "https://www.cc.com/api/shows/1/40", c.MainMenu[0].URL)
	assert.Equal(t, "https://www.cc.com/topic/digital-originals", c.MainMenu[3].URL)
	assert.Equal(t, c.T("digital.original"), c.MainMenu[3].Name)
}

func TestCeiling(t *testing.T) {
	c := Default()
	for quality, want := range map[int]int{0: 360, 1: 540, 2: 720, 3: 1080, 4: 9999, 9: 9999, -1: 360} {
		c.Quality = quality
		assert.Equal(t, want, c.Ceiling(), "quality %d", quality)
	}
}

func TestSelectQuality(t *testing.T) {
	c := Default()
	assert.True(t, c.SelectQuality())
	c.UseInputStream = true
	assert.False(t, c.SelectQuality())
	c.ForceInputStream = true
	assert.True(t, c.SelectQuality())
}

func TestT(t *testing.T) {
	c := Default()
	assert.Equal(t, "Load More...", c.T("load.more"))
	assert.Equal(t, "unknown.key", c.T("unknown.key"))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CC_BASE_URL", "http://127.0.0.1:8080/")
	t.Setenv("CC_QUALITY", "2")
	t.Setenv("CC_DEBUG", "true")
	t.Setenv("CC_PAGE_TTL", "90m")
	t.Setenv("CC_META_TTL", "3")
	t.Setenv("CC_TIMEOUT", "bogus")

	c := Load()
	assert.Equal(t, "http://127.0.0.1:8080", c.BaseURL)
	assert.Equal(t, 720, c.Ceiling())
	assert.True(t, c.Debug)
	assert.Equal(t, 90*time.Minute, c.PageTTL)
	assert.Equal(t, 3*time.Hour, c.MetaTTL)
	assert.Equal(t, DefaultTimeout, c.Timeout)
	assert.Equal(t, "http://127.0.0.1:8080/api/shows/1/40", c.MainMenu[0].URL)
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CC_TEST_ENV_FILE=\"loaded\"\n"), 0o600))
	t.Setenv("CC_TEST_ENV_FILE", "")
	os.Unsetenv("CC_TEST_ENV_FILE")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "loaded", os.Getenv("CC_TEST_ENV_FILE"))
}
