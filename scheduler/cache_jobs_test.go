package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cc-catalog/config"
	"cc-catalog/logging"
	"cc-catalog/scraper"
	"cc-catalog/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	fail    map[string]bool
	fetched []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string, _ time.Duration) ([]byte, error) {
	f.fetched = append(f.fetched, url)
	if f.fail[url] {
		return nil, fmt.Errorf("%w: %s", scraper.ErrFetchFailure, url)
	}
	return []byte("{}"), nil
}

type stubNotifier struct {
	messages []string
}

func (n *stubNotifier) Notify(_ context.Context, message string) error {
	n.messages = append(n.messages, message)
	return nil
}

func TestCachePurgeJob(t *testing.T) {
	ctx := context.Background()
	cache := storage.NewSQLiteStorage(t.TempDir(), logging.Discard())
	require.NoError(t, cache.Initialize(ctx))
	defer cache.Close()

	require.NoError(t, cache.Set(ctx, "gone", []byte("x"), time.Nanosecond))
	require.NoError(t, cache.Set(ctx, "kept", []byte("y"), time.Hour))
	time.Sleep(5 * time.Millisecond)

	s := NewScheduler(logging.Discard())
	job := NewCachePurgeJob(cache, logging.Discard())
	require.NoError(t, s.AddJob("0 0 * * * *", job))
	require.NoError(t, s.RunJobNow(ctx, "cache_purge"))

	stats, err := cache.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats["total"])
}

func TestCacheWarmJob(t *testing.T) {
	cfg := config.Default()
	fetcher := &stubFetcher{}
	notes := &stubNotifier{}

	job := NewCacheWarmJob(cfg, fetcher, notes, logging.Discard())
	require.NoError(t, job.Run(context.Background()))
	assert.Len(t, fetcher.fetched, len(cfg.MainMenu))
	assert.Empty(t, notes.messages)
}

func TestCacheWarmJobNotifiesFailures(t *testing.T) {
	cfg := config.Default()
	fetcher := &stubFetcher{fail: map[string]bool{cfg.MainMenu[0].URL: true}}
	notes := &stubNotifier{}

	job := NewCacheWarmJob(cfg, fetcher, notes, logging.Discard())
	err := job.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, scraper.ErrFetchFailure))
	assert.Len(t, fetcher.fetched, len(cfg.MainMenu))
	require.Len(t, notes.messages, 1)
	assert.Contains(t, notes.messages[0], "1/4")
}
