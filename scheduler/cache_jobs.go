package scheduler

import (
	"context"
	"errors"
	"fmt"

	"cc-catalog/config"
	"cc-catalog/notifier"
	"cc-catalog/scraper"

	"github.com/sirupsen/logrus"
)

// Purger deletes expired cache entries.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// CachePurgeJob removes expired rows from the shared cache.
type CachePurgeJob struct {
	cache Purger
	log   *logrus.Entry
}

func NewCachePurgeJob(cache Purger, log *logrus.Entry) *CachePurgeJob {
	return &CachePurgeJob{cache: cache, log: log.WithField("job", "cache_purge")}
}

func (j *CachePurgeJob) Name() string {
	return "cache_purge"
}

func (j *CachePurgeJob) Run(ctx context.Context) error {
	n, err := j.cache.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge cache: %v", err)
	}
	j.log.WithField("purged", n).Info("expired cache entries removed")
	return nil
}

// CacheWarmJob fetches the root menu pages so the first listing of the day is
// served from cache. A failed fetch is reported through the notifier.
type CacheWarmJob struct {
	fetcher  scraper.ScraperInterface
	notifier notifier.Notifier
	urls     []string
	cfg      *config.Config
	log      *logrus.Entry
}

func NewCacheWarmJob(cfg *config.Config, fetcher scraper.ScraperInterface, n notifier.Notifier, log *logrus.Entry) *CacheWarmJob {
	urls := make([]string, 0, len(cfg.MainMenu))
	for _, e := range cfg.MainMenu {
		urls = append(urls, e.URL)
	}
	return &CacheWarmJob{
		fetcher:  fetcher,
		notifier: n,
		urls:     urls,
		cfg:      cfg,
		log:      log.WithField("job", "cache_warm"),
	}
}

func (j *CacheWarmJob) Name() string {
	return "cache_warm"
}

func (j *CacheWarmJob) Run(ctx context.Context) error {
	var errs []error
	for _, u := range j.urls {
		if _, err := j.fetcher.Fetch(ctx, u, j.cfg.PageTTL); err != nil {
			j.log.WithField("url", u).WithError(err).Warn("failed to warm page")
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		j.log.WithField("pages", len(j.urls)).Info("cache warmed")
		return nil
	}

	err := errors.Join(errs...)
	if nerr := j.notifier.Notify(ctx, fmt.Sprintf("%s (%d/%d pages)", j.cfg.T("error.openurl"), len(errs), len(j.urls))); nerr != nil {
		j.log.WithError(nerr).Warn("notification failed")
	}
	return err
}
