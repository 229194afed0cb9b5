package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cc-catalog/config"
	"cc-catalog/storage"

	"github.com/gocolly/colly"
	"github.com/sirupsen/logrus"
)

// ErrFetchFailure is returned for any network, status or timeout error.
var ErrFetchFailure = errors.New("fetch failure")

type ScraperInterface interface {
	Fetch(ctx context.Context, url string, ttl time.Duration) ([]byte, error)
}

// Scraper fetches raw page bytes through the shared cache.
type Scraper struct {
	cache     storage.Cache
	addonID   string
	timeout   time.Duration
	userAgent string
	log       *logrus.Entry
}

func NewScraper(cfg *config.Config, cache storage.Cache, log *logrus.Entry) *Scraper {
	return &Scraper{
		cache:     cache,
		addonID:   cfg.AddonID,
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		log:       log.WithField("component", "scraper"),
	}
}

// Fetch returns the body of url, from the cache when a fresh copy exists.
// On a miss the page is downloaded once, stored with ttl and read back so
// hits and misses share the same path.
func (s *Scraper) Fetch(ctx context.Context, url string, ttl time.Duration) ([]byte, error) {
	key := storage.Key(s.addonID, "openURL", url)
	log := s.log.WithField("url", url)

	body, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.WithError(err).Warn("cache read failed")
	}
	if ok {
		log.Debug("cache hit")
		return body, nil
	}

	body, err = s.download(ctx, url)
	if err != nil {
		log.WithError(err).Error("fetch failed")
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailure, url, err)
	}

	if err := s.cache.Set(ctx, key, body, ttl); err != nil {
		log.WithError(err).Warn("cache write failed")
		return body, nil
	}
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil || !ok {
		return body, nil
	}
	return cached, nil
}

func (s *Scraper) download(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(s.timeout)
	// pages are cached as fetched; a truncated body must never be stored
	c.MaxBodySize = 0

	var body []byte
	c.OnRequest(func(r *colly.Request) {
		s.log.WithField("url", r.URL.String()).Debug("visiting")
	})
	c.OnResponse(func(r *colly.Response) {
		s.log.WithFields(logrus.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
			"bytes":  len(r.Body),
		}).Debug("response received")
		body = r.Body
	})

	if err := c.Visit(url); err != nil {
		return nil, err
	}
	if body == nil {
		body = []byte{}
	}
	return body, nil
}
