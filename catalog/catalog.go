package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"cc-catalog/config"
	"cc-catalog/document"
	"cc-catalog/scraper"
	"cc-catalog/storage"

	"github.com/sirupsen/logrus"
)

// ErrUnsupportedURL is returned when a generic URL carries no known crumb.
var ErrUnsupportedURL = errors.New("unsupported url")

type handlerFunc func(ctx context.Context, name, url string) ([]MenuItem, error)

// Catalog turns catalog pages into menu items.
type Catalog struct {
	cfg      *config.Config
	fetcher  scraper.ScraperInterface
	cache    storage.Cache
	log      *logrus.Entry
	crumbs   *regexp.Regexp
	handlers map[string]handlerFunc
}

func NewCatalog(cfg *config.Config, fetcher scraper.ScraperInterface, cache storage.Cache, log *logrus.Entry) *Catalog {
	c := &Catalog{
		cfg:     cfg,
		fetcher: fetcher,
		cache:   cache,
		log:     log.WithField("component", "catalog"),
	}

	quoted := make([]string, len(cfg.Crumbs))
	for i, crumb := range cfg.Crumbs {
		quoted[i] = regexp.QuoteMeta(crumb)
	}
	c.crumbs = regexp.MustCompile(`/(` + strings.Join(quoted, "|") + `)/`)

	// collections pages share the topic layout
	c.handlers = map[string]handlerFunc{
		"shows": func(ctx context.Context, name, url string) ([]MenuItem, error) {
			return c.LoadShows(ctx, name, url, false)
		},
		"collections": c.LoadTopic,
		"topic":       c.LoadTopic,
	}
	return c
}

// MainMenu returns the static root menu.
func (c *Catalog) MainMenu() []MenuItem {
	items := make([]MenuItem, 0, len(c.cfg.MainMenu))
	for _, e := range c.cfg.MainMenu {
		items = append(items, MenuItem{
			Label: e.Label,
			Nav:   Navigation{Mode: Mode(e.Mode), URL: e.URL, Name: e.Name},
			Art:   c.createArt("", false),
		})
	}
	return items
}

// Generic picks the handler matching the first crumb found in url.
func (c *Catalog) Generic(ctx context.Context, name, url string) ([]MenuItem, error) {
	crumb := c.crumbOf(url)
	handler, ok := c.handlers[crumb]
	if !ok {
		c.log.WithField("url", url).Error("url not supported")
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, url)
	}
	c.log.WithFields(logrus.Fields{"url": url, "crumb": crumb}).Debug("generic dispatch")
	return handler(ctx, name, url)
}

func (c *Catalog) crumbOf(url string) string {
	m := c.crumbs.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// HasCrumb reports whether url points at a browsable section rather than a
// video.
func (c *Catalog) HasCrumb(url string) bool {
	for _, crumb := range c.cfg.Crumbs {
		if strings.Contains(url, "/"+crumb+"/") {
			return true
		}
	}
	return false
}

// CreateURL makes u absolute against the base URL. fix repairs the singular
// "/episode/" path some cards carry.
func (c *Catalog) CreateURL(u string, fix bool) string {
	if fix {
		u = strings.ReplaceAll(u, "/episode/", "/episodes/")
	}
	if strings.HasPrefix(u, "http") {
		return u
	}
	return c.cfg.BaseURL + u
}

func (c *Catalog) createArt(image string, fanart bool) Art {
	var thumb string
	if image != "" {
		thumb = image + "&width=512&crop=false"
	}
	art := Art{
		Thumb:  thumb,
		Poster: thumb,
		Fanart: c.cfg.Fanart,
		Icon:   c.cfg.Icon,
		Logo:   c.cfg.Icon,
	}
	if fanart {
		art.Fanart = image
		if art.Fanart == "" {
			art.Fanart = thumb
		}
	}
	return art
}

// loadPage fetches and parses url. An empty body is an empty page.
func (c *Catalog) loadPage(ctx context.Context, url string, ttl time.Duration) (*document.Page, error) {
	c.log.WithField("url", url).Debug("loading page")
	body, err := c.fetcher.Fetch(ctx, url, ttl)
	if err != nil {
		return nil, err
	}
	page, err := document.Parse(body)
	if err != nil {
		c.log.WithField("url", url).WithError(err).Error("no json data found")
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	if page == nil {
		page = &document.Page{}
	}
	return page, nil
}

// cacheInfo stores the metadata of a playable item so the resolver can
// reattach it without reparsing the listing.
func (c *Catalog) cacheInfo(ctx context.Context, url string, info *VideoInfo) {
	key := storage.Key(c.cfg.AddonID, "videoInfo", url)
	if err := storage.SetJSON(ctx, c.cache, key, info, c.cfg.MetaTTL); err != nil {
		c.log.WithField("url", url).WithError(err).Warn("failed to cache video info")
	}
}

// CachedInfo returns the metadata stored for a playable url, if any.
func CachedInfo(ctx context.Context, cfg *config.Config, cache storage.Cache, url string) (VideoInfo, bool) {
	var info VideoInfo
	ok, err := storage.GetJSON(ctx, cache, storage.Key(cfg.AddonID, "videoInfo", url), &info)
	if err != nil || !ok {
		return VideoInfo{}, false
	}
	return info, true
}
