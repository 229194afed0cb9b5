package router

import (
	"context"
	"errors"
	"fmt"

	"cc-catalog/catalog"
	"cc-catalog/config"
	"cc-catalog/document"
	"cc-catalog/notifier"
	"cc-catalog/renderer"
	"cc-catalog/resolver"
	"cc-catalog/scraper"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrUnknownMode = errors.New("unknown mode")

// Browser is the listing side of the catalog.
type Browser interface {
	MainMenu() []catalog.MenuItem
	Shows(ctx context.Context, url string) ([]catalog.MenuItem, error)
	Generic(ctx context.Context, name, url string) ([]catalog.MenuItem, error)
	LoadShows(ctx context.Context, name, url string, season bool) ([]catalog.MenuItem, error)
	LoadItems(ctx context.Context, name, url string) ([]catalog.MenuItem, error)
}

type MediaResolver interface {
	Resolve(ctx context.Context, name, url, locator string, selectQuality bool) ([]resolver.Segment, error)
}

var (
	_ Browser       = (*catalog.Catalog)(nil)
	_ MediaResolver = (*resolver.Resolver)(nil)
)

// Router serves one request: it picks the handler for the mode, then writes
// the complete result to the renderer or notifies the failure.
type Router struct {
	cfg      *config.Config
	browser  Browser
	resolver MediaResolver
	out      renderer.Renderer
	notifier notifier.Notifier
	log      *logrus.Entry
}

func NewRouter(cfg *config.Config, browser Browser, res MediaResolver, out renderer.Renderer, n notifier.Notifier, log *logrus.Entry) *Router {
	return &Router{
		cfg:      cfg,
		browser:  browser,
		resolver: res,
		out:      out,
		notifier: n,
		log:      log.WithField("component", "router"),
	}
}

func (r *Router) Run(ctx context.Context, p Params) error {
	log := r.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"mode":       string(p.Mode),
		"url":        p.URL,
	})
	log.Debug("handling request")

	if p.Mode == catalog.ModePlay {
		if err := r.play(ctx, p); err != nil {
			return r.fail(ctx, log, err)
		}
		return r.out.Flush()
	}

	var (
		items []catalog.MenuItem
		ct    renderer.ContentType
		err   error
	)
	switch p.Mode {
	case "":
		items = r.browser.MainMenu()
	case catalog.ModeShows:
		items, err = r.browser.Shows(ctx, p.URL)
		ct = renderer.ContentTVShows
	case catalog.ModeGeneric:
		items, err = r.browser.Generic(ctx, p.Name, p.URL)
	case catalog.ModeSeason:
		items, err = r.browser.LoadShows(ctx, p.Name, p.URL, true)
	case catalog.ModeEpisodes:
		items, err = r.browser.LoadItems(ctx, p.Name, p.URL)
		ct = renderer.ContentEpisodes
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownMode, p.Mode)
	}
	if err != nil {
		return r.fail(ctx, log, err)
	}
	if ct == "" {
		ct = InferContentType(items)
	}

	for _, item := range items {
		r.out.AddItem(item, item.IsFolder())
	}
	if ct != "" {
		r.out.SetContentType(ct)
	}
	log.WithField("items", len(items)).Debug("listing rendered")
	return r.out.Flush()
}

func (r *Router) play(ctx context.Context, p Params) error {
	segments, err := r.resolver.Resolve(ctx, p.Name, p.URL, p.Locator, r.cfg.SelectQuality())
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		return fmt.Errorf("%w: no segments for %s", resolver.ErrMediaUnavailable, p.URL)
	}
	entries := resolver.Playlist(segments)
	for i := range entries {
		entries[i].Adaptive = r.cfg.UseInputStream
	}
	r.out.ResolvePlayback(entries[0])
	r.out.BuildPlaylist(entries, true, true)
	return nil
}

// fail sends a single notification for err and returns it.
func (r *Router) fail(ctx context.Context, log *logrus.Entry, err error) error {
	key := MessageKey(err)
	log.WithError(err).WithField("message", key).Error("request failed")
	if nerr := r.notifier.Notify(ctx, r.cfg.T(key)); nerr != nil {
		log.WithError(nerr).Warn("notification failed")
	}
	return err
}

// MessageKey maps a terminal error to its localized message key.
func MessageKey(err error) string {
	switch {
	case errors.Is(err, scraper.ErrFetchFailure):
		return "error.openurl"
	case errors.Is(err, document.ErrNoStructuredData):
		return "error.no.json"
	case errors.Is(err, resolver.ErrMediaUnavailable):
		return "error.no.video"
	case errors.Is(err, resolver.ErrUnsupportedMediaType):
		return "error.wrong.type"
	case errors.Is(err, catalog.ErrUnsupportedURL), errors.Is(err, ErrUnknownMode):
		return "error.unsupported"
	default:
		return "error.generic"
	}
}

// InferContentType picks the layout for a mixed listing: all shows, all
// seasons or all playable. Anything else gets no content type.
func InferContentType(items []catalog.MenuItem) renderer.ContentType {
	if len(items) == 0 {
		return ""
	}
	shows, seasons, playable := true, true, true
	for _, it := range items {
		var mt catalog.MediaType
		if it.Info != nil {
			mt = it.Info.MediaType
		}
		shows = shows && mt == catalog.MediaTVShow
		seasons = seasons && mt == catalog.MediaSeason
		playable = playable && it.Playable
	}
	switch {
	case shows:
		return renderer.ContentTVShows
	case seasons:
		return renderer.ContentSeasons
	case playable:
		return renderer.ContentEpisodes
	}
	return ""
}
