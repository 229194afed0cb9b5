package catalog

import (
	"context"

	"cc-catalog/document"
)

// Shows lists the series found at url. Flat API listings carry an "items"
// array; full pages nest their line lists under the main container.
func (c *Catalog) Shows(ctx context.Context, url string) ([]MenuItem, error) {
	page, err := c.loadPage(ctx, url, c.cfg.PageTTL)
	if err != nil {
		return nil, err
	}

	var cards []*document.Card
	if page.Has("items") {
		for _, raw := range page.List("items") {
			cards = append(cards, document.DecodeCard(raw))
		}
		cards = append(cards, document.DecodeCard(page.Get("loadMore")))
	} else {
		nodes := document.ExtractByType(page.Children(), document.KindMainContainer, "children")
		cards = document.ExtractItems(nodes)
	}

	var items []MenuItem
	for _, card := range cards {
		if card == nil || card.URL == "" {
			continue
		}
		if card.HasLoadingTitle {
			items = append(items, MenuItem{
				Label: c.cfg.T("load.more"),
				Nav:   Navigation{Mode: ModeShows, URL: c.CreateURL(card.URL, false)},
				Art:   c.createArt("", false),
			})
			continue
		}
		label := card.Meta.Header
		items = append(items, MenuItem{
			Label: label,
			Nav:   Navigation{Mode: ModeGeneric, URL: c.CreateURL(card.URL, false), Name: label},
			Info: &VideoInfo{
				MediaType:   MediaTVShow,
				Title:       label,
				SeriesTitle: label,
			},
			Art: c.createArt(card.Media.ImageURL, false),
		})
	}
	return items, nil
}

// LoadShows lists the seasons of a show page. A page without a season
// selector, or whose selector holds a single entry without a URL, is loaded
// again in season mode; a single remaining entry is expanded straight into
// its episodes instead of a one-item folder.
func (c *Catalog) LoadShows(ctx context.Context, name, url string, season bool) ([]MenuItem, error) {
	log := c.log.WithField("url", url).WithField("season", season)
	log.Debug("loading show")

	page, err := c.loadPage(ctx, url, c.cfg.PageTTL)
	if err != nil {
		return nil, err
	}
	main := document.ExtractByType(page.Children(), document.KindMainContainer, "children")

	var selectors []any
	if !season {
		selectors = document.ExtractByType(main, document.KindSeasonSelector, "props")
		if len(selectors) == 0 || singleWithoutURL(selectors[0]) {
			log.WithField("kind", document.KindSeasonSelector.String()).Debug("no season choice, loading in season mode")
			return c.LoadShows(ctx, name, url, true)
		}
	} else {
		lists := document.ExtractByType(main, document.KindLineList, "props")
		selectors = document.ExtractByType(lists, document.KindVideoGuide, "filters")
	}
	if len(selectors) == 0 {
		log.WithField("kind", document.KindVideoGuide.String()).Warn("no season listing found")
		return nil, nil
	}

	entries := document.AsList(document.AsMap(selectors[0])["items"])
	if len(entries) == 1 {
		target := document.LookupString(entries[0], "url")
		if target == "" {
			target = url
		}
		return c.LoadItems(ctx, name, c.CreateURL(target, false))
	}

	mode := ModeSeason
	if season {
		mode = ModeEpisodes
	}
	var items []MenuItem
	for _, entry := range entries {
		label := document.LookupString(entry, "label")
		target := document.LookupString(entry, "url")
		if target == "" {
			target = url
		}
		mediaType := MediaVideo
		if IsSeasonLabel(label) {
			mediaType = MediaSeason
		}
		items = append(items, MenuItem{
			Label: label,
			Nav:   Navigation{Mode: mode, URL: c.CreateURL(target, false), Name: name},
			Info: &VideoInfo{
				MediaType:   mediaType,
				Title:       label,
				SeriesTitle: name,
			},
			Art: c.createArt("", false),
		})
	}
	return items, nil
}

func singleWithoutURL(selector any) bool {
	entries := document.AsList(document.AsMap(selector)["items"])
	return len(entries) == 1 && !document.Truthy(document.Lookup(entries[0], "url"))
}
