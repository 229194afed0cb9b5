package catalog

import (
	"context"

	"cc-catalog/document"
)

const noTitle = "NO TITLE"

// LoadItems lists the playable entries of an episode listing, followed by a
// pager when the listing has more.
func (c *Catalog) LoadItems(ctx context.Context, name, url string) ([]MenuItem, error) {
	c.log.WithField("url", url).WithField("name", name).Debug("loading items")

	page, err := c.loadPage(ctx, url, c.cfg.EpisodesTTL)
	if err != nil {
		return nil, err
	}

	var items []MenuItem
	for _, raw := range page.List("items") {
		card := document.DecodeCard(raw)
		if card == nil || card.CardType == document.CardAd {
			continue
		}
		items = append(items, c.episodeItem(ctx, name, card))
	}

	if more := page.Map("loadMore"); document.Truthy(more) {
		items = append(items, MenuItem{
			Label: c.cfg.T("load.more"),
			Nav: Navigation{
				Mode: ModeEpisodes,
				URL:  c.CreateURL(encodeColons(document.AsString(more["url"])), false),
				Name: name,
			},
			Info: &VideoInfo{SeriesTitle: name},
			Art:  c.createArt("", false),
		})
	}
	return items, nil
}

func (c *Catalog) episodeItem(ctx context.Context, name string, card *document.Card) MenuItem {
	meta := card.Meta
	sub := meta.SubHeader

	label := noTitle
	if meta.HasHeader {
		label = meta.Header
		if sub != "" {
			label = label + " - " + sub
		}
	}

	aria := meta.ItemAriaLabel
	if aria == "" {
		aria = meta.AriaLabel
	}
	season, episode := ParseSeasonEpisode(aria)

	seriesTitle := name
	if name == "" || name == "None" {
		seriesTitle = meta.Label
	}

	title := label
	if sub != "" {
		title = sub
	}
	mediaType := MediaVideo
	if episode != nil {
		mediaType = MediaEpisode
	}

	item := MenuItem{
		Label: label,
		Nav: Navigation{
			Mode:    ModePlay,
			URL:     c.CreateURL(card.URL, false),
			Name:    title,
			Locator: card.Locator(),
		},
		Info: &VideoInfo{
			MediaType:   mediaType,
			Title:       title,
			SeriesTitle: seriesTitle,
			Plot:        meta.Description,
			Season:      season,
			Episode:     episode,
			Duration:    intPtr(ParseDuration(card.Media.DurationRaw)),
			Aired:       ParseDate(meta.Date),
		},
		Art:      c.createArt(card.Media.ImageURL, false),
		Playable: true,
	}
	c.cacheInfo(ctx, item.Nav.URL, item.Info)
	return item
}
