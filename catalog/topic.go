package catalog

import (
	"context"

	"cc-catalog/document"
)

const loadMoreTitle = "Load More"

// LoadTopic lists topic and collection pages. Whether a card is playable is
// decided by its URL alone: anything without a section crumb is a video.
func (c *Catalog) LoadTopic(ctx context.Context, name, url string) ([]MenuItem, error) {
	c.log.WithField("url", url).WithField("name", name).Debug("loading topic")

	page, err := c.loadPage(ctx, url, c.cfg.PageTTL)
	if err != nil {
		return nil, err
	}
	nodes := document.ExtractByType(page.Children(), document.KindMainContainer, "children")

	var items []MenuItem
	for _, card := range document.ExtractItems(nodes) {
		if card == nil {
			continue
		}
		if card.Title == loadMoreTitle {
			items = append(items, MenuItem{
				Label: c.cfg.T("load.more"),
				Nav:   Navigation{Mode: ModeEpisodes, URL: c.CreateURL(card.URL, false), Name: name},
				Art:   c.createArt("", false),
			})
		}

		switch card.CardType {
		case document.CardSeries, document.CardEpisode, document.CardPromo:
		default:
			continue
		}
		// promos in the digital originals section repeat items already listed
		if name == c.cfg.T("digital.original") && card.CardType == document.CardPromo {
			continue
		}
		if card.URL == "" || card.Title == "" {
			continue
		}

		playable := !c.HasCrumb(card.URL)
		item := MenuItem{
			Label: card.Title,
			Nav: Navigation{
				Mode: ModeGeneric,
				URL:  c.CreateURL(card.URL, playable),
				Name: card.Title,
			},
			Info: &VideoInfo{
				MediaType:   MediaTVShow,
				Title:       card.Title,
				SeriesTitle: card.Meta.Label,
				Duration:    intPtr(ParseDuration(card.Media.DurationRaw)),
			},
			Art:      c.createArt(card.Media.ImageURL, false),
			Playable: playable,
		}
		if playable {
			item.Nav.Mode = ModePlay
			item.Info.MediaType = MediaVideo
			c.cacheInfo(ctx, item.Nav.URL, item.Info)
		}
		items = append(items, item)
	}
	return items, nil
}
