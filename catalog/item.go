package catalog

import (
	"net/url"

	"cc-catalog/config"
)

// Mode selects the handler that serves a navigation entry.
type Mode string

const (
	ModeShows    Mode = config.ModeShows
	ModeGeneric  Mode = config.ModeGeneric
	ModeSeason   Mode = config.ModeSeason
	ModeEpisodes Mode = config.ModeEpisodes
	ModePlay     Mode = config.ModePlay
)

// MediaType is the kind of content a menu item describes.
type MediaType string

const (
	MediaTVShow  MediaType = "tvshow"
	MediaSeason  MediaType = "season"
	MediaEpisode MediaType = "episode"
	MediaVideo   MediaType = "video"
)

// Navigation is what the front end hands back when an item is selected.
type Navigation struct {
	Mode    Mode   `json:"mode"`
	URL     string `json:"url"`
	Name    string `json:"name,omitempty"`
	Locator string `json:"mgid,omitempty"`
}

// Encode renders the navigation as a plugin query string.
func (n Navigation) Encode() string {
	v := url.Values{}
	v.Set("mode", string(n.Mode))
	v.Set("url", n.URL)
	if n.Name != "" {
		v.Set("name", n.Name)
	}
	if n.Locator != "" {
		v.Set("mgid", n.Locator)
	}
	return v.Encode()
}

type VideoInfo struct {
	MediaType   MediaType `json:"mediatype,omitempty"`
	Title       string    `json:"title,omitempty"`
	SeriesTitle string    `json:"tvshowtitle,omitempty"`
	Plot        string    `json:"plot,omitempty"`
	Season      *int      `json:"season,omitempty"`
	Episode     *int      `json:"episode,omitempty"`
	Duration    *int      `json:"duration,omitempty"`
	Aired       string    `json:"aired,omitempty"`
}

type Art struct {
	Thumb  string `json:"thumb,omitempty"`
	Poster string `json:"poster,omitempty"`
	Fanart string `json:"fanart,omitempty"`
	Icon   string `json:"icon,omitempty"`
	Logo   string `json:"logo,omitempty"`
}

// MenuItem is the uniform output of every listing handler. Playable items
// always navigate with ModePlay.
type MenuItem struct {
	Label    string     `json:"label"`
	Nav      Navigation `json:"params"`
	Info     *VideoInfo `json:"videoInfo,omitempty"`
	Art      Art        `json:"arts"`
	Playable bool       `json:"playable,omitempty"`
}

// IsFolder reports whether selecting the item opens another listing.
func (m MenuItem) IsFolder() bool {
	return !m.Playable
}

func intPtr(n int) *int {
	return &n
}
