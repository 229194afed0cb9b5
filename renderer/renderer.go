package renderer

import (
	"cc-catalog/catalog"
	"cc-catalog/resolver"
)

// ContentType tells the front end how to lay out a listing.
type ContentType string

const (
	ContentTVShows  ContentType = "tvshows"
	ContentSeasons  ContentType = "seasons"
	ContentEpisodes ContentType = "episodes"
)

// Renderer is the front end a request writes its result to. A request either
// lists items or starts playback, never both.
type Renderer interface {
	AddItem(item catalog.MenuItem, isFolder bool)
	SetContentType(ct ContentType)
	// ResolvePlayback hands the first act to the player.
	ResolvePlayback(entry resolver.PlaylistEntry)
	// BuildPlaylist queues every act. clear empties the queue first and
	// unshuffle keeps act order.
	BuildPlaylist(entries []resolver.PlaylistEntry, clear, unshuffle bool)
	Flush() error
}
