package renderer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cc-catalog/catalog"
	"cc-catalog/resolver"
)

const HLSMimeType = "application/vnd.apple.mpegurl"

// Console writes listings and playlists to w, either as tab-separated lines
// or as a single JSON document on Flush.
type Console struct {
	w      io.Writer
	json   bool
	result consoleResult
}

type consoleResult struct {
	ContentType ContentType              `json:"contentType,omitempty"`
	Items       []consoleItem            `json:"items,omitempty"`
	Playback    *resolver.PlaylistEntry  `json:"playback,omitempty"`
	Playlist    []resolver.PlaylistEntry `json:"playlist,omitempty"`
	Clear       bool                     `json:"clear,omitempty"`
	Unshuffle   bool                     `json:"unshuffle,omitempty"`
}

type consoleItem struct {
	catalog.MenuItem
	Folder bool   `json:"folder"`
	Query  string `json:"query"`
}

func NewConsole(w io.Writer, asJSON bool) *Console {
	return &Console{w: w, json: asJSON}
}

func (c *Console) AddItem(item catalog.MenuItem, isFolder bool) {
	c.result.Items = append(c.result.Items, consoleItem{MenuItem: item, Folder: isFolder, Query: item.Nav.Encode()})
}

func (c *Console) SetContentType(ct ContentType) {
	c.result.ContentType = ct
}

func (c *Console) ResolvePlayback(entry resolver.PlaylistEntry) {
	c.result.Playback = &entry
}

func (c *Console) BuildPlaylist(entries []resolver.PlaylistEntry, clear, unshuffle bool) {
	c.result.Playlist = entries
	c.result.Clear = clear
	c.result.Unshuffle = unshuffle
}

// Flush writes everything collected since the last Flush.
func (c *Console) Flush() error {
	defer func() { c.result = consoleResult{} }()
	if c.json {
		enc := json.NewEncoder(c.w)
		enc.SetIndent("", "  ")
		return enc.Encode(c.result)
	}
	return c.writeText()
}

func (c *Console) writeText() error {
	var b strings.Builder
	if c.result.ContentType != "" {
		fmt.Fprintf(&b, "# %s\n", c.result.ContentType)
	}
	for _, it := range c.result.Items {
		kind := "play"
		if it.Folder {
			kind = "dir"
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\n", kind, it.Label, it.Query)
	}
	if p := c.result.Playback; p != nil {
		fmt.Fprintf(&b, "playing\t%s\t%s\n", p.Label, p.URL)
	}
	for _, e := range c.result.Playlist {
		fmt.Fprintf(&b, "%d\t%s\t%s\n", e.Position, e.Label, e.URL)
		if e.Adaptive {
			fmt.Fprintf(&b, "\tmime\t%s\n", HLSMimeType)
		}
		for _, s := range e.Subtitles {
			fmt.Fprintf(&b, "\tsub\t%s\n", s)
		}
	}
	_, err := io.WriteString(c.w, b.String())
	return err
}
