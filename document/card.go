package document

// CardType classifies a leaf content descriptor.
type CardType string

const (
	CardSeries  CardType = "series"
	CardEpisode CardType = "episode"
	CardPromo   CardType = "promo"
	CardAd      CardType = "ad"
	CardOther   CardType = "other"
)

func parseCardType(s string) CardType {
	switch CardType(s) {
	case CardSeries, CardEpisode, CardPromo, CardAd:
		return CardType(s)
	}
	return CardOther
}

// Card is a leaf item recovered from the tree. A nil *Card stands for an
// absent loadMore descriptor.
type Card struct {
	CardType CardType
	Title    string
	URL      string
	ID       string
	MGID     string

	// LoadingTitle is set on pager descriptors of show listings.
	LoadingTitle    string
	HasLoadingTitle bool

	Media Media
	Meta  Meta
}

type Media struct {
	ImageURL    string
	DurationRaw string
}

type Meta struct {
	// Header is the header title, read from either a plain string or an
	// object carrying "text".
	Header        string
	HasHeader     bool
	SubHeader     string
	Description   string
	Date          string
	AriaLabel     string
	ItemAriaLabel string
	Label         string
}

// DecodeCard reads a card from a raw tree value. Anything that is not an
// object decodes to nil.
func DecodeCard(v any) *Card {
	m := AsMap(v)
	if m == nil {
		return nil
	}
	c := &Card{
		CardType: parseCardType(AsString(m["cardType"])),
		Title:    AsString(m["title"]),
		URL:      AsString(m["url"]),
		ID:       AsString(m["id"]),
		MGID:     AsString(m["mgid"]),
		Media: Media{
			ImageURL:    LookupString(m, "media", "image", "url"),
			DurationRaw: LookupString(m, "media", "duration"),
		},
	}
	if lt, ok := m["loadingTitle"]; ok {
		c.HasLoadingTitle = true
		c.LoadingTitle = AsString(lt)
	}
	if meta := AsMap(m["meta"]); meta != nil {
		c.Meta = decodeMeta(meta)
	}
	return c
}

func decodeMeta(meta map[string]any) Meta {
	out := Meta{
		SubHeader:     AsString(meta["subHeader"]),
		Description:   AsString(meta["description"]),
		Date:          AsString(meta["date"]),
		AriaLabel:     AsString(meta["ariaLabel"]),
		ItemAriaLabel: AsString(meta["itemAriaLabel"]),
		Label:         AsString(meta["label"]),
	}
	if header := AsMap(meta["header"]); header != nil {
		switch t := header["title"].(type) {
		case string:
			out.Header, out.HasHeader = t, true
		case map[string]any:
			out.Header, out.HasHeader = AsString(t["text"]), true
		}
	}
	return out
}

// Locator returns the opaque media id of the card, preferring mgid.
func (c *Card) Locator() string {
	if c.MGID != "" {
		return c.MGID
	}
	return c.ID
}
