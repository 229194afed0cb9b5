package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoStructuredData means the payload was neither JSON nor an HTML page
// carrying the embedded data blob.
var ErrNoStructuredData = errors.New("no structured data found")

var dataPattern = regexp.MustCompile(`__DATA__\s*=\s*(.+?);\s*window\.__PUSH_STATE__`)

// Page is a parsed payload.
type Page struct {
	Data any
}

// Parse decodes body as JSON, or as HTML embedding a __DATA__ assignment.
// An empty body yields (nil, nil).
func Parse(body []byte) (*Page, error) {
	if len(body) == 0 {
		return nil, nil
	}

	var data any
	if err := json.Unmarshal(body, &data); err == nil {
		return &Page{Data: data}, nil
	}

	src, ok := findEmbedded(body)
	if !ok {
		return nil, ErrNoStructuredData
	}
	if err := json.Unmarshal([]byte(src), &data); err != nil {
		return nil, errors.Join(ErrNoStructuredData, err)
	}
	return &Page{Data: data}, nil
}

// findEmbedded looks for the data assignment in script bodies first and
// falls back to the raw text.
func findEmbedded(body []byte) (string, bool) {
	var src string
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body)); err == nil {
		doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if m := dataPattern.FindStringSubmatch(s.Text()); m != nil {
				src = m[1]
				return false
			}
			return true
		})
	}
	if src != "" {
		return src, true
	}
	if m := dataPattern.FindSubmatch(body); m != nil {
		return string(m[1]), true
	}
	return "", false
}

func (p *Page) root() map[string]any {
	if p == nil {
		return nil
	}
	return AsMap(p.Data)
}

// Has reports whether the top-level object carries key.
func (p *Page) Has(key string) bool {
	_, ok := p.root()[key]
	return ok
}

// Get returns a top-level value.
func (p *Page) Get(key string) any {
	return p.root()[key]
}

// List returns a top-level array.
func (p *Page) List(key string) []any {
	return AsList(p.Get(key))
}

// Map returns a top-level object.
func (p *Page) Map(key string) map[string]any {
	return AsMap(p.Get(key))
}

// Children returns the top-level node list.
func (p *Page) Children() []any {
	return p.List("children")
}
