package router

import (
	"fmt"
	"net/url"
	"strings"

	"cc-catalog/catalog"
)

// Params are the navigation parameters of one request.
type Params struct {
	Mode    catalog.Mode
	URL     string
	Name    string
	Locator string
}

// ParseParams decodes a plugin query string such as
// "mode=GENERIC&url=https%3A%2F%2Fwww.cc.com%2Fshows%2Fx&name=X". A leading
// "?" is accepted.
func ParseParams(query string) (Params, error) {
	v, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		return Params{}, fmt.Errorf("invalid query %q: %w", query, err)
	}
	return Params{
		Mode:    catalog.Mode(v.Get("mode")),
		URL:     v.Get("url"),
		Name:    v.Get("name"),
		Locator: v.Get("mgid"),
	}, nil
}

// FromNavigation turns a selected item back into request parameters.
func FromNavigation(n catalog.Navigation) Params {
	return Params{Mode: n.Mode, URL: n.URL, Name: n.Name, Locator: n.Locator}
}
