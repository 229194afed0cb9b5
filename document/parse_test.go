package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	page, err := Parse([]byte(`{"items":[{"title":"A"}],"loadMore":{"url":"/api/x"}}`))
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.True(t, page.Has("items"))
	assert.Len(t, page.List("items"), 1)
	assert.Equal(t, "/api/x", AsString(page.Map("loadMore")["url"]))
	assert.False(t, page.Has("children"))
	assert.Nil(t, page.Children())
}

func TestParseEmbeddedHTML(t *testing.T) {
	html := `<!doctype html><html><head>
<script>var x = 1;</script>
<script>window.__DATA__ = {"children":[{"type":"MainContainer","children":[]}]}; window.__PUSH_STATE__ = {};</script>
</head><body><p>hello</p></body></html>`

	page, err := Parse([]byte(html))
	require.NoError(t, err)
	require.NotNil(t, page)
	children := page.Children()
	require.Len(t, children, 1)
	assert.Equal(t, "MainContainer", LookupString(children[0], "type"))
}

func TestParseEquivalentTrees(t *testing.T) {
	blob := `{"children":[{"type":"Fragment","children":[{"type":"LineList","props":{"items":[{"title":"x"}]}}]}]}`

	fromJSON, err := Parse([]byte(blob))
	require.NoError(t, err)
	fromHTML, err := Parse([]byte(`<html><script>__DATA__ = ` + blob + `;  window.__PUSH_STATE__={}</script></html>`))
	require.NoError(t, err)
	assert.Equal(t, fromJSON.Data, fromHTML.Data)
}

func TestParseEmbeddedOutsideScript(t *testing.T) {
	page, err := Parse([]byte(`junk __DATA__={"a":1};window.__PUSH_STATE__ trailing`))
	require.NoError(t, err)
	assert.Equal(t, float64(1), page.Get("a"))
}

func TestParseNoData(t *testing.T) {
	_, err := Parse([]byte(`<html><body>nothing here</body></html>`))
	assert.True(t, errors.Is(err, ErrNoStructuredData))

	_, err = Parse([]byte(`<script>__DATA__ = {broken; window.__PUSH_STATE__</script>`))
	assert.True(t, errors.Is(err, ErrNoStructuredData))
}

func TestParseEmpty(t *testing.T) {
	page, err := Parse(nil)
	assert.NoError(t, err)
	assert.Nil(t, page)

	// nil pages behave as empty
	assert.False(t, page.Has("items"))
	assert.Nil(t, page.List("items"))
}
