package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutputLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("catalog", false, &buf)
	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.WithField("url", "https://www.cc.com").Info("visible")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "catalog", line["service"])
	assert.Equal(t, "https://www.cc.com", line["url"])
	assert.Equal(t, "visible", line["msg"])

	buf.Reset()
	NewWithOutput("catalog", true, &buf).Debug("trace")
	assert.Contains(t, buf.String(), `"level":"debug"`)
}
